package services

import (
	"strings"

	"trust-atlas-web/backend/models"
	"trust-atlas-web/backend/system"
	"trust-atlas-web/backend/viewstate"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShareLinkService issues short codes for grapher views. Queries are
// canonicalized through the viewstate codec before storage, so two
// URLs describing the same view share one code.
type ShareLinkService struct {
	db *gorm.DB
}

func NewShareLinkService(db *gorm.DB) *ShareLinkService {
	return &ShareLinkService{db: db}
}

// Create canonicalizes rawQuery and returns its share link, reusing an
// existing code when the same view was shared before.
func (s *ShareLinkService) Create(rawQuery string) (*models.ShareLink, error) {
	canonical := viewstate.ParseQuery(rawQuery).EncodeQuery()

	var existing models.ShareLink
	if err := s.db.Where("query = ?", canonical).First(&existing).Error; err == nil {
		return &existing, nil
	}

	link := models.ShareLink{
		Code:  newShareCode(),
		Query: canonical,
	}
	if err := s.db.Create(&link).Error; err != nil {
		return nil, err
	}
	system.Info("Share link created: %s", link.Code)
	return &link, nil
}

// Resolve returns the stored query for a code and bumps its hit count.
func (s *ShareLinkService) Resolve(code string) (*models.ShareLink, error) {
	var link models.ShareLink
	if err := s.db.First(&link, "code = ?", code).Error; err != nil {
		return nil, err
	}
	s.db.Model(&link).UpdateColumn("hits", gorm.Expr("hits + 1"))
	return &link, nil
}

// newShareCode derives a short URL-safe code from a random UUID.
func newShareCode() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:10]
}
