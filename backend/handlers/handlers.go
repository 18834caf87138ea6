package handlers

import (
	"trust-atlas-web/backend/models"
	"trust-atlas-web/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Handler struct {
	DB        *gorm.DB
	Atlas     *services.AtlasClient
	Refresher *services.Refresher
	Share     *services.ShareLinkService
	GeoIP     *services.GeoIPService
	Webhook   *services.WebhookService
	Health    *services.HealthMonitor

	// FrontendDir is where the built static front-end lives.
	FrontendDir string
}

func NewHandler(db *gorm.DB, atlas *services.AtlasClient, refresher *services.Refresher,
	share *services.ShareLinkService, geoip *services.GeoIPService,
	webhook *services.WebhookService, health *services.HealthMonitor) *Handler {
	return &Handler{
		DB:        db,
		Atlas:     atlas,
		Refresher: refresher,
		Share:     share,
		GeoIP:     geoip,
		Webhook:   webhook,
		Health:    health,
	}
}

// GetCountries - List all countries in the reference table
// GET /api/countries
func (h *Handler) GetCountries(c *fiber.Ctx) error {
	var countries []models.Country
	if err := h.DB.Order("name ASC").Find(&countries).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(countries)
}

// GetPillars - List the valid pillar identifiers
// GET /api/pillars
func (h *Handler) GetPillars(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"pillars": models.Pillars,
		"default": models.DefaultPillar,
	})
}
