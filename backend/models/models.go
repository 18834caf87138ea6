package models

import (
	"time"
)

// Pillar identifiers for the trust categories shown in the grapher.
// These values appear in share URLs and CSV exports, so they are stable.
const (
	PillarSocial       = "social"       // interpersonal trust
	PillarInstitutions = "institutions" // institutional trust
	PillarMedia        = "media"        // media trust
	DefaultPillar      = PillarSocial
)

// Pillars lists all valid pillar identifiers in display order.
var Pillars = []string{PillarSocial, PillarInstitutions, PillarMedia}

// ValidPillar reports whether p is a known pillar identifier.
func ValidPillar(p string) bool {
	for _, v := range Pillars {
		if v == p {
			return true
		}
	}
	return false
}

// Country is a reference-table row, seeded on first boot and refreshed
// from the upstream data API.
type Country struct {
	ISO3        string    `gorm:"primaryKey;size:3" json:"iso3"`
	ISO2        string    `gorm:"size:2;index" json:"iso2"`
	Name        string    `gorm:"not null" json:"name"`
	Region      string    `json:"region"`
	IncomeGroup string    `json:"income_group"`
	UpdatedAt   time.Time `json:"-"`
}

// TrustScore is one cached observation from the upstream API:
// a country-year-pillar score on the 0-100 scale with its source survey.
type TrustScore struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	ISO3       string    `gorm:"size:3;uniqueIndex:idx_score,priority:1" json:"iso3"`
	Year       int       `gorm:"uniqueIndex:idx_score,priority:2" json:"year"`
	Pillar     string    `gorm:"uniqueIndex:idx_score,priority:3" json:"pillar"`
	Source     string    `gorm:"uniqueIndex:idx_score,priority:4" json:"source"`
	Score      float64   `json:"score"`
	Confidence string    `json:"confidence,omitempty"` // tier A, B or C
	UpdatedAt  time.Time `json:"-"`
}

// ShareLink maps a short code to a canonical grapher query string.
type ShareLink struct {
	Code      string    `gorm:"primaryKey;size:12" json:"code"`
	Query     string    `gorm:"unique;not null" json:"query"`
	Hits      int64     `gorm:"default:0" json:"hits"`
	CreatedAt time.Time `json:"created_at"`
}

type Admin struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Username          string     `gorm:"unique;not null" json:"username"`
	Password          string     `gorm:"not null" json:"-"` // Stored hashed
	CreatedAt         time.Time  `json:"created_at"`
	FailedAttempts    int        `gorm:"default:0" json:"-"`
	LastFailedAttempt *time.Time `json:"-"`
	LockedUntil       *time.Time `json:"-"`
}

// SiteSettings is the single runtime-editable configuration row (ID=1).
type SiteSettings struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	UpstreamAPIURL       string     `gorm:"default:'https://api.trustatlas.org/v1'" json:"upstream_api_url"`
	RefreshIntervalHours int        `gorm:"default:24" json:"refresh_interval_hours"`
	WebhookURL           string     `json:"webhook_url,omitempty"`
	GeoIPDBPath          string     `json:"geoip_db_path,omitempty"`
	LastRefreshAt        *time.Time `json:"last_refresh_at,omitempty"`
	LastRefreshError     string     `json:"last_refresh_error,omitempty"`
	UpdatedAt            time.Time  `json:"updated_at"`
}
