package handlers

import (
	"net/http"
	"time"

	"trust-atlas-web/backend/models"
	"trust-atlas-web/backend/system"

	"github.com/gofiber/fiber/v2"
)

// BackupData represents the site configuration for export/import.
// Cached score data is excluded: it is re-fetchable from upstream.
type BackupData struct {
	ExportedAt time.Time           `json:"exported_at"`
	Version    string              `json:"version"`
	Settings   models.SiteSettings `json:"settings"`
	ShareLinks []models.ShareLink  `json:"share_links"`
}

// ExportConfig exports settings and share links as JSON
// GET /api/admin/backup/export
func (h *Handler) ExportConfig(c *fiber.Ctx) error {
	backup := BackupData{
		ExportedAt: time.Now(),
		Version:    "1.0",
	}

	h.DB.First(&backup.Settings, 1)
	h.DB.Find(&backup.ShareLinks)

	filename := "trust-atlas-backup-" + time.Now().Format("2006-01-02") + ".json"
	c.Set("Content-Disposition", "attachment; filename="+filename)
	c.Set("Content-Type", "application/json")

	system.Info("Configuration exported")
	AddEvent("success", "Configuration exported")

	return c.JSON(backup)
}

// ImportConfig imports configuration from JSON
// POST /api/admin/backup/import
func (h *Handler) ImportConfig(c *fiber.Ctx) error {
	var backup BackupData
	if err := c.BodyParser(&backup); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid backup file format"})
	}

	if backup.Version == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid backup file: missing version"})
	}

	tx := h.DB.Begin()

	// Settings: copy operational fields onto the existing row
	if backup.Settings.ID > 0 {
		var existing models.SiteSettings
		if err := tx.First(&existing, 1).Error; err == nil {
			existing.UpstreamAPIURL = backup.Settings.UpstreamAPIURL
			existing.RefreshIntervalHours = backup.Settings.RefreshIntervalHours
			existing.WebhookURL = backup.Settings.WebhookURL
			existing.GeoIPDBPath = backup.Settings.GeoIPDBPath
			tx.Save(&existing)
		}
	}

	// Share links: codes in the wild must keep resolving, so codes are
	// imported as-is and collisions keep the existing row
	imported := 0
	for _, link := range backup.ShareLinks {
		var existing models.ShareLink
		if err := tx.First(&existing, "code = ?", link.Code).Error; err == nil {
			continue
		}
		newLink := models.ShareLink{
			Code:  link.Code,
			Query: link.Query,
			Hits:  link.Hits,
		}
		if err := tx.Create(&newLink).Error; err != nil {
			system.Warn("Failed to import share link %s: %v", link.Code, err)
			continue
		}
		imported++
	}

	tx.Commit()

	system.Info("Configuration imported: %d share links", imported)
	AddEvent("success", "Configuration imported from backup")

	return c.JSON(fiber.Map{
		"message":     "Configuration imported successfully",
		"share_links": imported,
	})
}
