package handlers

import (
	"net/http"
	"time"

	"trust-atlas-web/backend/export"
	"trust-atlas-web/backend/models"
	"trust-atlas-web/backend/system"
	"trust-atlas-web/backend/viewstate"

	"github.com/gofiber/fiber/v2"
)

// ExportCSV streams the current chart view as a CSV download.
// GET /api/export/csv?countries=USA,GBR&pillar=social&from=2000&to=2024
func (h *Handler) ExportCSV(c *fiber.Ctx) error {
	view := viewstate.ParseQuery(string(c.Request().URI().QueryString()))

	var rows []export.Row
	sourceSet := make(map[string]bool)
	var sources []string

	for _, iso3 := range view.Countries {
		code := models.NormalizeISO3(iso3)
		if code == "" {
			continue
		}

		var country models.Country
		name := code
		if err := h.DB.First(&country, "iso3 = ?", code).Error; err == nil {
			name = country.Name
		}

		q := h.DB.Where("iso3 = ? AND pillar = ?", code, view.Pillar)
		if view.From != nil {
			q = q.Where("year >= ?", *view.From)
		}
		if view.To != nil {
			q = q.Where("year <= ?", *view.To)
		}

		var scores []models.TrustScore
		if err := q.Order("year ASC").Find(&scores).Error; err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		for _, s := range scores {
			rows = append(rows, export.Row{
				Country:    name,
				ISO3:       code,
				Year:       s.Year,
				Pillar:     s.Pillar,
				Score:      s.Score,
				Source:     s.Source,
				Confidence: s.Confidence,
			})
			if !sourceSet[s.Source] {
				sourceSet[s.Source] = true
				sources = append(sources, s.Source)
			}
		}
	}

	now := time.Now()
	payload := export.ToCSV(rows, export.Metadata{
		Pillar:      view.Pillar,
		Sources:     sources,
		GeneratedAt: now,
	})

	filename := export.Filename(view.Countries, view.Pillar, "csv", now)
	c.Set("Content-Disposition", "attachment; filename="+filename)
	c.Set("Content-Type", export.MIMEType)

	system.Info("CSV export generated: %s (%d rows)", filename, len(rows))
	AddEvent("success", "Data exported: "+filename)

	return c.SendString(payload)
}
