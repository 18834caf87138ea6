package handlers

import (
	"net/http"

	"trust-atlas-web/backend/models"
	"trust-atlas-web/backend/viewstate"

	"github.com/gofiber/fiber/v2"
)

// SeriesPoint is one year of a country series.
type SeriesPoint struct {
	Year       int     `json:"year"`
	Score      float64 `json:"score"`
	Source     string  `json:"source"`
	Confidence string  `json:"confidence,omitempty"`
}

// CountrySeries is one chart line.
type CountrySeries struct {
	ISO3   string        `json:"iso3"`
	Name   string        `json:"name"`
	Points []SeriesPoint `json:"points"`
}

// GetSeries returns per-country time series for a chart view.
// GET /api/series?countries=USA,GBR&pillar=social&from=2000&to=2024
func (h *Handler) GetSeries(c *fiber.Ctx) error {
	view := viewstate.ParseQuery(string(c.Request().URI().QueryString()))

	series := make([]CountrySeries, 0, len(view.Countries))
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

		points := make([]SeriesPoint, 0, len(scores))
		for _, s := range scores {
			points = append(points, SeriesPoint{
				Year:       s.Year,
				Score:      s.Score,
				Source:     s.Source,
				Confidence: s.Confidence,
			})
		}
		series = append(series, CountrySeries{ISO3: code, Name: name, Points: points})
	}

	return c.JSON(fiber.Map{
		"pillar": view.Pillar,
		"series": series,
	})
}

// GetTrend returns the per-year global average for a pillar.
// GET /api/trends/:pillar
func (h *Handler) GetTrend(c *fiber.Ctx) error {
	pillar := c.Params("pillar")
	if !models.ValidPillar(pillar) {
		pillar = models.DefaultPillar
	}

	var points []struct {
		Year      int     `json:"year"`
		Average   float64 `json:"average"`
		Countries int     `json:"countries"`
	}
	err := h.DB.Model(&models.TrustScore{}).
		Select("year, AVG(score) as average, COUNT(DISTINCT iso3) as countries").
		Where("pillar = ?", pillar).
		Group("year").
		Order("year ASC").
		Scan(&points).Error
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"pillar": pillar,
		"trend":  points,
	})
}
