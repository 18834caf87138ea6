package handlers

import (
	"trust-atlas-web/backend/models"

	"github.com/gofiber/fiber/v2"
)

// Locate returns the visitor's country so the grapher can preselect
// it. Lookup failures yield an empty object, never an error.
// GET /api/locate
func (h *Handler) Locate(c *fiber.Ctx) error {
	iso2 := h.GeoIP.LookupISO2(c.IP())
	if iso2 == "" {
		return c.JSON(fiber.Map{})
	}

	var country models.Country
	if err := h.DB.First(&country, "iso2 = ?", iso2).Error; err != nil {
		return c.JSON(fiber.Map{})
	}

	return c.JSON(fiber.Map{
		"iso3": country.ISO3,
		"name": country.Name,
	})
}
