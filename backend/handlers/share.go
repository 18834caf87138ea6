package handlers

import (
	"net/http"

	"trust-atlas-web/backend/models"

	"github.com/gofiber/fiber/v2"
)

// CreateShareLink issues a short code for a grapher query string.
// POST /api/share {"query": "countries=USA,GBR&pillar=social"}
func (h *Handler) CreateShareLink(c *fiber.Ctx) error {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	link, err := h.Share.Create(req.Query)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"code": link.Code,
		"url":  "/s/" + link.Code,
	})
}

// ResolveShareLink redirects a short code to its grapher view. The
// stored query is always a canonicalized view-state string, so the
// redirect target cannot leave the site.
// GET /s/:code
func (h *Handler) ResolveShareLink(c *fiber.Ctx) error {
	code := c.Params("code")

	link, err := h.Share.Resolve(code)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Unknown share code"})
	}

	target := "/grapher"
	if link.Query != "" {
		target += "?" + link.Query
	}
	return c.Redirect(target, http.StatusFound)
}

// GetShareLinks lists issued share links (admin).
// GET /api/admin/share
func (h *Handler) GetShareLinks(c *fiber.Ctx) error {
	var links []models.ShareLink
	if err := h.DB.Order("created_at DESC").Limit(200).Find(&links).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(links)
}
