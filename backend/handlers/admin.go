package handlers

import (
	"net/http"

	"trust-atlas-web/backend/models"
	"trust-atlas-web/backend/system"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetSettings returns the runtime site settings
// GET /api/admin/settings
func (h *Handler) GetSettings(c *fiber.Ctx) error {
	var settings models.SiteSettings
	if err := h.DB.First(&settings, 1).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(settings)
}

// UpdateSettings updates the runtime site settings and rewires the
// services that depend on them.
// PUT /api/admin/settings
func (h *Handler) UpdateSettings(c *fiber.Ctx) error {
	var input models.SiteSettings
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var settings models.SiteSettings
	if err := h.DB.First(&settings, 1).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	settings.UpstreamAPIURL = input.UpstreamAPIURL
	if input.RefreshIntervalHours > 0 {
		settings.RefreshIntervalHours = input.RefreshIntervalHours
	}
	settings.WebhookURL = input.WebhookURL
	settings.GeoIPDBPath = input.GeoIPDBPath

	if err := h.DB.Save(&settings).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// Rewire live services
	if settings.UpstreamAPIURL != "" {
		h.Atlas.SetBaseURL(settings.UpstreamAPIURL)
	}
	h.Webhook.SetWebhookURL(settings.WebhookURL)
	if settings.GeoIPDBPath != "" {
		if err := h.GeoIP.Open(settings.GeoIPDBPath); err != nil {
			system.Warn("GeoIP database configured but could not be opened: %v", err)
		}
	}

	AddEvent("success", "Site settings updated")
	return c.JSON(settings)
}

// TriggerRefresh runs a cache refresh immediately
// POST /api/admin/refresh
func (h *Handler) TriggerRefresh(c *fiber.Ctx) error {
	result := h.Refresher.Refresh()
	if result == nil {
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "Refresh already in progress"})
	}
	AddEvent("success", "Manual data refresh completed")
	return c.JSON(result)
}

// TestWebhook sends a test notification
// POST /api/admin/webhook/test
func (h *Handler) TestWebhook(c *fiber.Ctx) error {
	if err := h.Webhook.SendTestAlert(); err != nil {
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Test notification sent"})
}

// GetUsers lists admin accounts
// GET /api/admin/users
func (h *Handler) GetUsers(c *fiber.Ctx) error {
	var users []models.Admin
	if result := h.DB.Find(&users); result.Error != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": result.Error.Error()})
	}
	// Hide passwords
	for i := range users {
		users[i].Password = ""
	}
	return c.JSON(users)
}

// CreateUser adds an admin account
// POST /api/admin/users
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not hash password"})
	}
	user := models.Admin{Username: input.Username, Password: string(hashed)}
	if result := h.DB.Create(&user); result.Error != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": result.Error.Error()})
	}
	return c.JSON(fiber.Map{"message": "User created", "user": user.Username})
}

// DeleteUser removes an admin account
// DELETE /api/admin/users/:id
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if result := h.DB.Delete(&models.Admin{}, id); result.Error != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": result.Error.Error()})
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}
