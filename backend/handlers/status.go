package handlers

import (
	"fmt"
	"sync"
	"time"

	"trust-atlas-web/backend/models"
	"trust-atlas-web/backend/system"

	"github.com/gofiber/fiber/v2"
)

// SiteStatus represents the current server state
type SiteStatus struct {
	Uptime        string        `json:"uptime"`
	Countries     int64         `json:"countries"`
	Observations  int64         `json:"observations"`
	ShareLinks    int64         `json:"share_links"`
	UpstreamUp    bool          `json:"upstream_up"`
	UpstreamError string        `json:"upstream_error,omitempty"`
	LastRefreshAt *time.Time    `json:"last_refresh_at,omitempty"`
	GeoIPEnabled  bool          `json:"geoip_enabled"`
	Events        []SystemEvent `json:"events"`
}

type SystemEvent struct {
	Time    string `json:"time"`
	Type    string `json:"type"` // info, warning, error, success
	Message string `json:"message"`
}

// Event log storage with mutex for thread safety
var (
	eventLog   []SystemEvent
	eventMutex sync.RWMutex
	startTime  = time.Now()
)

// AddEvent adds a new event to the log
func AddEvent(eventType, message string) {
	eventMutex.Lock()
	defer eventMutex.Unlock()

	event := SystemEvent{
		Time:    time.Now().Format("15:04:05"),
		Type:    eventType,
		Message: message,
	}
	eventLog = append([]SystemEvent{event}, eventLog...)
	if len(eventLog) > 100 {
		eventLog = eventLog[:100]
	}

	// Also log to file
	switch eventType {
	case "error":
		system.Error(message)
	case "warning":
		system.Warn(message)
	default:
		system.Info(message)
	}
}

// GetEventLog returns a copy of the event log
func GetEventLog() []SystemEvent {
	eventMutex.RLock()
	defer eventMutex.RUnlock()

	result := make([]SystemEvent, len(eventLog))
	copy(result, eventLog)
	return result
}

// GetStatus returns current site status
// GET /api/status
func (h *Handler) GetStatus(c *fiber.Ctx) error {
	status := SiteStatus{
		Uptime:       formatUptime(time.Since(startTime)),
		GeoIPEnabled: h.GeoIP.Enabled(),
		Events:       GetEventLog(),
	}

	h.DB.Model(&models.Country{}).Count(&status.Countries)
	h.DB.Model(&models.TrustScore{}).Count(&status.Observations)
	h.DB.Model(&models.ShareLink{}).Count(&status.ShareLinks)

	status.UpstreamUp, status.UpstreamError = h.Health.Status()

	var settings models.SiteSettings
	if err := h.DB.First(&settings, 1).Error; err == nil {
		status.LastRefreshAt = settings.LastRefreshAt
	}

	return c.JSON(status)
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
