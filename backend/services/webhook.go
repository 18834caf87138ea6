package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"trust-atlas-web/backend/system"
)

// WebhookService handles Discord webhook notifications for operational
// events (data refresh results, upstream outages).
type WebhookService struct {
	webhookURL string
	enabled    bool
	client     *http.Client
}

// DiscordEmbed represents a Discord embed object
type DiscordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
	Footer      *DiscordEmbedFooter `json:"footer,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

// DiscordEmbedField represents a field in a Discord embed
type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// DiscordEmbedFooter represents a footer in a Discord embed
type DiscordEmbedFooter struct {
	Text string `json:"text"`
}

// DiscordWebhookPayload represents a Discord webhook message
type DiscordWebhookPayload struct {
	Username  string         `json:"username,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Content   string         `json:"content,omitempty"`
	Embeds    []DiscordEmbed `json:"embeds,omitempty"`
}

// NewWebhookService creates a new WebhookService
func NewWebhookService() *WebhookService {
	return &WebhookService{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetWebhookURL sets the Discord webhook URL
func (w *WebhookService) SetWebhookURL(url string) {
	w.webhookURL = url
	w.enabled = url != ""
}

// IsEnabled returns whether the webhook is enabled
func (w *WebhookService) IsEnabled() bool {
	return w.enabled && w.webhookURL != ""
}

// Discord color constants
const (
	ColorRed    = 0xFF0000 // Error
	ColorOrange = 0xFFAA00 // Warning
	ColorGreen  = 0x00FF00 // Success
	ColorBlue   = 0x00AAFF // Info
)

// SendRefreshReport sends a data refresh summary to Discord
func (w *WebhookService) SendRefreshReport(countries, scores int, elapsed time.Duration, failures int) error {
	if !w.IsEnabled() {
		return nil
	}

	color := ColorGreen
	if failures > 0 {
		color = ColorOrange
	}

	embed := DiscordEmbed{
		Title:       "📊 Data Refresh Complete",
		Description: "Upstream Trust Atlas data has been synchronized",
		Color:       color,
		Fields: []DiscordEmbedField{
			{Name: "Countries", Value: fmt.Sprintf("%d", countries), Inline: true},
			{Name: "Observations", Value: fmt.Sprintf("%d", scores), Inline: true},
			{Name: "Failures", Value: fmt.Sprintf("%d", failures), Inline: true},
			{Name: "Elapsed", Value: elapsed.Round(time.Second).String(), Inline: true},
		},
		Footer: &DiscordEmbedFooter{
			Text: "Trust Atlas",
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return w.sendEmbed(embed)
}

// SendUpstreamAlert reports an upstream API state change
func (w *WebhookService) SendUpstreamAlert(baseURL string, up bool) error {
	if !w.IsEnabled() {
		return nil
	}

	embed := DiscordEmbed{
		Title:       "🚨 Upstream API Unreachable",
		Description: fmt.Sprintf("The data API at **%s** is not responding", baseURL),
		Color:       ColorRed,
		Footer: &DiscordEmbedFooter{
			Text: "Trust Atlas",
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if up {
		embed.Title = "✅ Upstream API Recovered"
		embed.Description = fmt.Sprintf("The data API at **%s** is responding again", baseURL)
		embed.Color = ColorGreen
	}

	return w.sendEmbed(embed)
}

// SendSystemAlert sends a generic system notification
func (w *WebhookService) SendSystemAlert(title, message string, color int) error {
	if !w.IsEnabled() {
		return nil
	}

	embed := DiscordEmbed{
		Title:       title,
		Description: message,
		Color:       color,
		Footer: &DiscordEmbedFooter{
			Text: "Trust Atlas",
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return w.sendEmbed(embed)
}

// SendTestAlert sends a test notification to verify webhook connectivity
func (w *WebhookService) SendTestAlert() error {
	if !w.IsEnabled() {
		return fmt.Errorf("webhook not configured")
	}

	embed := DiscordEmbed{
		Title:       "✅ Webhook Test",
		Description: "Discord webhook is configured correctly!",
		Color:       ColorGreen,
		Fields: []DiscordEmbedField{
			{Name: "Status", Value: "Connected", Inline: true},
			{Name: "Server Time", Value: time.Now().Format("2006-01-02 15:04:05"), Inline: true},
		},
		Footer: &DiscordEmbedFooter{
			Text: "Trust Atlas",
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return w.sendEmbed(embed)
}

// sendEmbed sends a Discord embed message
func (w *WebhookService) sendEmbed(embed DiscordEmbed) error {
	payload := DiscordWebhookPayload{
		Username: "Trust Atlas",
		Embeds:   []DiscordEmbed{embed},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequest("POST", w.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned error status: %d", resp.StatusCode)
	}

	system.Info("Discord webhook sent successfully")
	return nil
}
