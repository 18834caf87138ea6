package services

import (
	"sync"
	"time"

	"trust-atlas-web/backend/system"
)

// HealthMonitor watches the upstream data API and alerts on state
// changes. The site keeps serving from cache while upstream is down.
type HealthMonitor struct {
	client  *AtlasClient
	webhook *WebhookService

	mu      sync.RWMutex
	up      bool
	checked bool
	lastErr string
}

func NewHealthMonitor(client *AtlasClient, webhook *WebhookService) *HealthMonitor {
	return &HealthMonitor{
		client:  client,
		webhook: webhook,
	}
}

func (h *HealthMonitor) Start() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		h.check()
		for range ticker.C {
			h.check()
		}
	}()
	system.Info("Upstream health monitor started")
}

func (h *HealthMonitor) check() {
	err := h.client.Ping()
	isUp := err == nil

	h.mu.Lock()
	wasUp, wasChecked := h.up, h.checked
	h.up = isUp
	h.checked = true
	h.lastErr = ""
	if err != nil {
		h.lastErr = err.Error()
	}
	h.mu.Unlock()

	if !wasChecked {
		// First check, just record the state.
		return
	}

	if wasUp && !isUp {
		system.Warn("Upstream API went down: %v", err)
		if err := h.webhook.SendUpstreamAlert(h.client.BaseURL(), false); err != nil {
			system.Warn("Failed to send upstream alert: %v", err)
		}
	} else if !wasUp && isUp {
		system.Info("Upstream API recovered")
		if err := h.webhook.SendUpstreamAlert(h.client.BaseURL(), true); err != nil {
			system.Warn("Failed to send upstream alert: %v", err)
		}
	}
}

// Status reports the last observed upstream state.
func (h *HealthMonitor) Status() (up bool, lastErr string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.up, h.lastErr
}
