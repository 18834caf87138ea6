package services

import (
	"sync"
	"time"

	"trust-atlas-web/backend/models"
	"trust-atlas-web/backend/system"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Refresher periodically pulls the upstream API into the local cache
// so page loads never depend on upstream latency or availability.
type Refresher struct {
	db       *gorm.DB
	client   *AtlasClient
	webhook  *WebhookService
	interval time.Duration

	mu      sync.Mutex
	running bool
}

func NewRefresher(db *gorm.DB, client *AtlasClient, webhook *WebhookService, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Refresher{
		db:       db,
		client:   client,
		webhook:  webhook,
		interval: interval,
	}
}

// Start schedules periodic refreshes. The first run happens shortly
// after boot so a fresh install has data without waiting a full cycle.
func (r *Refresher) Start() {
	go func() {
		time.Sleep(10 * time.Second)
		r.Refresh()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for range ticker.C {
			r.Refresh()
		}
	}()
	system.Info("Cache refresher started (interval: %v)", r.interval)
}

// RefreshResult summarizes one synchronization pass.
type RefreshResult struct {
	Countries int       `json:"countries"`
	Scores    int       `json:"scores"`
	Failures  int       `json:"failures"`
	Elapsed   string    `json:"elapsed"`
	StartedAt time.Time `json:"started_at"`
}

// Refresh synchronizes countries and observations from upstream.
// Concurrent calls coalesce: a second caller gets an immediate nil
// result while the in-flight pass continues.
func (r *Refresher) Refresh() *RefreshResult {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		system.Info("Refresh already in progress, skipping")
		return nil
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	start := time.Now()
	system.Info("Starting data refresh from %s", r.client.BaseURL())

	result := &RefreshResult{StartedAt: start}

	countries, err := r.client.FetchCountries()
	if err != nil {
		// Upstream down: keep serving the existing cache.
		system.Warn("Refresh aborted, could not fetch countries: %v", err)
		r.recordOutcome(start, err)
		return result
	}

	// Normalize once so the country table and score rows share the
	// canonical code; entries we cannot normalize are dropped.
	canonical := countries[:0]
	for _, c := range countries {
		c.ISO3 = models.NormalizeISO3(c.ISO3)
		if c.ISO3 == "" {
			result.Failures++
			continue
		}
		canonical = append(canonical, c)
	}
	countries = canonical

	for _, c := range countries {
		if err := r.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "iso3"}},
			UpdateAll: true,
		}).Create(&c).Error; err != nil {
			system.Warn("Failed to upsert country %s: %v", c.ISO3, err)
			result.Failures++
			continue
		}
		result.Countries++
	}

	for _, c := range countries {
		for _, pillar := range models.Pillars {
			scores, err := r.client.FetchScores(c.ISO3, pillar)
			if err != nil {
				result.Failures++
				continue
			}
			for _, s := range scores {
				s.ISO3 = c.ISO3
				s.Pillar = pillar
				if err := r.db.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "iso3"}, {Name: "year"}, {Name: "pillar"}, {Name: "source"}},
					DoUpdates: clause.AssignmentColumns([]string{"score", "confidence", "updated_at"}),
				}).Create(&s).Error; err != nil {
					system.Warn("Failed to upsert score %s/%d/%s: %v", s.ISO3, s.Year, s.Pillar, err)
					result.Failures++
					continue
				}
				result.Scores++
			}
		}
	}

	elapsed := time.Since(start)
	result.Elapsed = elapsed.Round(time.Second).String()
	system.Info("Data refresh complete: %d countries, %d observations, %d failures in %v",
		result.Countries, result.Scores, result.Failures, elapsed)

	r.recordOutcome(start, nil)
	if err := r.webhook.SendRefreshReport(result.Countries, result.Scores, elapsed, result.Failures); err != nil {
		system.Warn("Failed to send refresh report: %v", err)
	}

	return result
}

// recordOutcome stores the refresh timestamp and error on the settings
// row so the status endpoint can report cache freshness.
func (r *Refresher) recordOutcome(at time.Time, refreshErr error) {
	var settings models.SiteSettings
	if err := r.db.First(&settings, 1).Error; err != nil {
		return
	}
	settings.LastRefreshAt = &at
	settings.LastRefreshError = ""
	if refreshErr != nil {
		settings.LastRefreshError = refreshErr.Error()
	}
	if err := r.db.Save(&settings).Error; err != nil {
		system.Warn("Failed to record refresh outcome: %v", err)
	}
}
