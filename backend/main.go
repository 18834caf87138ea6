package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"trust-atlas-web/backend/handlers"
	"trust-atlas-web/backend/models"
	"trust-atlas-web/backend/services"
	"trust-atlas-web/backend/system"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func main() {
	// 0. Configuration
	cfgPath := os.Getenv("ATLAS_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := system.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 1. Logger
	if err := system.InitLogger(cfg.LogDir); err != nil {
		log.Printf("Warning: Could not initialize file logger: %v", err)
	}
	defer system.Close()

	system.Info("Trust Atlas backend starting...")

	// 2. Database
	dbPath := filepath.Join(cfg.DataDir, "trust-atlas.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		system.Error("Failed to connect to database: %v", err)
		log.Fatal("Failed to connect to database:", err)
	}
	system.Info("Database connected: %s", dbPath)

	// Enable WAL mode so refresh writes don't block page reads
	if err := db.Exec("PRAGMA journal_mode=WAL;").Error; err != nil {
		system.Warn("Failed to enable WAL mode: %v", err)
	} else {
		system.Info("SQLite WAL mode enabled")
	}

	// Migrate
	if err := db.AutoMigrate(
		&models.Country{},
		&models.TrustScore{},
		&models.ShareLink{},
		&models.Admin{},
		&models.SiteSettings{},
	); err != nil {
		system.Error("Database migration failed: %v", err)
		log.Fatalf("CRITICAL: Database migration failed. Application cannot start: %v", err)
	}
	system.Info("Database migration completed successfully")

	// Seed reference countries if empty
	var countryCount int64
	db.Model(&models.Country{}).Count(&countryCount)
	if countryCount == 0 {
		for _, c := range models.SeedCountries() {
			if err := db.Create(&c).Error; err != nil {
				system.Warn("Failed to seed country %s: %v", c.ISO3, err)
			}
		}
		system.Info("Seeded %d reference countries", len(models.SeedCountries()))
	}

	// Ensure the settings row exists
	var settings models.SiteSettings
	if err := db.First(&settings, 1).Error; err != nil {
		settings = models.SiteSettings{
			ID:                   1,
			UpstreamAPIURL:       cfg.UpstreamAPIURL,
			RefreshIntervalHours: cfg.RefreshHours,
		}
		if err := db.Create(&settings).Error; err != nil {
			system.Warn("Failed to create settings row: %v", err)
		}
	}

	// 3. Services
	handlers.SetJWTSecret(cfg.JWTSecret)

	upstream := settings.UpstreamAPIURL
	if upstream == "" {
		upstream = cfg.UpstreamAPIURL
	}
	atlasClient := services.NewAtlasClient(upstream)
	system.Info("Upstream data API: %s", upstream)

	webhookService := services.NewWebhookService()
	if settings.WebhookURL != "" {
		webhookService.SetWebhookURL(settings.WebhookURL)
		system.Info("Discord webhook configured")
	}

	geoipService := services.NewGeoIPService()
	if settings.GeoIPDBPath != "" {
		if err := geoipService.Open(settings.GeoIPDBPath); err == nil {
			system.Info("Visitor country detection enabled")
		}
	}
	defer geoipService.Close()

	refreshInterval := time.Duration(settings.RefreshIntervalHours) * time.Hour
	refresher := services.NewRefresher(db, atlasClient, webhookService, refreshInterval)
	refresher.Start()

	healthMonitor := services.NewHealthMonitor(atlasClient, webhookService)
	healthMonitor.Start()

	shareService := services.NewShareLinkService(db)

	// 4. Handlers
	h := handlers.NewHandler(db, atlasClient, refresher, shareService, geoipService, webhookService, healthMonitor)
	h.FrontendDir = cfg.FrontendDir

	app := fiber.New(fiber.Config{
		DisableStartupMessage: false,
	})

	// Request logging middleware
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     os.Stdout,
	}))

	app.Use(cors.New())

	api := app.Group("/api")

	// ===== Public Routes =====
	api.Post("/login", h.Login)

	api.Get("/countries", h.GetCountries)
	api.Get("/pillars", h.GetPillars)
	api.Get("/series", h.GetSeries)
	api.Get("/trends/:pillar", h.GetTrend)
	api.Get("/export/csv", h.ExportCSV)
	api.Get("/meta/sources", h.GetSources)
	api.Get("/locate", h.Locate)
	api.Get("/status", h.GetStatus)
	api.Post("/share", h.CreateShareLink)

	// Share link redirects
	app.Get("/s/:code", h.ResolveShareLink)

	// Grapher page (handles view-state mutation redirects)
	app.Get("/grapher", h.Grapher)

	// ===== Protected Routes (JWT Required) =====
	protected := api.Group("", handlers.JWTAuthMiddleware())

	protected.Put("/auth/password", h.ChangePassword)

	protected.Get("/admin/settings", h.GetSettings)
	protected.Put("/admin/settings", h.UpdateSettings)
	protected.Post("/admin/refresh", h.TriggerRefresh)
	protected.Post("/admin/webhook/test", h.TestWebhook)
	protected.Get("/admin/share", h.GetShareLinks)
	protected.Get("/admin/backup/export", h.ExportConfig)
	protected.Post("/admin/backup/import", h.ImportConfig)

	protected.Get("/admin/users", h.GetUsers)
	protected.Post("/admin/users", h.CreateUser)
	protected.Delete("/admin/users/:id", h.DeleteUser)

	// 5. Serve Static Files (Frontend)
	app.Static("/", cfg.FrontendDir, fiber.Static{
		ByteRange: true,
		Browse:    false,
		MaxAge:    3600,
	})

	// 6. SPA Fallback: serve index.html for all other routes
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(cfg.FrontendDir, "index.html"))
	})

	// Graceful Shutdown Handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		system.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	system.Info("Server starting on %s", cfg.Listen)
	if err := app.Listen(cfg.Listen); err != nil {
		log.Fatal(err)
	}
}
