package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mubashirbm/laibix-admin/internal/handlers"
	"github.com/mubashirbm/laibix-admin/internal/metrics"
	"github.com/mubashirbm/laibix-admin/internal/middleware"
	"github.com/mubashirbm/laibix-admin/internal/models"
	"github.com/mubashirbm/laibix-admin/internal/repositories"
	"github.com/mubashirbm/laibix-admin/internal/services"
	"github.com/mubashirbm/laibix-admin/pkg/rabbitmq"
)

const version = "1.0.0"

// config holds the settings read from the environment.
type config struct {
	AppPort           string
	DatabaseDriver    string // postgres, sqlite or memory
	DatabaseDSN       string
	JWTSecret         string
	RabbitMQURL       string // empty disables catalog events
	PublicBaseURL     string
	UploadConcurrency int
	MaxUploadBytes    int
	DraftTTL          time.Duration
}

func loadConfig(v *viper.Viper) config {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=laibix port=5432 sslmode=disable")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("UPLOAD_CONCURRENCY", 4)
	v.SetDefault("MAX_UPLOAD_BYTES", 20*1024*1024)
	v.SetDefault("DRAFT_TTL", "2h")
	v.AutomaticEnv() // Load environment variables

	return config{
		AppPort:           v.GetString("APP_PORT"),
		DatabaseDriver:    v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:       v.GetString("DATABASE_DSN"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		PublicBaseURL:     v.GetString("PUBLIC_BASE_URL"),
		UploadConcurrency: v.GetInt("UPLOAD_CONCURRENCY"),
		MaxUploadBytes:    v.GetInt("MAX_UPLOAD_BYTES"),
		DraftTTL:          v.GetDuration("DRAFT_TTL"),
	}
}

// openDatabase connects and migrates the row store. The memory driver
// returns a nil DB; repositories are then in-memory.
func openDatabase(cfg config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "memory":
		return nil, nil
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Image{}, &models.Blob{}, &models.Order{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return db, nil
}

// deps are the collaborators the HTTP app is built from.
type deps struct {
	catalog repositories.CatalogRepository
	orders  repositories.OrderRepository
	blobs   repositories.BlobStore
	events  services.EventPublisher
	db      *gorm.DB
}

func newDeps(cfg config, db *gorm.DB) deps {
	if db == nil {
		return deps{
			catalog: repositories.NewMockCatalogRepository(),
			orders:  repositories.NewMockOrderRepository(),
			blobs:   repositories.NewMockBlobStore(cfg.PublicBaseURL),
		}
	}
	return deps{
		catalog: repositories.NewGORMCatalogRepository(db),
		orders:  repositories.NewGORMOrderRepository(db),
		blobs:   repositories.NewGORMBlobStore(db, cfg.PublicBaseURL),
		db:      db,
	}
}

func newApp(cfg config, d deps) (*fiber.App, error) {
	// --- Initialize Services ---
	validator := services.NewValidator()
	reader := services.NewCatalogReader(d.catalog)
	writer := services.NewCatalogWriter(d.catalog, d.events)
	uploader := services.NewUploader(d.blobs, cfg.UploadConcurrency)
	editor := services.NewEditorService(reader, writer, uploader, validator, cfg.DraftTTL)
	desk := services.NewDeletionDesk(d.catalog, d.events)
	stats := services.NewStatsService(d.catalog, d.orders)

	// --- Initialize Handlers ---
	productHandler := handlers.NewProductHandler(reader, validator, desk)
	draftHandler := handlers.NewDraftHandler(editor)
	dashboardHandler := handlers.NewDashboardHandler(stats)
	mediaHandler := handlers.NewMediaHandler(d.blobs)
	healthHandler, err := handlers.NewHealthHandler(d.db, version)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.MaxUploadBytes,
		// Drafts and deletion requests outlive the request that filled them.
		Immutable: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New()) // Request logger

	// --- Public Routes ---
	app.Get("/health", healthHandler)
	app.Get("/metrics", metrics.Handler())
	mediaHandler.RegisterRoutes(app)

	// --- Admin API ---
	apiV1 := app.Group("/api/v1", middleware.AdminRequired([]byte(cfg.JWTSecret)))
	productHandler.RegisterRoutes(apiV1)
	draftHandler.RegisterRoutes(apiV1)
	dashboardHandler.RegisterRoutes(apiV1)

	return app, nil
}

func main() {
	// --- Configuration ---
	cfg := loadConfig(viper.New())
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// --- Initialize Database ---
	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	d := newDeps(cfg, db)
	if db == nil {
		log.Println("DATABASE_DRIVER=memory: catalog is not persisted")
	}

	// --- Initialize RabbitMQ Client ---
	// Catalog events are optional; the console works without a broker.
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: catalog events disabled: %v", err)
		} else {
			defer mqClient.Close() // Ensure the connection is closed on exit
			d.events = mqClient
		}
	}

	app, err := newApp(cfg, d)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
