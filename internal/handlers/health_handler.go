package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/hellofresh/health-go/v5"
	"gorm.io/gorm"
)

// NewHealthHandler builds the /health endpoint. db may be nil when the
// catalog runs in memory; the database check then always passes.
func NewHealthHandler(db *gorm.DB, version string) (fiber.Handler, error) {
	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "laibix-admin",
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: func(ctx context.Context) error {
					if db == nil {
						return nil
					}
					sqlDB, err := db.DB()
					if err != nil {
						return fmt.Errorf("failed to get database handle: %w", err)
					}
					return sqlDB.PingContext(ctx)
				},
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}
	return adaptor.HTTPHandler(h.Handler()), nil
}
