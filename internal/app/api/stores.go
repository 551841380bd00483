package api

import (
	"context"
	"log/slog"

	ordermemory "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/adapters/memory"
	orderpostgres "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/adapters/persistence/postgres"
	ordersports "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/ports"
	productmemory "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/adapters/memory"
	productpostgres "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/adapters/persistence/postgres"
	productsports "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/ports"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-cafe-kiosk/internal/platform/postgres"
)

// Stores bundles the persistence adapters shared by the API and the worker.
type Stores struct {
	Products     productsports.Repository
	Orders       ordersports.Repository
	Idempotency  ordersports.IdempotencyStore
	HealthChecks map[string]func(ctx context.Context) error
}

// OpenStores connects to PostgreSQL when POSTGRES_DSN is set and applies the
// schema. Without a DSN, or when the database is unreachable, it falls back
// to in-memory adapters.
func OpenStores(ctx context.Context, cfg Config, logger *slog.Logger) (Stores, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return memoryStores(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memoryStores(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to apply migrations, falling back to memory", slog.String("error", err.Error()))
		_ = platformpostgres.Close(db)
		return memoryStores(), func() {}
	}
	logger.Info("repositories configured with postgres")
	stores := Stores{
		Products:     productpostgres.NewRepository(db),
		Orders:       orderpostgres.NewRepository(db),
		Idempotency:  orderpostgres.NewIdempotencyStore(db),
		HealthChecks: map[string]func(ctx context.Context) error{"postgres": platformpostgres.HealthCheck(db)},
	}
	return stores, func() { _ = platformpostgres.Close(db) }
}

func memoryStores() Stores {
	return Stores{
		Products:     productmemory.NewRepository(),
		Orders:       ordermemory.NewRepository(),
		Idempotency:  ordermemory.NewIdempotencyStore(),
		HealthChecks: map[string]func(ctx context.Context) error{},
	}
}
