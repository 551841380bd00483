package main

import (
	"context"
	"log"
	"time"

	"github.com/Apurer/go-gin-cafe-kiosk/internal/app/api"
	orderpostgres "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/adapters/persistence/postgres"
	platformpostgres "github.com/Apurer/go-gin-cafe-kiosk/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN not set; cannot purge idempotency keys")
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer func() { _ = platformpostgres.Close(db) }()

	cutoff := time.Now().Add(-cfg.IdempotencyKeyTTL)
	purged, err := orderpostgres.NewIdempotencyStore(db).PurgeBefore(ctx, cutoff)
	if err != nil {
		log.Fatalf("failed to purge idempotency keys: %v", err)
	}
	log.Printf("idempotency purge completed: %d keys older than %s removed", purged, cutoff.Format(time.RFC3339))
}
