package main

import (
	"context"
	"log"
	"time"

	"github.com/Apurer/go-gin-cafe-kiosk/internal/app/api"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/platform/migrations"
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
		log.Fatal("POSTGRES_DSN not set; nothing to migrate")
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer func() { _ = platformpostgres.Close(db) }()

	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}
	log.Printf("migrations applied")
}
