package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-cafe-kiosk/internal/app/api"
	productsobs "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/adapters/observability"
	productsapp "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application"
	platformobservability "github.com/Apurer/go-gin-cafe-kiosk/internal/platform/observability"
	productactivities "github.com/Apurer/go-gin-cafe-kiosk/internal/platform/temporal/activities/products"
	productworkflows "github.com/Apurer/go-gin-cafe-kiosk/internal/platform/temporal/workflows/products"
)

func main() {
	ctx := context.Background()
	const serviceName = "cafe-kiosk-worker"

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, cleanupStores := api.OpenStores(ctx, cfg, logger)
	defer cleanupStores()
	productService := productsobs.New(
		productsapp.NewService(stores.Products),
		productsobs.WithLogger(logger),
		productsobs.WithTracer(instruments.Tracer("internal.products.application")),
		productsobs.WithMeter(instruments.Meter("internal.products.application")),
	)
	productActivities := productactivities.NewActivities(productService)

	temporalClient, err := api.DialTemporal(cfg, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, productworkflows.ProductCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(productworkflows.ProductCreationWorkflow, workflow.RegisterOptions{Name: productworkflows.ProductCreationWorkflowName})
	w.RegisterActivityWithOptions(productActivities.CreateProduct, activity.RegisterOptions{Name: productactivities.CreateProductActivityName})

	logger.Info("worker listening", slog.String("taskQueue", productworkflows.ProductCreationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
