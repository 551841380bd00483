package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	cafekioskserver "github.com/Apurer/go-gin-cafe-kiosk/go"

	ordercatalog "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/adapters/catalog"
	ordersobs "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/application"
	productsobs "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/adapters/observability"
	productsworkflows "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/adapters/workflows"
	productsapp "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application"
	productsports "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/ports"
	platformmetrics "github.com/Apurer/go-gin-cafe-kiosk/internal/platform/metrics"
	platformobservability "github.com/Apurer/go-gin-cafe-kiosk/internal/platform/observability"
)

const serviceName = "cafe-kiosk-api"

// Run boots the kiosk HTTP API with observability, repositories, and workflows
// wired, and serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, cleanupStores := OpenStores(ctx, cfg, logger)
	defer cleanupStores()

	productService := productsobs.New(
		productsapp.NewService(stores.Products),
		productsobs.WithLogger(logger),
		productsobs.WithTracer(instruments.Tracer("internal.products.application")),
		productsobs.WithMeter(instruments.Meter("internal.products.application")),
	)
	var productWorkflows productsports.WorkflowOrchestrator = productsworkflows.NewInlineProductWorkflows(productService)
	if temporalClient, err := DialTemporal(cfg, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline CreateProduct", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		productWorkflows = productsworkflows.NewTemporalProductWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	orderService := ordersobs.New(
		ordersapp.NewService(
			stores.Orders,
			ordercatalog.NewProductCatalog(stores.Products),
			ordersapp.WithIdempotencyStore(stores.Idempotency),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	handlers := cafekioskserver.ApiHandleFunctions{
		ProductAPI: cafekioskserver.NewProductAPI(productService, productWorkflows),
		OrderAPI:   cafekioskserver.NewOrderAPI(orderService),
		HealthAPI:  cafekioskserver.NewHealthAPI(stores.HealthChecks),
	}
	router := newEngine(cfg, handlers)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Cafe kiosk API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Cafe kiosk API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down Cafe kiosk API", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func newEngine(cfg Config, handlers cafekioskserver.ApiHandleFunctions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), cafekioskserver.RequestID(), otelgin.Middleware(serviceName))
	if cfg.MetricsEnabled {
		httpMetrics := platformmetrics.NewHTTPMetrics("api")
		router.Use(httpMetrics.Middleware())
		router.GET("/metrics", gin.WrapH(httpMetrics.Handler()))
	}
	return cafekioskserver.NewRouterWithGinEngine(router, handlers)
}
