package api

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	ordersports "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-gin-cafe-kiosk/internal/platform/observability"
)

// Config carries environment-driven settings for the kiosk processes.
type Config struct {
	Port              string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	MetricsEnabled    bool
	ShutdownTimeout   time.Duration
	Environment       string
	LogLevel          slog.Level
	TraceExporter     string
	OTLPEndpoint      string
	OTLPInsecure      bool
	IdempotencyKeyTTL time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		MetricsEnabled:    true,
		ShutdownTimeout:   5 * time.Second,
		Environment:       envDefault("ENVIRONMENT", "local"),
		TraceExporter:     envDefault("OTEL_TRACES_EXPORTER", platformobservability.ExporterOTLP),
		OTLPEndpoint:      strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:      strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")) != "0",
		IdempotencyKeyTTL: ordersports.DefaultIdempotencyKeyTTL,
	}
	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be a TCP port number, got %q", cfg.Port)
	}
	if raw := strings.TrimSpace(os.Getenv("METRICS_ENABLED")); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("METRICS_ENABLED must be a boolean, got %q", raw)
		}
		cfg.MetricsEnabled = enabled
	}
	if raw := strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv("IDEMPOTENCY_KEY_TTL_HOURS")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return Config{}, fmt.Errorf("IDEMPOTENCY_KEY_TTL_HOURS must be a positive integer")
		}
		cfg.IdempotencyKeyTTL = time.Duration(hours) * time.Hour
	}
	level, err := platformobservability.ParseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Observability derives the telemetry settings for the named service.
func (c Config) Observability(serviceName string) platformobservability.Config {
	return platformobservability.Config{
		ServiceName:   serviceName,
		Environment:   c.Environment,
		LogLevel:      c.LogLevel,
		TraceExporter: c.TraceExporter,
		OTLPEndpoint:  c.OTLPEndpoint,
		OTLPInsecure:  c.OTLPInsecure,
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
