package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/domain"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/ports"
)

const tracerName = "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/adapters/observability/service"

// Service decorates the products service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core products service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateProduct(ctx context.Context, input types.CreateProductInput) (*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct",
		trace.WithAttributes(attribute.String("product.type", input.Type), attribute.String("product.selling_status", input.SellingStatus)))
	defer span.End()

	s.logInfo(ctx, "creating product", slog.String("product.name", input.Name), slog.Int64("product.price", input.Price))
	result, err := s.inner.CreateProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("product.name", input.Name))
	}
	span.SetAttributes(attribute.String("product.number", result.Product.Number), attribute.Int64("product.id", result.Product.ID))
	s.metrics.recordCreated(ctx, result.Product.Type)
	s.logInfo(ctx, "product created", slog.String("product.number", result.Product.Number), slog.Int64("product.id", result.Product.ID))
	return result, nil
}

func (s *Service) ListSellingProducts(ctx context.Context) ([]*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListSellingProducts")
	defer span.End()

	result, err := s.inner.ListSellingProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list selling products")
	}
	span.SetAttributes(attribute.Int("products.count", len(result)))
	return result, nil
}

func (s *Service) ListProducts(ctx context.Context, input types.ListProductsInput) ([]*types.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListProducts",
		trace.WithAttributes(attribute.StringSlice("product.selling_statuses", input.SellingStatuses)))
	defer span.End()

	result, err := s.inner.ListProducts(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("products.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	productsCreated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	productsCreated, _ := m.Int64Counter("products.service.products_created", metric.WithDescription("Number of products registered"))
	return serviceMetrics{productsCreated: productsCreated}
}

func (m serviceMetrics) recordCreated(ctx context.Context, productType domain.Type) {
	if m.productsCreated != nil {
		m.productsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("product.type", string(productType))))
	}
}

var _ ports.Service = (*Service)(nil)
