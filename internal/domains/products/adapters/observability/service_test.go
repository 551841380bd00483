package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/domain"
)

type stubService struct {
	created *types.ProductProjection
	list    []*types.ProductProjection
	err     error
}

func (s stubService) CreateProduct(context.Context, types.CreateProductInput) (*types.ProductProjection, error) {
	return s.created, s.err
}

func (s stubService) ListSellingProducts(context.Context) ([]*types.ProductProjection, error) {
	return s.list, s.err
}

func (s stubService) ListProducts(context.Context, types.ListProductsInput) ([]*types.ProductProjection, error) {
	return s.list, s.err
}

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	recorder := tracetest.NewSpanRecorder()
	return recorder, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestService_CreateProductRecordsSpanAndCounter(t *testing.T) {
	recorder, provider := newRecorder()
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	product := &domain.Product{ID: 3, Number: "003", Type: domain.TypeBakery, SellingStatus: domain.SellingStatusSelling, Name: "Bingsu", Price: 7000}
	created := &types.ProductProjection{Product: product}
	svc := New(stubService{created: created}, WithTracer(provider.Tracer("test")), WithMeter(meter))

	got, err := svc.CreateProduct(context.Background(), types.CreateProductInput{Name: "Bingsu", Price: 7000, Type: "BAKERY", SellingStatus: "SELLING"})
	require.NoError(t, err)
	require.Same(t, created, got)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "ProductService.CreateProduct", spans[0].Name())
	number, ok := spanAttr(spans[0], "product.number")
	require.True(t, ok)
	require.Equal(t, "003", number.AsString())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	metrics := rm.ScopeMetrics[0].Metrics
	require.Len(t, metrics, 1)
	require.Equal(t, "products.service.products_created", metrics[0].Name)
	sum, ok := metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	require.Equal(t, int64(1), sum.DataPoints[0].Value)
}

func TestService_ListCountsProducts(t *testing.T) {
	recorder, provider := newRecorder()
	list := []*types.ProductProjection{
		{Product: &domain.Product{Number: "001"}},
		{Product: &domain.Product{Number: "002"}},
	}
	svc := New(stubService{list: list}, WithTracer(provider.Tracer("test")))

	_, err := svc.ListSellingProducts(context.Background())
	require.NoError(t, err)
	_, err = svc.ListProducts(context.Background(), types.ListProductsInput{SellingStatuses: []string{"HOLD"}})
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "ProductService.ListSellingProducts", spans[0].Name())
	require.Equal(t, "ProductService.ListProducts", spans[1].Name())
	for _, span := range spans {
		count, ok := spanAttr(span, "products.count")
		require.True(t, ok)
		require.Equal(t, int64(2), count.AsInt64())
	}
}

func TestService_RecordsErrors(t *testing.T) {
	recorder, provider := newRecorder()
	boom := errors.New("boom")
	svc := New(stubService{err: boom}, WithTracer(provider.Tracer("test")))

	_, err := svc.CreateProduct(context.Background(), types.CreateProductInput{Name: "Americano"})
	require.ErrorIs(t, err, boom)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.Len(t, spans[0].Events(), 1)
}
