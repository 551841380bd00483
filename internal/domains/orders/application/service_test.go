package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordermemory "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/adapters/memory"
	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/ports"
)

var registeredAt = time.Date(2023, 3, 10, 10, 0, 0, 0, time.UTC)

// fakeCatalog answers lookups in reverse insertion order and records queries.
type fakeCatalog struct {
	products []ports.ProductSnapshot
	queries  [][]string
	err      error
}

func (c *fakeCatalog) FindAllByProductNumberIn(_ context.Context, numbers []string) ([]ports.ProductSnapshot, error) {
	c.queries = append(c.queries, append([]string(nil), numbers...))
	if c.err != nil {
		return nil, c.err
	}
	wanted := map[string]bool{}
	for _, n := range numbers {
		wanted[n] = true
	}
	var result []ports.ProductSnapshot
	for i := len(c.products) - 1; i >= 0; i-- {
		if wanted[c.products[i].Number] {
			result = append(result, c.products[i])
		}
	}
	return result, nil
}

func baselineCatalog() *fakeCatalog {
	return &fakeCatalog{products: []ports.ProductSnapshot{
		{ID: 1, Number: "001", Name: "Americano", Price: 4000},
		{ID: 2, Number: "002", Name: "Cafe Latte", Price: 4500},
		{ID: 3, Number: "003", Name: "Bingsu", Price: 7000},
	}}
}

func TestCreateOrder_DuplicateNumbersKeepCardinality(t *testing.T) {
	catalog := baselineCatalog()
	svc := NewService(ordermemory.NewRepository(), catalog)

	order, err := svc.CreateOrder(context.Background(), types.CreateOrderInput{
		ProductNumbers: []string{"001", "001"},
		RegisteredAt:   registeredAt,
	})
	require.NoError(t, err)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, int64(8000), order.TotalPrice)
	assert.Equal(t, []string{"001", "001"}, order.ProductNumbers())
	assert.Equal(t, registeredAt, order.RegisteredAt)
	assert.Equal(t, domain.StatusInit, order.Status)
	assert.NotZero(t, order.ID)
	require.Len(t, catalog.queries, 1)
	assert.Equal(t, []string{"001"}, catalog.queries[0])
}

func TestCreateOrder_PreservesRequestOrder(t *testing.T) {
	svc := NewService(ordermemory.NewRepository(), baselineCatalog())

	order, err := svc.CreateOrder(context.Background(), types.CreateOrderInput{
		ProductNumbers: []string{"001", "002"},
		RegisteredAt:   registeredAt,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"001", "002"}, order.ProductNumbers())
	assert.Equal(t, "Americano", order.Lines[0].Name)
	assert.Equal(t, "Cafe Latte", order.Lines[1].Name)
	assert.Equal(t, int64(8500), order.TotalPrice)
}

func TestCreateOrder_UnknownNumbersRejectOrder(t *testing.T) {
	repo := ordermemory.NewRepository()
	svc := NewService(repo, baselineCatalog())

	_, err := svc.CreateOrder(context.Background(), types.CreateOrderInput{
		ProductNumbers: []string{"001", "404", "405", "404"},
		RegisteredAt:   registeredAt,
	})
	require.ErrorIs(t, err, ErrUnknownProductNumbers)
	var unknown *UnknownProductNumbersError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"404", "405"}, unknown.Numbers)

	orders, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreateOrder_EmptyRequestIsInvalid(t *testing.T) {
	catalog := baselineCatalog()
	svc := NewService(ordermemory.NewRepository(), catalog)

	_, err := svc.CreateOrder(context.Background(), types.CreateOrderInput{ProductNumbers: []string{" ", ""}})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNoProducts)
	assert.Empty(t, catalog.queries)
}

func TestCreateOrder_BlankEntryRejectsOrder(t *testing.T) {
	repo := ordermemory.NewRepository()
	catalog := baselineCatalog()
	svc := NewService(repo, catalog)

	_, err := svc.CreateOrder(context.Background(), types.CreateOrderInput{
		ProductNumbers: []string{"001", "", "002"},
		RegisteredAt:   registeredAt,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyProductNumber)
	assert.Empty(t, catalog.queries)

	orders, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreateOrder_DefaultsRegistrationTimeToClock(t *testing.T) {
	svc := NewService(ordermemory.NewRepository(), baselineCatalog(), WithClock(func() time.Time { return registeredAt }))

	order, err := svc.CreateOrder(context.Background(), types.CreateOrderInput{ProductNumbers: []string{"003"}})
	require.NoError(t, err)
	assert.Equal(t, registeredAt, order.RegisteredAt)
}

func TestCreateOrder_CatalogFailurePropagates(t *testing.T) {
	boom := errors.New("catalog down")
	svc := NewService(ordermemory.NewRepository(), &fakeCatalog{err: boom})

	_, err := svc.CreateOrder(context.Background(), types.CreateOrderInput{ProductNumbers: []string{"001"}, RegisteredAt: registeredAt})
	require.ErrorIs(t, err, boom)
}

func TestCreateOrder_IdempotentReplay(t *testing.T) {
	repo := ordermemory.NewRepository()
	svc := NewService(repo, baselineCatalog(), WithIdempotencyStore(ordermemory.NewIdempotencyStore()))
	ctx := context.Background()
	input := types.CreateOrderInput{ProductNumbers: []string{"001", "002"}, RegisteredAt: registeredAt, IdempotencyKey: "order-1"}

	first, err := svc.CreateOrder(ctx, input)
	require.NoError(t, err)
	second, err := svc.CreateOrder(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	input.ProductNumbers = []string{"003"}
	_, err = svc.CreateOrder(ctx, input)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}

// racingStore lets another request hold the key right before the service claims it.
type racingStore struct {
	*ordermemory.IdempotencyStore
	rival func(ctx context.Context, key string)
}

func (s *racingStore) Claim(ctx context.Context, key, requestHash string) (*ports.IdempotencyRecord, bool, error) {
	if s.rival != nil {
		s.rival(ctx, key)
		s.rival = nil
	}
	return s.IdempotencyStore.Claim(ctx, key, requestHash)
}

func TestCreateOrder_KeyClaimedByDifferentRequestStoresNothing(t *testing.T) {
	repo := ordermemory.NewRepository()
	store := &racingStore{IdempotencyStore: ordermemory.NewIdempotencyStore()}
	store.rival = func(ctx context.Context, key string) {
		_, claimed, err := store.IdempotencyStore.Claim(ctx, key, "other-request")
		require.NoError(t, err)
		require.True(t, claimed)
		require.NoError(t, store.IdempotencyStore.Complete(ctx, key, 41))
	}
	svc := NewService(repo, baselineCatalog(), WithIdempotencyStore(store))
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, types.CreateOrderInput{ProductNumbers: []string{"001"}, RegisteredAt: registeredAt, IdempotencyKey: "k"})
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreateOrder_KeyClaimedBySameRequestReplays(t *testing.T) {
	repo := ordermemory.NewRepository()
	store := &racingStore{IdempotencyStore: ordermemory.NewIdempotencyStore()}
	svc := NewService(repo, baselineCatalog(), WithIdempotencyStore(store))
	ctx := context.Background()
	input := types.CreateOrderInput{ProductNumbers: []string{"001", "002"}, RegisteredAt: registeredAt, IdempotencyKey: "k"}
	fingerprint, err := FingerprintCreateOrder(input)
	require.NoError(t, err)

	store.rival = func(ctx context.Context, key string) {
		_, claimed, err := store.IdempotencyStore.Claim(ctx, key, fingerprint)
		require.NoError(t, err)
		require.True(t, claimed)
	}
	_, err = svc.CreateOrder(ctx, input)
	require.ErrorIs(t, err, ports.ErrIdempotencyInProgress)
	orders, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	winner, err := repo.Save(ctx, mustOrder(t, input))
	require.NoError(t, err)
	require.NoError(t, store.Complete(ctx, "k", winner.ID))

	replayed, err := svc.CreateOrder(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, replayed.ID)
	orders, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestCreateOrder_RejectedRequestReleasesKey(t *testing.T) {
	repo := ordermemory.NewRepository()
	store := ordermemory.NewIdempotencyStore()
	svc := NewService(repo, baselineCatalog(), WithIdempotencyStore(store))
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, types.CreateOrderInput{ProductNumbers: []string{"404"}, RegisteredAt: registeredAt, IdempotencyKey: "k"})
	require.ErrorIs(t, err, ErrUnknownProductNumbers)
	record, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, record)

	order, err := svc.CreateOrder(ctx, types.CreateOrderInput{ProductNumbers: []string{"003"}, RegisteredAt: registeredAt, IdempotencyKey: "k"})
	require.NoError(t, err)
	record, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, order.ID, record.OrderID)
}

func mustOrder(t *testing.T, input types.CreateOrderInput) *domain.Order {
	t.Helper()
	lines := make([]domain.Line, 0, len(input.ProductNumbers))
	for _, number := range input.ProductNumbers {
		for _, p := range baselineCatalog().products {
			if p.Number == number {
				lines = append(lines, domain.Line{ProductID: p.ID, ProductNumber: p.Number, Name: p.Name, Price: p.Price})
			}
		}
	}
	order, err := domain.NewOrder(lines, input.RegisteredAt)
	require.NoError(t, err)
	return order
}

func TestCreateOrder_WithoutKeyCreatesEachTime(t *testing.T) {
	repo := ordermemory.NewRepository()
	svc := NewService(repo, baselineCatalog(), WithIdempotencyStore(ordermemory.NewIdempotencyStore()))
	ctx := context.Background()
	input := types.CreateOrderInput{ProductNumbers: []string{"001"}, RegisteredAt: registeredAt}

	first, err := svc.CreateOrder(ctx, input)
	require.NoError(t, err)
	second, err := svc.CreateOrder(ctx, input)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGetOrder(t *testing.T) {
	svc := NewService(ordermemory.NewRepository(), baselineCatalog())
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, types.CreateOrderInput{ProductNumbers: []string{"002"}, RegisteredAt: registeredAt})
	require.NoError(t, err)

	loaded, err := svc.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, loaded)

	_, err = svc.GetOrder(ctx, created.ID+1)
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = svc.GetOrder(ctx, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestFingerprintCreateOrder(t *testing.T) {
	base, err := FingerprintCreateOrder(types.CreateOrderInput{ProductNumbers: []string{"001", "002"}, RegisteredAt: registeredAt, IdempotencyKey: "a"})
	require.NoError(t, err)

	sameWithSpaces, err := FingerprintCreateOrder(types.CreateOrderInput{ProductNumbers: []string{" 001", "002 "}, RegisteredAt: registeredAt.In(time.FixedZone("KST", 9*3600)), IdempotencyKey: "b"})
	require.NoError(t, err)
	assert.Equal(t, base, sameWithSpaces)

	reordered, err := FingerprintCreateOrder(types.CreateOrderInput{ProductNumbers: []string{"002", "001"}, RegisteredAt: registeredAt})
	require.NoError(t, err)
	assert.NotEqual(t, base, reordered)

	withoutTime, err := FingerprintCreateOrder(types.CreateOrderInput{ProductNumbers: []string{"001", "002"}})
	require.NoError(t, err)
	assert.NotEqual(t, base, withoutTime)
}
