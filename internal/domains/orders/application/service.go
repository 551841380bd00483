package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/ports"
)

// Service orchestrates the order use cases.
type Service struct {
	repo        ports.Repository
	catalog     ports.ProductCatalog
	idempotency ports.IdempotencyStore
	now         func() time.Time
}

type Option func(*Service)

// WithIdempotencyStore enables Idempotency-Key replays for CreateOrder.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// WithClock overrides the time source used when a request omits its registration time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, catalog ports.ProductCatalog, opts ...Option) *Service {
	s := &Service{repo: repo, catalog: catalog, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder resolves the requested product numbers against the catalog and
// persists an order whose lines follow the request order, repeats included.
// With an idempotency key the key is claimed before anything is written, so a
// lost race or a rejected request leaves no order behind.
func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*domain.Order, error) {
	numbers, err := normalizeNumbers(input.ProductNumbers)
	if err != nil {
		return nil, mapError(err)
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	if key == "" || s.idempotency == nil {
		return s.placeOrder(ctx, numbers, input.RegisteredAt)
	}
	fingerprint, err := FingerprintCreateOrder(input)
	if err != nil {
		return nil, err
	}
	record, claimed, err := s.idempotency.Claim(ctx, key, fingerprint)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return s.replay(ctx, record, fingerprint)
	}

	order, err := s.placeOrder(ctx, numbers, input.RegisteredAt)
	if err != nil {
		if releaseErr := s.idempotency.Release(context.WithoutCancel(ctx), key); releaseErr != nil {
			return nil, errors.Join(err, fmt.Errorf("release idempotency key: %w", releaseErr))
		}
		return nil, err
	}
	// A failed completion keeps the claim pending, so retries answer
	// ErrIdempotencyInProgress until the key is purged instead of ordering twice.
	if err := s.idempotency.Complete(context.WithoutCancel(ctx), key, order.ID); err != nil {
		return nil, fmt.Errorf("order %d stored but idempotency key not completed: %w", order.ID, err)
	}
	return order, nil
}

// GetOrder loads a persisted order.
func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: order id must be greater than zero", ErrInvalidInput)
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

func (s *Service) placeOrder(ctx context.Context, numbers []string, registeredAt time.Time) (*domain.Order, error) {
	lines, err := s.resolveLines(ctx, numbers)
	if err != nil {
		return nil, mapError(err)
	}
	if registeredAt.IsZero() {
		registeredAt = s.now().Truncate(time.Microsecond)
	}
	order, err := domain.NewOrder(lines, registeredAt)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) replay(ctx context.Context, existing *ports.IdempotencyRecord, fingerprint string) (*domain.Order, error) {
	switch {
	case existing.RequestHash != fingerprint:
		return nil, ports.ErrIdempotencyConflict
	case existing.Pending():
		return nil, ports.ErrIdempotencyInProgress
	}
	return s.repo.GetByID(ctx, existing.OrderID)
}

// resolveLines queries the catalog once with the distinct numbers and then
// walks the original sequence so each request slot gets its own line.
func (s *Service) resolveLines(ctx context.Context, numbers []string) ([]domain.Line, error) {
	products, err := s.catalog.FindAllByProductNumberIn(ctx, distinct(numbers))
	if err != nil {
		return nil, err
	}
	byNumber := make(map[string]ports.ProductSnapshot, len(products))
	for _, p := range products {
		byNumber[p.Number] = p
	}

	lines := make([]domain.Line, 0, len(numbers))
	var missing []string
	for _, number := range numbers {
		product, ok := byNumber[number]
		if !ok {
			missing = append(missing, number)
			continue
		}
		lines = append(lines, domain.Line{
			ProductID:     product.ID,
			ProductNumber: product.Number,
			Name:          product.Name,
			Price:         product.Price,
		})
	}
	if len(missing) > 0 {
		return nil, &UnknownProductNumbersError{Numbers: distinct(missing)}
	}
	return lines, nil
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

var _ ports.Service = (*Service)(nil)
