package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/domain"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/ports"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*storedProduct
	nextID   int64
	now      func() time.Time

	// numbering serializes product number assignment; it is never taken by
	// the other methods so they stay callable while it is held.
	numbering sync.Mutex
}

type storedProduct struct {
	product  domain.Product
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		products: map[int64]*storedProduct{},
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts a product, assigning an ID when absent, or replaces an existing one.
func (r *Repository) Save(_ context.Context, product *domain.Product) (*types.ProductProjection, error) {
	if product == nil {
		return nil, errors.New("cannot save nil product")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.products {
		if entry.product.Number == product.Number && id != product.ID {
			return nil, ports.ErrDuplicateProductNumber
		}
	}

	clone := *product
	timestamp := r.now()
	metadata := projection.Created(timestamp)
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if existing, ok := r.products[clone.ID]; ok {
		metadata = existing.metadata.Updated(timestamp)
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	stored := &storedProduct{product: clone, metadata: metadata}
	r.products[clone.ID] = stored
	return stored.projection(), nil
}

// FindLatestProductNumber returns the number of the product with the highest ID.
func (r *Repository) FindLatestProductNumber(_ context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var (
		latestID int64
		number   string
	)
	for id, entry := range r.products {
		if id > latestID {
			latestID = id
			number = entry.product.Number
		}
	}
	return number, nil
}

// FindAllBySellingStatusIn returns products matching any provided status.
func (r *Repository) FindAllBySellingStatusIn(_ context.Context, statuses []domain.SellingStatus) ([]*types.ProductProjection, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	wanted := make(map[domain.SellingStatus]struct{}, len(statuses))
	for _, status := range statuses {
		wanted[status] = struct{}{}
	}
	return r.filter(func(p domain.Product) bool {
		_, ok := wanted[p.SellingStatus]
		return ok
	}), nil
}

// FindAllByProductNumberIn returns one entry per distinct matching number.
func (r *Repository) FindAllByProductNumberIn(_ context.Context, numbers []string) ([]*types.ProductProjection, error) {
	if len(numbers) == 0 {
		return nil, nil
	}
	wanted := make(map[string]struct{}, len(numbers))
	for _, number := range numbers {
		wanted[number] = struct{}{}
	}
	return r.filter(func(p domain.Product) bool {
		_, ok := wanted[p.Number]
		return ok
	}), nil
}

// List returns every persisted product ordered by ID.
func (r *Repository) List(_ context.Context) ([]*types.ProductProjection, error) {
	return r.filter(func(domain.Product) bool { return true }), nil
}

// DeleteAll empties the catalog. ID assignment keeps increasing.
func (r *Repository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = map[int64]*storedProduct{}
	return nil
}

// WithNumberingLock runs fn while holding the numbering mutex.
func (r *Repository) WithNumberingLock(ctx context.Context, fn func(ctx context.Context, repo ports.Repository) error) error {
	r.numbering.Lock()
	defer r.numbering.Unlock()
	return fn(ctx, r)
}

func (r *Repository) filter(keep func(domain.Product) bool) []*types.ProductProjection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.products))
	for id, entry := range r.products {
		if keep(entry.product) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]*types.ProductProjection, 0, len(ids))
	for _, id := range ids {
		result = append(result, r.products[id].projection())
	}
	return result
}

func (s *storedProduct) projection() *types.ProductProjection {
	product := s.product
	return &types.ProductProjection{Product: &product, Metadata: s.metadata}
}
