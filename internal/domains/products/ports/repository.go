package ports

import (
	"context"
	"errors"

	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/domain"
)

var (
	ErrNotFound               = errors.New("product not found")
	ErrDuplicateProductNumber = errors.New("product number already exists")
)

// Repository persists catalog products and answers catalog queries.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*types.ProductProjection, error)
	// FindLatestProductNumber returns the number of the most recently inserted
	// product, or "" when the catalog is empty.
	FindLatestProductNumber(ctx context.Context) (string, error)
	FindAllBySellingStatusIn(ctx context.Context, statuses []domain.SellingStatus) ([]*types.ProductProjection, error)
	FindAllByProductNumberIn(ctx context.Context, numbers []string) ([]*types.ProductProjection, error)
	List(ctx context.Context) ([]*types.ProductProjection, error)
	DeleteAll(ctx context.Context) error
	// WithNumberingLock runs fn while no other caller can assign product
	// numbers. Reads and writes made through repo belong to the same unit of work.
	WithNumberingLock(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
