package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders together with their ordered lines.
type Repository interface {
	// Save stores the order and its lines atomically and assigns an id to new orders.
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	DeleteAll(ctx context.Context) error
}
