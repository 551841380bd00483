package types

import (
	"time"

	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/domain"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/shared/projection"
)

// ProductProjection transports a domain aggregate together with its persistence metadata.
type ProductProjection struct {
	Product  *domain.Product
	Metadata projection.Metadata
}

// NewProductProjection wraps an aggregate with persistence metadata.
func NewProductProjection(product *domain.Product, createdAt, updatedAt time.Time) *ProductProjection {
	if product == nil {
		return nil
	}
	return &ProductProjection{
		Product:  product,
		Metadata: projection.Metadata{CreatedAt: createdAt, UpdatedAt: updatedAt},
	}
}
