package ports

import (
	"context"

	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
)

// Service defines the catalog use cases exposed to adapters (inbound/driving port).
type Service interface {
	CreateProduct(ctx context.Context, input types.CreateProductInput) (*types.ProductProjection, error)
	ListSellingProducts(ctx context.Context) ([]*types.ProductProjection, error)
	ListProducts(ctx context.Context, input types.ListProductsInput) ([]*types.ProductProjection, error)
}
