package ports

import (
	"context"

	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
)

// WorkflowOrchestrator exposes durable workflow operations required by the products bounded context.
type WorkflowOrchestrator interface {
	CreateProduct(ctx context.Context, input types.CreateProductInput) (*types.ProductProjection, error)
}
