package products

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	productsapp "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application"
	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/ports"
)

const (
	// CreateProductActivityName assigns the next product number and persists the product.
	CreateProductActivityName = "products.activities.CreateProduct"
	// InvalidProductInputErrorType tags non-retryable validation failures.
	InvalidProductInputErrorType = "InvalidProductInput"
)

// Activities groups activities that operate on the products bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the products service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// CreateProduct registers a product and returns its projection. Validation
// failures are not retried.
func (a *Activities) CreateProduct(ctx context.Context, input types.CreateProductInput) (*types.ProductProjection, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("product create activity not initialized", "productName", input.Name)
		return nil, errors.New("product create activity not initialized")
	}
	logger.Info("CreateProduct activity started", "productName", input.Name)
	projection, err := a.service.CreateProduct(ctx, input)
	if err != nil {
		logger.Error("CreateProduct activity failed", "productName", input.Name, "error", err)
		if errors.Is(err, productsapp.ErrInvalidInput) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), InvalidProductInputErrorType, err)
		}
		return nil, err
	}
	logger.Info("CreateProduct activity completed", "productNumber", projection.Product.Number)
	return projection, nil
}
