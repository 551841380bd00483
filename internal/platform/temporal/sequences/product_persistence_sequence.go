package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
	productactivities "github.com/Apurer/go-gin-cafe-kiosk/internal/platform/temporal/activities/products"
)

// RunProductPersistenceSequence executes the ordered set of activities needed to register a product.
func RunProductPersistenceSequence(ctx workflow.Context, input types.CreateProductInput) (*types.ProductProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("product persistence sequence started", "productName", input.Name)
	// CreateProduct assigns a fresh number on every run, so a retry after a
	// commit whose result was lost would register the product twice.
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts:        1,
			NonRetryableErrorTypes: []string{productactivities.InvalidProductInputErrorType},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var projection types.ProductProjection
	err := workflow.ExecuteActivity(ctx, productactivities.CreateProductActivityName, input).Get(ctx, &projection)
	if err != nil {
		logger.Error("product persistence sequence failed", "productName", input.Name, "error", err)
		return nil, err
	}
	if projection.Product != nil {
		logger.Info("product persistence sequence completed", "productNumber", projection.Product.Number)
	} else {
		logger.Info("product persistence sequence completed")
	}
	return &projection, nil
}
