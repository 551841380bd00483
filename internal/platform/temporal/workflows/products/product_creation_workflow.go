package products

import (
	"go.temporal.io/sdk/workflow"

	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/platform/temporal/sequences"
)

const (
	// ProductCreationWorkflowName is the public identifier for registering the workflow.
	ProductCreationWorkflowName = "products.workflows.Creation"
	// ProductCreationTaskQueue is the queue consumed by the worker processing product workflows.
	ProductCreationTaskQueue = "PRODUCT_CREATION"
)

// ProductCreationWorkflowInput captures the payload required to register a product.
type ProductCreationWorkflowInput struct {
	Command types.CreateProductInput
	TraceID string
}

// ProductCreationWorkflow orchestrates the activities needed to register a catalog product.
func ProductCreationWorkflow(ctx workflow.Context, input ProductCreationWorkflowInput) (*types.ProductProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("ProductCreationWorkflow started", withTraceID(input.TraceID, "productName", input.Command.Name)...)
	projection, err := sequences.RunProductPersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("ProductCreationWorkflow failed", withTraceID(input.TraceID, "productName", input.Command.Name, "error", err)...)
		return nil, err
	}
	if projection != nil && projection.Product != nil {
		logger.Info("ProductCreationWorkflow completed", withTraceID(input.TraceID, "productNumber", projection.Product.Number)...)
	} else {
		logger.Info("ProductCreationWorkflow completed", withTraceID(input.TraceID)...)
	}
	return projection, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
