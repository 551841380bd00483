package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	productsapp "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application"
	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/ports"
	productactivities "github.com/Apurer/go-gin-cafe-kiosk/internal/platform/temporal/activities/products"
	productworkflows "github.com/Apurer/go-gin-cafe-kiosk/internal/platform/temporal/workflows/products"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalProductWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineProductWorkflows)(nil)
)

// TemporalProductWorkflows starts product workflows on a Temporal cluster.
type TemporalProductWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalProductWorkflows wires a Temporal client into the orchestrator.
func NewTemporalProductWorkflows(c client.Client) *TemporalProductWorkflows {
	return &TemporalProductWorkflows{client: c, taskQueue: productworkflows.ProductCreationTaskQueue}
}

// CreateProduct starts the Temporal workflow that registers a product and waits for its result.
func (o *TemporalProductWorkflows) CreateProduct(ctx context.Context, input types.CreateProductInput) (*types.ProductProjection, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal product workflows not configured")
	}
	traceID := workflowTraceID(ctx)
	workflowID := buildProductCreationWorkflowID(traceID)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		productworkflows.ProductCreationWorkflowName,
		productworkflows.ProductCreationWorkflowInput{Command: input, TraceID: traceID},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var projection types.ProductProjection
	if err := run.Get(ctx, &projection); err != nil {
		return nil, translateWorkflowError(err)
	}
	return &projection, nil
}

// translateWorkflowError restores the application sentinel for validation
// failures that crossed the Temporal boundary as application errors.
func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == productactivities.InvalidProductInputErrorType {
		return fmt.Errorf("%w: %s", productsapp.ErrInvalidInput, appErr.Message())
	}
	return err
}

// InlineProductWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineProductWorkflows struct {
	service ports.Service
}

// NewInlineProductWorkflows wraps the products service for synchronous execution.
func NewInlineProductWorkflows(service ports.Service) *InlineProductWorkflows {
	return &InlineProductWorkflows{service: service}
}

// CreateProduct delegates to the application service without durable orchestration.
func (o *InlineProductWorkflows) CreateProduct(ctx context.Context, input types.CreateProductInput) (*types.ProductProjection, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline product workflows not configured")
	}
	return o.service.CreateProduct(ctx, input)
}

func buildProductCreationWorkflowID(traceID string) string {
	if traceID == "" {
		return fmt.Sprintf("product-creation-%s", uuid.NewString())
	}
	return fmt.Sprintf("product-creation-%s-%s", traceID, uuid.NewString()[:8])
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
