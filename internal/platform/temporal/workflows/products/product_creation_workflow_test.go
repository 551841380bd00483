package products

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	productmemory "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/adapters/memory"
	productsapp "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application"
	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
	productactivities "github.com/Apurer/go-gin-cafe-kiosk/internal/platform/temporal/activities/products"
)

func newTestEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	activities := productactivities.NewActivities(productsapp.NewService(productmemory.NewRepository()))
	env.RegisterWorkflowWithOptions(ProductCreationWorkflow, workflow.RegisterOptions{Name: ProductCreationWorkflowName})
	env.RegisterActivityWithOptions(activities.CreateProduct, activity.RegisterOptions{Name: productactivities.CreateProductActivityName})
	return env
}

func TestProductCreationWorkflow_PersistsProduct(t *testing.T) {
	env := newTestEnv(t)

	env.ExecuteWorkflow(ProductCreationWorkflowName, ProductCreationWorkflowInput{
		Command: types.CreateProductInput{Name: "Americano", Price: 4000, Type: "HANDMADE", SellingStatus: "SELLING"},
		TraceID: "trace-1",
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var result types.ProductProjection
	require.NoError(t, env.GetWorkflowResult(&result))
	require.NotNil(t, result.Product)
	require.Equal(t, "001", result.Product.Number)
	require.Equal(t, "Americano", result.Product.Name)
}

func TestProductCreationWorkflow_InvalidInputIsNotRetried(t *testing.T) {
	env := newTestEnv(t)

	env.ExecuteWorkflow(ProductCreationWorkflowName, ProductCreationWorkflowInput{
		Command: types.CreateProductInput{Name: "", Price: 4000, Type: "HANDMADE", SellingStatus: "SELLING"},
	})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, productactivities.InvalidProductInputErrorType, appErr.Type())
	require.True(t, appErr.NonRetryable())
}

func TestProductCreationWorkflow_StoreFailureRunsActivityOnce(t *testing.T) {
	env := newTestEnv(t)
	calls := 0
	env.OnActivity(productactivities.CreateProductActivityName, mock.Anything, mock.Anything).
		Return(func(context.Context, types.CreateProductInput) (*types.ProductProjection, error) {
			calls++
			return nil, errors.New("commit acknowledgement lost")
		})

	env.ExecuteWorkflow(ProductCreationWorkflowName, ProductCreationWorkflowInput{
		Command: types.CreateProductInput{Name: "Americano", Price: 4000, Type: "HANDMADE", SellingStatus: "SELLING"},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	require.Equal(t, 1, calls)
}
