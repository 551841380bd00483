package cafekioskserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	producthttpmapper "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/adapters/http/mapper"
	productstypes "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
	productsports "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/ports"
)

// ProductAPI wires HTTP transport with the products bounded context service and workflows.
type ProductAPI struct {
	service   productsports.Service
	workflows productsports.WorkflowOrchestrator
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service productsports.Service, workflows productsports.WorkflowOrchestrator) ProductAPI {
	return ProductAPI{service: service, workflows: workflows}
}

// Post /api/v1/products/new
// Register a catalog product with the next product number
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload producthttpmapper.CreateProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.createProduct(c.Request.Context(), producthttpmapper.ToCreateInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromProjection(saved))
}

func (api *ProductAPI) createProduct(ctx context.Context, input productstypes.CreateProductInput) (*productstypes.ProductProjection, error) {
	if api.workflows != nil {
		return api.workflows.CreateProduct(ctx, input)
	}
	return api.service.CreateProduct(ctx, input)
}

// Get /api/v1/products/selling
// List products shown at the kiosk
func (api *ProductAPI) ListSellingProducts(c *gin.Context) {
	result, err := api.service.ListSellingProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromProjectionList(result))
}

// Get /api/v1/products
// List products filtered by selling status
func (api *ProductAPI) ListProducts(c *gin.Context) {
	var statuses []string
	if err := runtime.BindQueryParameter("form", true, false, "sellingStatus", c.Request.URL.Query(), &statuses); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.service.ListProducts(c.Request.Context(), productstypes.ListProductsInput{SellingStatuses: statuses})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromProjectionList(result))
}
