package catalog

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/ports"
	productports "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/ports"
)

var _ ports.ProductCatalog = (*ProductCatalog)(nil)

// ProductCatalog answers order lookups from the products repository.
type ProductCatalog struct {
	products productports.Repository
}

// NewProductCatalog adapts a products repository to the orders catalog port.
func NewProductCatalog(products productports.Repository) *ProductCatalog {
	return &ProductCatalog{products: products}
}

// FindAllByProductNumberIn returns snapshots of every known product among numbers.
func (c *ProductCatalog) FindAllByProductNumberIn(ctx context.Context, numbers []string) ([]ports.ProductSnapshot, error) {
	if c == nil || c.products == nil {
		return nil, errors.New("product catalog not configured")
	}
	projections, err := c.products.FindAllByProductNumberIn(ctx, numbers)
	if err != nil {
		return nil, err
	}
	snapshots := make([]ports.ProductSnapshot, 0, len(projections))
	for _, projection := range projections {
		if projection == nil || projection.Product == nil {
			continue
		}
		p := projection.Product
		snapshots = append(snapshots, ports.ProductSnapshot{
			ID:     p.ID,
			Number: p.Number,
			Name:   p.Name,
			Price:  p.Price,
		})
	}
	return snapshots, nil
}
