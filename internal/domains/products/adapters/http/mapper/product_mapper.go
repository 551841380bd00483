package mapper

import (
	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
)

// CreateProduct is the inbound payload for registering a catalog item.
type CreateProduct struct {
	Name          string `json:"name" binding:"required"`
	Price         *int64 `json:"price" binding:"required"`
	Type          string `json:"type" binding:"required"`
	SellingStatus string `json:"sellingStatus" binding:"required"`
}

// Product is the HTTP representation of a catalog item.
type Product struct {
	ID            int64  `json:"id"`
	ProductNumber string `json:"productNumber"`
	Type          string `json:"type"`
	SellingStatus string `json:"sellingStatus"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
}

// ToCreateInput converts the transport payload into the application input.
func ToCreateInput(payload CreateProduct) types.CreateProductInput {
	input := types.CreateProductInput{
		Name:          payload.Name,
		Type:          payload.Type,
		SellingStatus: payload.SellingStatus,
	}
	if payload.Price != nil {
		input.Price = *payload.Price
	}
	return input
}

// FromProjection converts a projection into the transport representation.
func FromProjection(projection *types.ProductProjection) Product {
	if projection == nil || projection.Product == nil {
		return Product{}
	}
	p := projection.Product
	return Product{
		ID:            p.ID,
		ProductNumber: p.Number,
		Type:          string(p.Type),
		SellingStatus: string(p.SellingStatus),
		Name:          p.Name,
		Price:         p.Price,
	}
}

// FromProjectionList converts a list of projections, never returning nil.
func FromProjectionList(list []*types.ProductProjection) []Product {
	result := make([]Product, 0, len(list))
	for _, item := range list {
		if item == nil {
			continue
		}
		result = append(result, FromProjection(item))
	}
	return result
}
