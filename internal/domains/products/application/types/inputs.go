package types

// CreateProductInput carries the fields a client supplies when registering a product.
// The product number is never supplied by the caller.
type CreateProductInput struct {
	Name          string
	Price         int64
	Type          string
	SellingStatus string
}

// ListProductsInput filters the catalog by selling status. An empty filter
// selects the display statuses.
type ListProductsInput struct {
	SellingStatuses []string
}
