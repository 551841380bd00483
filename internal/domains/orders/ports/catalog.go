package ports

import "context"

// ProductSnapshot is the catalog view the orders context needs to price a line.
type ProductSnapshot struct {
	ID     int64
	Number string
	Name   string
	Price  int64
}

// ProductCatalog resolves product numbers against the catalog.
type ProductCatalog interface {
	// FindAllByProductNumberIn returns at most one snapshot per distinct known number.
	FindAllByProductNumberIn(ctx context.Context, numbers []string) ([]ProductSnapshot, error)
}
