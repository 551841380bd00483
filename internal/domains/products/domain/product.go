package domain

import (
	"errors"
	"strings"
)

// Type classifies catalog items.
type Type string

const (
	TypeHandmade Type = "HANDMADE"
	TypeBottle   Type = "BOTTLE"
	TypeBakery   Type = "BAKERY"
)

// SellingStatus is the lifecycle state of a catalog item.
type SellingStatus string

const (
	SellingStatusSelling     SellingStatus = "SELLING"
	SellingStatusHold        SellingStatus = "HOLD"
	SellingStatusStopSelling SellingStatus = "STOP_SELLING"
)

// DisplayStatuses lists the statuses shown to customers at the kiosk.
func DisplayStatuses() []SellingStatus {
	return []SellingStatus{SellingStatusSelling, SellingStatusHold}
}

var (
	ErrEmptyName            = errors.New("product name is required")
	ErrNegativePrice        = errors.New("product price must be greater or equal to zero")
	ErrInvalidType          = errors.New("product type is invalid")
	ErrInvalidSellingStatus = errors.New("product selling status is invalid")
	ErrEmptyProductNumber   = errors.New("product number is required")
)

// Product is the catalog aggregate. ID is the storage key; Number is the
// human facing identifier and is fixed once assigned.
type Product struct {
	ID            int64
	Number        string
	Type          Type
	SellingStatus SellingStatus
	Name          string
	Price         int64
}

// NewProductParams names the fields required to build a Product.
type NewProductParams struct {
	Number        string
	Type          Type
	SellingStatus SellingStatus
	Name          string
	Price         int64
}

// NewProduct validates the invariants and builds a new Product aggregate.
func NewProduct(params NewProductParams) (*Product, error) {
	p := &Product{
		Number:        strings.TrimSpace(params.Number),
		Type:          params.Type,
		SellingStatus: params.SellingStatus,
		Name:          params.Name,
		Price:         params.Price,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if p.Number == "" {
		return ErrEmptyProductNumber
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if !p.Type.Valid() {
		return ErrInvalidType
	}
	if !p.SellingStatus.Valid() {
		return ErrInvalidSellingStatus
	}
	return nil
}

// Valid reports whether t is a known product type.
func (t Type) Valid() bool {
	switch t {
	case TypeHandmade, TypeBottle, TypeBakery:
		return true
	default:
		return false
	}
}

// Valid reports whether s is a known selling status.
func (s SellingStatus) Valid() bool {
	switch s {
	case SellingStatusSelling, SellingStatusHold, SellingStatusStopSelling:
		return true
	default:
		return false
	}
}
