package domain

import (
	"errors"
	"strings"
	"time"
)

// Status enumerates order progression.
type Status string

const (
	StatusInit             Status = "INIT"
	StatusCanceled         Status = "CANCELED"
	StatusPaymentCompleted Status = "PAYMENT_COMPLETED"
	StatusPaymentFailed    Status = "PAYMENT_FAILED"
	StatusReceived         Status = "RECEIVED"
	StatusCompleted        Status = "COMPLETED"
)

var (
	ErrNoProducts          = errors.New("order must reference at least one product")
	ErrInvalidStatus       = errors.New("order status is invalid")
	ErrEmptyProductNumber  = errors.New("order line product number must not be empty")
	ErrNegativeLinePrice   = errors.New("order line price must not be negative")
	ErrMissingRegisteredAt = errors.New("order registration time must be set")
	ErrTotalPriceMismatch  = errors.New("order total price does not match its lines")
)

// Line is one ordered product. The number, name and price are captured when
// the order is registered so later catalog changes do not rewrite history.
type Line struct {
	Position      int
	ProductID     int64
	ProductNumber string
	Name          string
	Price         int64
}

// Order models the kiosk order aggregate.
type Order struct {
	ID           int64
	Status       Status
	Lines        []Line
	TotalPrice   int64
	RegisteredAt time.Time
}

// NewOrder builds an INIT order from the resolved lines, keeping their order
// and repeats, and computes the total price.
func NewOrder(lines []Line, registeredAt time.Time) (*Order, error) {
	copied := make([]Line, len(lines))
	for i, line := range lines {
		line.Position = i
		line.ProductNumber = strings.TrimSpace(line.ProductNumber)
		copied[i] = line
	}
	order := &Order{
		Status:       StatusInit,
		Lines:        copied,
		TotalPrice:   sumLines(copied),
		RegisteredAt: registeredAt,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if len(o.Lines) == 0 {
		return ErrNoProducts
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	if o.RegisteredAt.IsZero() {
		return ErrMissingRegisteredAt
	}
	for _, line := range o.Lines {
		if line.ProductNumber == "" {
			return ErrEmptyProductNumber
		}
		if line.Price < 0 {
			return ErrNegativeLinePrice
		}
	}
	if o.TotalPrice != sumLines(o.Lines) {
		return ErrTotalPriceMismatch
	}
	return nil
}

// ProductNumbers returns the line product numbers in order.
func (o *Order) ProductNumbers() []string {
	numbers := make([]string, 0, len(o.Lines))
	for _, line := range o.Lines {
		numbers = append(numbers, line.ProductNumber)
	}
	return numbers
}

// Clone returns a deep copy safe to hand out from repositories.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	return &clone
}

// Valid reports whether s is a known order status.
func (s Status) Valid() bool {
	switch s {
	case StatusInit, StatusCanceled, StatusPaymentCompleted, StatusPaymentFailed, StatusReceived, StatusCompleted:
		return true
	default:
		return false
	}
}

func sumLines(lines []Line) int64 {
	var total int64
	for _, line := range lines {
		total += line.Price
	}
	return total
}
