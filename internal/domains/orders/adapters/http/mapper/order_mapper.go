package mapper

import (
	"time"

	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/domain"
)

// CreateOrder is the inbound payload for registering an order.
type CreateOrder struct {
	ProductNumbers     []string   `json:"productNumbers" binding:"required"`
	RegisteredDateTime *time.Time `json:"registeredDateTime,omitempty"`
}

// Order is the HTTP representation of a registered order.
type Order struct {
	ID                 int64          `json:"id"`
	Status             string         `json:"status"`
	TotalPrice         int64          `json:"totalPrice"`
	RegisteredDateTime time.Time      `json:"registeredDateTime"`
	Products           []OrderProduct `json:"products"`
}

// OrderProduct is one ordered slot as captured at registration.
type OrderProduct struct {
	ProductNumber string `json:"productNumber"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
}

// ToCreateInput converts the transport payload into the application input.
func ToCreateInput(payload CreateOrder, idempotencyKey string) types.CreateOrderInput {
	input := types.CreateOrderInput{
		ProductNumbers: payload.ProductNumbers,
		IdempotencyKey: idempotencyKey,
	}
	if payload.RegisteredDateTime != nil {
		input.RegisteredAt = *payload.RegisteredDateTime
	}
	return input
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{Products: []OrderProduct{}}
	}
	products := make([]OrderProduct, 0, len(order.Lines))
	for _, line := range order.Lines {
		products = append(products, OrderProduct{
			ProductNumber: line.ProductNumber,
			Name:          line.Name,
			Price:         line.Price,
		})
	}
	return Order{
		ID:                 order.ID,
		Status:             string(order.Status),
		TotalPrice:         order.TotalPrice,
		RegisteredDateTime: order.RegisteredAt,
		Products:           products,
	}
}
