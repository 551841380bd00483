package types

import "time"

// CreateOrderInput lists the requested product numbers in order, repeats included.
type CreateOrderInput struct {
	ProductNumbers []string
	RegisteredAt   time.Time
	// IdempotencyKey is optional; when set, retries with the same payload replay the stored order.
	IdempotencyKey string
}
