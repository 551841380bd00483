package ports

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrIdempotencyConflict indicates the key was already claimed for a different payload.
	ErrIdempotencyConflict = errors.New("idempotency conflict")
	// ErrIdempotencyInProgress indicates the key is claimed for the same payload
	// but that request has not stored its order yet.
	ErrIdempotencyInProgress = errors.New("idempotency key in progress")
	// ErrIdempotencyNotPending indicates a completion or release for a key that
	// is unknown or already bound to an order.
	ErrIdempotencyNotPending = errors.New("idempotency key not pending")
)

// DefaultIdempotencyKeyTTL is how long a key stays replayable before housekeeping may purge it.
const DefaultIdempotencyKeyTTL = 24 * time.Hour

// IdempotencyRecord ties a kiosk-supplied key to the fingerprint of the request
// and the order it produced. OrderID stays zero while the claim is pending.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	OrderID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Pending reports whether the claim has not been bound to an order yet.
func (r IdempotencyRecord) Pending() bool { return r.OrderID == 0 }

// IdempotencyStore persists idempotency keys so order retries can be replayed safely.
// A key is claimed before the order is written and completed afterwards.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Claim reserves the key for requestHash with a pending record. When the key
	// is already taken, claimed is false and the stored record is returned as is.
	Claim(ctx context.Context, key, requestHash string) (record *IdempotencyRecord, claimed bool, err error)
	// Complete binds a pending claim to the order it produced.
	Complete(ctx context.Context, key string, orderID int64) error
	// Release drops a pending claim so the key can be used again.
	Release(ctx context.Context, key string) error
	// PurgeBefore drops keys created before cutoff and reports how many went.
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
