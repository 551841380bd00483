package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore keeps order idempotency keys in process memory.
type IdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]ports.IdempotencyRecord
	now  func() time.Time
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{keys: make(map[string]ports.IdempotencyRecord), now: time.Now}
}

// WithClock overrides the time source stamped on new keys.
func (s *IdempotencyStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.keys[key]; ok {
		return &record, nil
	}
	return nil, nil
}

func (s *IdempotencyStore) Claim(_ context.Context, key, requestHash string) (*ports.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stored, taken := s.keys[key]; taken {
		return &stored, false, nil
	}
	now := s.now()
	record := ports.IdempotencyRecord{Key: key, RequestHash: requestHash, CreatedAt: now, UpdatedAt: now}
	s.keys[key] = record
	return &record, true, nil
}

func (s *IdempotencyStore) Complete(_ context.Context, key string, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.keys[key]
	if !ok || !record.Pending() {
		return ports.ErrIdempotencyNotPending
	}
	record.OrderID = orderID
	record.UpdatedAt = s.now()
	s.keys[key] = record
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.keys[key]
	if !ok || !record.Pending() {
		return ports.ErrIdempotencyNotPending
	}
	delete(s.keys, key)
	return nil
}

func (s *IdempotencyStore) PurgeBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for key, record := range s.keys {
		if record.CreatedAt.Before(cutoff) {
			delete(s.keys, key)
			purged++
		}
	}
	return purged, nil
}
