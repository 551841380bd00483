package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/domain"
)

type normalizedCreateOrderInput struct {
	ProductNumbers []string `json:"productNumbers"`
	RegisteredAt   string   `json:"registeredAt,omitempty"`
}

// FingerprintCreateOrder builds a deterministic hash of the create-order request payload (excluding the idempotency key).
// An omitted registration time is hashed as absent so replays that rely on the server clock still match.
func FingerprintCreateOrder(input types.CreateOrderInput) (string, error) {
	payload, err := json.Marshal(normalizeCreateOrderInput(input))
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func normalizeCreateOrderInput(input types.CreateOrderInput) normalizedCreateOrderInput {
	normalized := normalizedCreateOrderInput{ProductNumbers: trimNumbers(input.ProductNumbers)}
	if !input.RegisteredAt.IsZero() {
		normalized.RegisteredAt = input.RegisteredAt.UTC().Format(time.RFC3339Nano)
	}
	return normalized
}

// normalizeNumbers trims every requested number. A request with nothing but
// blanks is empty; a blank next to real numbers is rejected.
func normalizeNumbers(numbers []string) ([]string, error) {
	normalized := make([]string, 0, len(numbers))
	blanks := 0
	for _, n := range numbers {
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			blanks++
		}
		normalized = append(normalized, trimmed)
	}
	switch {
	case blanks == len(normalized):
		return nil, domain.ErrNoProducts
	case blanks > 0:
		return nil, fmt.Errorf("%w: %d of %d entries are blank", domain.ErrEmptyProductNumber, blanks, len(normalized))
	}
	return normalized, nil
}

func trimNumbers(numbers []string) []string {
	trimmed := make([]string, len(numbers))
	for i, n := range numbers {
		trimmed[i] = strings.TrimSpace(n)
	}
	return trimmed
}
