package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrUnknownProductNumbers signals at least one requested product number is not in the catalog.
	ErrUnknownProductNumbers = errors.New("unknown product numbers")
)

// UnknownProductNumbersError lists the requested numbers the catalog could not resolve.
type UnknownProductNumbersError struct {
	Numbers []string
}

func (e *UnknownProductNumbersError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownProductNumbers, strings.Join(e.Numbers, ", "))
}

func (e *UnknownProductNumbersError) Unwrap() error { return ErrUnknownProductNumbers }

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoProducts) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrEmptyProductNumber) ||
		errors.Is(err, domain.ErrNegativeLinePrice) ||
		errors.Is(err, domain.ErrMissingRegisteredAt) ||
		errors.Is(err, domain.ErrTotalPriceMismatch) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
