package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

const (
	firstProductNumber = "001"
	productNumberWidth = 3
)

// ErrMalformedProductNumber is returned when the stored latest number is not numeric.
var ErrMalformedProductNumber = errors.New("latest product number is not numeric")

// LatestNumberReader is the slice of the repository the factory depends on.
type LatestNumberReader interface {
	FindLatestProductNumber(ctx context.Context) (string, error)
}

// ProductNumberFactory derives the next product number from the latest persisted one.
// It does not serialize callers; run it under the repository numbering lock.
type ProductNumberFactory struct {
	reader LatestNumberReader
}

func NewProductNumberFactory(reader LatestNumberReader) *ProductNumberFactory {
	return &ProductNumberFactory{reader: reader}
}

// CreateNextProductNumber returns "001" for an empty catalog, otherwise the
// latest number plus one, zero-padded to at least three digits.
func (f *ProductNumberFactory) CreateNextProductNumber(ctx context.Context) (string, error) {
	latest, err := f.reader.FindLatestProductNumber(ctx)
	if err != nil {
		return "", err
	}
	if latest == "" {
		return firstProductNumber, nil
	}
	return nextProductNumber(latest)
}

func nextProductNumber(latest string) (string, error) {
	value, err := strconv.ParseUint(latest, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedProductNumber, latest)
	}
	width := len(latest)
	if width < productNumberWidth {
		width = productNumberWidth
	}
	return fmt.Sprintf("%0*d", width, value+1), nil
}
