package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubLatestReader struct {
	latest string
	err    error
}

func (s stubLatestReader) FindLatestProductNumber(context.Context) (string, error) {
	return s.latest, s.err
}

func TestCreateNextProductNumber_EmptyCatalogStartsAt001(t *testing.T) {
	factory := NewProductNumberFactory(stubLatestReader{})
	number, err := factory.CreateNextProductNumber(context.Background())
	require.NoError(t, err)
	require.Equal(t, "001", number)
}

func TestCreateNextProductNumber_Increments(t *testing.T) {
	cases := map[string]string{
		"001":  "002",
		"002":  "003",
		"009":  "010",
		"099":  "100",
		"999":  "1000",
		"0042": "0043",
		"7":    "008",
	}
	for latest, want := range cases {
		t.Run(latest, func(t *testing.T) {
			factory := NewProductNumberFactory(stubLatestReader{latest: latest})
			number, err := factory.CreateNextProductNumber(context.Background())
			require.NoError(t, err)
			require.Equal(t, want, number)
		})
	}
}

func TestCreateNextProductNumber_Malformed(t *testing.T) {
	for _, latest := range []string{"abc", "-01", "+01", "1.5"} {
		factory := NewProductNumberFactory(stubLatestReader{latest: latest})
		_, err := factory.CreateNextProductNumber(context.Background())
		require.ErrorIs(t, err, ErrMalformedProductNumber, latest)
	}
}

func TestCreateNextProductNumber_PropagatesReaderError(t *testing.T) {
	boom := errors.New("connection refused")
	factory := NewProductNumberFactory(stubLatestReader{err: boom})
	_, err := factory.CreateNextProductNumber(context.Background())
	require.ErrorIs(t, err, boom)
}
