//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "cafe-kiosk-api"
	ConsumerName = "kiosk-terminal"

	StateProductsBaseline = "products baseline"
	StateOrderExists      = "order with id 1 exists"
	StateOrderMissing     = "no order with id 999"
)

const (
	ExistingOrderID int64 = 1
	MissingOrderID  int64 = 999

	UnknownProductNumber = "404"
	ExampleRegisteredAt  = "2024-03-01T10:00:00Z"
)

// BaselineProduct describes one catalog row seeded by StateProductsBaseline.
type BaselineProduct struct {
	Number        string
	Name          string
	Type          string
	SellingStatus string
	Price         int64
}

// BaselineProducts is the catalog every provider state starts from.
func BaselineProducts() []BaselineProduct {
	return []BaselineProduct{
		{Number: "001", Name: "Americano", Type: "HANDMADE", SellingStatus: "SELLING", Price: 4000},
		{Number: "002", Name: "Cafe Latte", Type: "HANDMADE", SellingStatus: "HOLD", Price: 4500},
		{Number: "003", Name: "Bingsu", Type: "BAKERY", SellingStatus: "STOP_SELLING", Price: 7000},
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the kiosk terminal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
