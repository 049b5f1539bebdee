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
	ProviderName = "bakery-ledger-api"
	ConsumerName = "bakery-counter"

	StateCatalogBaseline = "catalog baseline"
	StateCatalogSeeded   = "catalog holds A, B and C"
	StateBunPriced       = "Bun is priced at 45.50"
	StateLedgerSaved     = "a balanced ledger exists for 2024-03-09"
)

const (
	SummaryDate  = "2024-03-09"
	PricedItem   = "Bun"
	PricedAmount = "45.5"
	MissingItem  = "Missing"
	CashierName  = "Nimal"
)

// SeededItems is the catalog order established by StateCatalogSeeded.
var SeededItems = []string{"A", "B", "C"}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the counter consumer.
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

// ExampleLedgerPayload is the balanced ledger used by StateLedgerSaved.
func ExampleLedgerPayload() map[string]any {
	return map[string]any{
		"cashierName": CashierName,
		"initialCash": "1000",
		"totalSales":  "500",
		"cashOut":     "200",
		"finalCash":   "1300",
		"notes":       "",
	}
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
