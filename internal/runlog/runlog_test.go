package runlog

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"shopify-price-updater/internal/domain/model"
)

func TestFileName(t *testing.T) {
	startedAt := time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)
	if got := FileName(startedAt); got != "update_log_20240301_150405.csv" {
		t.Fatalf("file name: %q", got)
	}
}

func testRun(startedAt time.Time) model.Run {
	return model.Run{
		ID:        "6f1c7b1e-0000-4000-8000-000000000001",
		StartedAt: startedAt,
		Outcomes: []model.Outcome{
			{Sku: "A-1", NewPrice: "19.99", Status: model.StatusUpdated},
			{Sku: "B-2", NewPrice: "1,299.00", Status: model.StatusFailedToUpdate},
			{Sku: "C-3", NewPrice: "5", Status: model.StatusNotFound},
			{Sku: "D-4", NewPrice: "7.25", Status: model.StatusLookupFailed},
		},
	}
}

func TestCSVWriterWritesOrderedRows(t *testing.T) {
	dir := t.TempDir()
	startedAt := time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)
	run := testRun(startedAt)

	if err := NewCSVWriter(dir, nil).Write(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "update_log_20240301_150405.csv"))
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	want := [][]string{
		{"SKU", "New Price", "Status"},
		{"A-1", "19.99", "Updated"},
		{"B-2", "1,299.00", "Failed to update"},
		{"C-3", "5", "SKU not found"},
		{"D-4", "7.25", "Lookup failed"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("log content:\n got %v\nwant %v", records, want)
	}
}

func TestCSVWriterEmptyRun(t *testing.T) {
	dir := t.TempDir()
	run := model.Run{ID: "r", StartedAt: time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)}

	if err := NewCSVWriter(dir, nil).Write(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName(run.StartedAt)))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.TrimSpace(string(data)) != "SKU,New Price,Status" {
		t.Fatalf("expected header only, got %q", string(data))
	}
}

func TestCSVWriterCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	run := testRun(time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC))

	if err := NewCSVWriter(dir, nil).Write(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName(run.StartedAt))); err != nil {
		t.Fatalf("log file missing: %v", err)
	}
}

func TestBuildInsert(t *testing.T) {
	startedAt := time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)
	run := testRun(startedAt)

	query, args := buildInsert(run, run.Outcomes[:2])

	wantQuery := "INSERT INTO price_update_log (run_id, sku, new_price, status, created_at) VALUES (?, ?, ?, ?, ?), (?, ?, ?, ?, ?)"
	if query != wantQuery {
		t.Fatalf("query:\n got %q\nwant %q", query, wantQuery)
	}
	wantArgs := []any{
		run.ID, "A-1", "19.99", "Updated", startedAt,
		run.ID, "B-2", "1,299.00", "Failed to update", startedAt,
	}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args:\n got %v\nwant %v", args, wantArgs)
	}
}
