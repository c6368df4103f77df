package sheet

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"shopify-price-updater/internal/domain/model"
)

type nopLogger struct{}

func (nopLogger) Log(string)             {}
func (nopLogger) LogError(string, error) {}
func (nopLogger) LogWarning(string)      {}
func (nopLogger) LogSuccess(string)      {}

func writeXLSX(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cellRef, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "prices.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	return path
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{
		{"SKU", "New Price"},
		{"A-100", "19.99"},
		{" B-200 ", " 25 "},
		{"123.0", "10.00"},
	})

	got, err := NewLoader(nopLogger{}).Load(path, "SKU", "New Price")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []model.PriceUpdate{
		{Sku: "A-100", NewPrice: "19.99"},
		{Sku: "B-200", NewPrice: "25"},
		{Sku: "123", NewPrice: "10.00"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("loaded rows:\n got %v\nwant %v", got, want)
	}
}

func TestLoadCSVMatchesXLSX(t *testing.T) {
	csvPath := writeCSV(t, "SKU,New Price\nA-100,19.99\n B-200 , 25 \n123.0,10.00\n")
	xlsxPath := writeXLSX(t, [][]interface{}{
		{"SKU", "New Price"},
		{"A-100", "19.99"},
		{" B-200 ", " 25 "},
		{"123.0", "10.00"},
	})

	loader := NewLoader(nopLogger{})
	fromCSV, err := loader.Load(csvPath, "SKU", "New Price")
	if err != nil {
		t.Fatalf("csv load: %v", err)
	}
	fromXLSX, err := loader.Load(xlsxPath, "SKU", "New Price")
	if err != nil {
		t.Fatalf("xlsx load: %v", err)
	}
	if !reflect.DeepEqual(fromCSV, fromXLSX) {
		t.Fatalf("csv and xlsx disagree:\n csv %v\nxlsx %v", fromCSV, fromXLSX)
	}
}

func TestLoadDropsIncompleteRows(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{
		{"SKU", "New Price"},
		{"", "5.00"},
		{"C-1", ""},
		{"C-2"},
		{"   ", "9.99"},
		{"KEEP-1", "7.50"},
		{"KEEP-1", "   "},
	})

	got, err := NewLoader(nopLogger{}).Load(path, "SKU", "New Price")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []model.PriceUpdate{{Sku: "KEEP-1", NewPrice: "7.50"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("loaded rows:\n got %v\nwant %v", got, want)
	}
}

func TestLoadDuplicateSkuKeepsFirstPositionLastPrice(t *testing.T) {
	path := writeCSV(t, "SKU,New Price\nA,1.00\nB,2.00\nA,3.00\n")

	got, err := NewLoader(nopLogger{}).Load(path, "SKU", "New Price")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []model.PriceUpdate{
		{Sku: "A", NewPrice: "3.00"},
		{Sku: "B", NewPrice: "2.00"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("loaded rows:\n got %v\nwant %v", got, want)
	}
}

func TestLoadDuplicateCanonicalSku(t *testing.T) {
	// "123.0" and "123" are the same SKU after canonicalization.
	path := writeCSV(t, "SKU,New Price\n123.0,1.00\n123,2.00\n")

	got, err := NewLoader(nopLogger{}).Load(path, "SKU", "New Price")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []model.PriceUpdate{{Sku: "123", NewPrice: "2.00"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("loaded rows:\n got %v\nwant %v", got, want)
	}
}

func TestCanonicalSku(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123.0", "123"},
		{"123.000", "123"},
		{"007.0", "007"},
		{" 42 ", "42"},
		{"-900.0", "-900"},
		{"1.5", "1.5"},
		{"ABC-1", "ABC-1"},
		{"1.2e1", "1.2e1"},
		{"12.", "12."},
		{".5", ".5"},
		{"12.5.0", "12.5.0"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := canonicalSku(tc.in); got != tc.want {
			t.Errorf("canonicalSku(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLoadMissingColumn(t *testing.T) {
	path := writeCSV(t, "SKU,Price\nA,1.00\n")

	_, err := NewLoader(nopLogger{}).Load(path, "SKU", "New Price")
	var colErr *ColumnError
	if !errors.As(err, &colErr) {
		t.Fatalf("expected *ColumnError, got %v", err)
	}
	if colErr.Column != "New Price" {
		t.Fatalf("column name: %q", colErr.Column)
	}
}

func TestLoadTrimsHeaderCells(t *testing.T) {
	path := writeCSV(t, " SKU , New Price \nA,1.00\n")

	got, err := NewLoader(nopLogger{}).Load(path, "SKU", "New Price")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Sku != "A" {
		t.Fatalf("loaded rows: %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(nopLogger{}).Load(filepath.Join(t.TempDir(), "absent.xlsx"), "SKU", "New Price")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.txt")
	if err := os.WriteFile(path, []byte("SKU,New Price\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := NewLoader(nopLogger{}).Load(path, "SKU", "New Price")
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeCSV(t, "SKU,New Price\n")

	got, err := NewLoader(nopLogger{}).Load(path, "SKU", "New Price")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no rows, got %v", got)
	}
}
