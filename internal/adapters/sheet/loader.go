package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"shopify-price-updater/internal/domain/model"
	"shopify-price-updater/internal/logging"
)

type LoaderService interface {
	Load(path, skuColumn, priceColumn string) ([]model.PriceUpdate, error)
}

type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q not found in price file header", e.Column)
}

type loader struct {
	logger logging.LoggerService
}

func NewLoader(logger logging.LoggerService) LoaderService {
	return &loader{logger: logger}
}

// Load reads the price file and returns one entry per distinct SKU, in
// first-occurrence order. A SKU listed twice keeps its first position and
// its last price. Rows with a blank SKU or price cell are dropped.
func (l *loader) Load(path, skuColumn, priceColumn string) ([]model.PriceUpdate, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("price file: %w", err)
	}

	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("price file %s has no header row", path)
	}

	skuIdx, priceIdx := -1, -1
	for i, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case skuColumn:
			if skuIdx == -1 {
				skuIdx = i
			}
		case priceColumn:
			if priceIdx == -1 {
				priceIdx = i
			}
		}
	}
	if skuIdx == -1 {
		return nil, &ColumnError{Column: skuColumn}
	}
	if priceIdx == -1 {
		return nil, &ColumnError{Column: priceColumn}
	}

	updates := make([]model.PriceUpdate, 0, len(rows)-1)
	position := make(map[string]int, len(rows)-1)
	skipped := 0
	duplicates := 0
	for _, row := range rows[1:] {
		sku := canonicalSku(cell(row, skuIdx))
		price := strings.TrimSpace(cell(row, priceIdx))
		if sku == "" || price == "" {
			skipped++
			continue
		}
		if at, ok := position[sku]; ok {
			updates[at].NewPrice = price
			duplicates++
			continue
		}
		position[sku] = len(updates)
		updates = append(updates, model.PriceUpdate{Sku: sku, NewPrice: price})
	}

	if l.logger != nil {
		l.logger.Log(fmt.Sprintf(
			"Price file loaded file=%s sku=%d skipped_missing=%d duplicate_sku=%d",
			filepath.Base(path), len(updates), skipped, duplicates,
		))
	}
	return updates, nil
}

func readRows(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported price file format %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open price file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("price file %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read price file: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read price file: %w", err)
	}
	return rows, nil
}

// canonicalSku trims the cell and strips the ".0" tail spreadsheets attach
// to numeric SKUs ("123.0" is the SKU "123"). Integer digits are kept
// verbatim, so "007.0" stays "007". Anything non-numeric passes through
// trimmed.
func canonicalSku(value string) string {
	sku := strings.TrimSpace(value)
	dot := strings.IndexByte(sku, '.')
	if dot <= 0 || dot == len(sku)-1 {
		return sku
	}
	if strings.ContainsAny(sku, "eE") {
		return sku
	}
	d, err := decimal.NewFromString(sku)
	if err != nil || !d.IsInteger() {
		return sku
	}
	return sku[:dot]
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
