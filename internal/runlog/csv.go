package runlog

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shopify-price-updater/internal/domain/model"
	"shopify-price-updater/internal/logging"
)

var csvHeader = []string{"SKU", "New Price", "Status"}

type CSVWriter struct {
	dir    string
	logger logging.LoggerService
}

func NewCSVWriter(dir string, logger logging.LoggerService) *CSVWriter {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	return &CSVWriter{dir: dir, logger: logger}
}

func (w *CSVWriter) Name() string { return "csv" }

// FileName derives the log file name from the run start time, e.g.
// update_log_20240301_150405.csv.
func FileName(startedAt time.Time) string {
	return "update_log_" + startedAt.Format("20060102_150405") + ".csv"
}

func (w *CSVWriter) Write(ctx context.Context, run model.Run) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create run log dir: %w", err)
	}
	path := filepath.Join(w.dir, FileName(run.StartedAt))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create run log: %w", err)
	}
	defer f.Close()

	bufw := bufio.NewWriter(f)
	cw := csv.NewWriter(bufw)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, outcome := range run.Outcomes {
		if err := cw.Write([]string{outcome.Sku, outcome.NewPrice, string(outcome.Status)}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if err := bufw.Flush(); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}

	if w.logger != nil {
		w.logger.Log(fmt.Sprintf("Update log saved file=%s rows=%d", path, len(run.Outcomes)))
	}
	return nil
}
