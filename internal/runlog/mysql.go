package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"shopify-price-updater/internal/domain/model"
	"shopify-price-updater/internal/logging"
)

const insertBatchSize = 500

const createLogTable = `
CREATE TABLE IF NOT EXISTS price_update_log (
	id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	run_id CHAR(36) NOT NULL,
	sku VARCHAR(255) NOT NULL,
	new_price VARCHAR(64) NOT NULL,
	status VARCHAR(32) NOT NULL,
	created_at DATETIME NOT NULL,
	KEY idx_price_update_log_run (run_id)
)`

// MySQLWriter mirrors the run log into the price_update_log audit table.
type MySQLWriter struct {
	db     *sql.DB
	logger logging.LoggerService
}

func NewMySQLWriter(db *sql.DB, logger logging.LoggerService) *MySQLWriter {
	return &MySQLWriter{db: db, logger: logger}
}

func (w *MySQLWriter) Name() string { return "mysql" }

func (w *MySQLWriter) Write(ctx context.Context, run model.Run) error {
	if _, err := w.db.ExecContext(ctx, createLogTable); err != nil {
		return fmt.Errorf("mysql run log schema: %w", err)
	}
	if len(run.Outcomes) == 0 {
		return nil
	}

	for start := 0; start < len(run.Outcomes); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(run.Outcomes) {
			end = len(run.Outcomes)
		}
		query, args := buildInsert(run, run.Outcomes[start:end])
		if _, err := w.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("mysql run log insert: %w", err)
		}
	}

	if w.logger != nil {
		w.logger.Log(fmt.Sprintf("Update log mirrored to mysql run_id=%s rows=%d", run.ID, len(run.Outcomes)))
	}
	return nil
}

func buildInsert(run model.Run, outcomes []model.Outcome) (string, []any) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO price_update_log (run_id, sku, new_price, status, created_at) VALUES ")
	args := make([]any, 0, len(outcomes)*5)
	for i, outcome := range outcomes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?)")
		args = append(args, run.ID, outcome.Sku, outcome.NewPrice, string(outcome.Status), run.StartedAt)
	}
	return sb.String(), args
}
