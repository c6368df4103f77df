package runlog

import (
	"context"

	"shopify-price-updater/internal/domain/model"
)

// Writer persists the per-row outcomes of a finished run.
type Writer interface {
	Write(ctx context.Context, run model.Run) error
	Name() string
}
