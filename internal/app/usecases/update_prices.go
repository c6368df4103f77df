package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shopify-price-updater/internal/adapters/sheet"
	"shopify-price-updater/internal/adapters/shopify"
	"shopify-price-updater/internal/config"
	"shopify-price-updater/internal/domain/model"
	"shopify-price-updater/internal/logging"
	"shopify-price-updater/internal/runlog"
)

type UpdatePricesService interface {
	Run(ctx context.Context) (model.Run, error)
}

type ClientUpdatePrices struct {
	loader        sheet.LoaderService
	shopifyClient shopify.VariantService
	updater       PriceUpdaterService
	writers       []runlog.Writer
	sheet         config.SheetConfig
	logger        logging.LoggerService
}

func NewUpdatePrices(
	loader sheet.LoaderService,
	shopifyClient shopify.VariantService,
	updater PriceUpdaterService,
	writers []runlog.Writer,
	sheetCfg config.SheetConfig,
	logger logging.LoggerService,
) UpdatePricesService {
	return &ClientUpdatePrices{
		loader:        loader,
		shopifyClient: shopifyClient,
		updater:       updater,
		writers:       writers,
		sheet:         sheetCfg,
		logger:        logger,
	}
}

// Run processes the price file top to bottom: look each SKU up, write its
// price, and record exactly one outcome per row in input order. Row
// failures become outcomes, never errors; only auth, load and run-log
// failures abort the run.
func (c *ClientUpdatePrices) Run(ctx context.Context) (model.Run, error) {
	run := model.Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}

	if c.logger != nil {
		c.logger.Log(fmt.Sprintf("Price update started run_id=%s file=%s", run.ID, c.sheet.Path))
	}

	if err := c.shopifyClient.VerifyAuth(ctx); err != nil {
		if c.logger != nil {
			c.logger.LogError("Error shopify auth check", err)
		}
		return run, err
	}

	updates, err := c.loader.Load(c.sheet.Path, c.sheet.SkuColumn, c.sheet.PriceColumn)
	if err != nil {
		if c.logger != nil {
			c.logger.LogError("Error load price file", err)
		}
		return run, err
	}

	for i, update := range updates {
		if c.logger != nil {
			c.logger.Log(fmt.Sprintf("Processing sku=%s new_price=%s row=%d/%d", update.Sku, update.NewPrice, i+1, len(updates)))
		}
		run.Outcomes = append(run.Outcomes, c.processRow(ctx, update))
	}

	if err := c.writeRunLog(ctx, run); err != nil {
		return run, err
	}

	summary := run.Summary()
	if c.logger != nil {
		c.logger.LogSuccess(fmt.Sprintf(
			"Price update completed run_id=%s sku=%d updated=%d failed=%d not_found=%d lookup_failed=%d",
			run.ID, len(run.Outcomes), summary.Updated, summary.FailedToUpdate, summary.NotFound, summary.LookupFailed,
		))
	}

	return run, nil
}

func (c *ClientUpdatePrices) processRow(ctx context.Context, update model.PriceUpdate) model.Outcome {
	outcome := model.Outcome{Sku: update.Sku, NewPrice: update.NewPrice}

	variant, err := c.shopifyClient.FindVariantBySKU(ctx, update.Sku)
	if err != nil {
		if shopify.IsVariantNotFound(err) {
			outcome.Status = model.StatusNotFound
			if c.logger != nil {
				c.logger.LogWarning(fmt.Sprintf("SKU not found sku=%s", update.Sku))
			}
			return outcome
		}
		outcome.Status = model.StatusLookupFailed
		if c.logger != nil {
			c.logger.LogError(fmt.Sprintf("Error variant lookup sku=%s", update.Sku), err)
		}
		return outcome
	}

	if err := c.updater.UpdatePrice(ctx, variant, update.NewPrice); err != nil {
		outcome.Status = model.StatusFailedToUpdate
		if c.logger != nil {
			c.logger.LogError(fmt.Sprintf("Error price update sku=%s", update.Sku), err)
		}
		return outcome
	}

	outcome.Status = model.StatusUpdated
	if c.logger != nil {
		c.logger.LogSuccess(fmt.Sprintf("Price updated sku=%s price=%s", update.Sku, update.NewPrice))
	}
	return outcome
}

func (c *ClientUpdatePrices) writeRunLog(ctx context.Context, run model.Run) error {
	for _, writer := range c.writers {
		if err := writer.Write(ctx, run); err != nil {
			if c.logger != nil {
				c.logger.LogError(fmt.Sprintf("Error write run log sink=%s", writer.Name()), err)
			}
			return err
		}
	}
	return nil
}
