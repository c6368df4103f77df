// One-shot job: read the price file, push each SKU's new price to
// shopify, write the per-row update log.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"shopify-price-updater/internal/adapters/sheet"
	"shopify-price-updater/internal/adapters/shopify"
	"shopify-price-updater/internal/app/usecases"
	"shopify-price-updater/internal/config"
	infrahttp "shopify-price-updater/internal/infra/http"
	"shopify-price-updater/internal/infra/mysql"
	"shopify-price-updater/internal/logging"
	"shopify-price-updater/internal/retry"
	"shopify-price-updater/internal/runlog"
)

func main() {
	cfg, err := config.LoadForPriceUpdate()
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.TelegramBot)
	httpClient := infrahttp.NewClient(cfg.Shopify.Timeout)

	logger.Log(fmt.Sprintf("Price updater initialized file=%s store=%s", cfg.Sheet.Path, cfg.Shopify.ShopDomain))

	var db *sql.DB
	writers := []runlog.Writer{runlog.NewCSVWriter(cfg.RunLog.Dir, logger)}
	if cfg.Mysql.Enabled() {
		db, err = mysql.New(cfg.Mysql)
		if err != nil {
			logger.LogError("Error mysql connect", err)
			os.Exit(1)
		}
		writers = append(writers, runlog.NewMySQLWriter(db, logger))
	}

	shopifyClient := shopify.NewClient(cfg.Shopify, httpClient, logger)
	loader := sheet.NewLoader(logger)

	policy := retry.Fixed(cfg.Retry.MaxAttempts, cfg.Retry.Delay)
	if cfg.Retry.Backoff {
		policy = retry.Backoff(cfg.Retry.MaxAttempts, cfg.Retry.Delay, 10*cfg.Retry.Delay)
	}
	updater := usecases.NewPriceUpdater(shopifyClient, policy, logger)

	updatePrices := usecases.NewUpdatePrices(loader, shopifyClient, updater, writers, cfg.Sheet, logger)
	_, err = updatePrices.Run(context.Background())

	shopifyClient.Close()
	if db != nil {
		_ = db.Close()
	}

	if err != nil {
		logger.LogError("price update aborted", err)
		os.Exit(1)
	}
}
