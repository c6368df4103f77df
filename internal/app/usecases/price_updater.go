package usecases

import (
	"context"
	"fmt"

	"shopify-price-updater/internal/adapters/shopify"
	"shopify-price-updater/internal/domain/model"
	"shopify-price-updater/internal/logging"
	"shopify-price-updater/internal/retry"
)

type PriceUpdaterService interface {
	UpdatePrice(ctx context.Context, variant model.Variant, newPrice string) error
}

type ClientPriceUpdater struct {
	shopifyClient shopify.VariantService
	policy        retry.Policy
	logger        logging.LoggerService
}

func NewPriceUpdater(shopifyClient shopify.VariantService, policy retry.Policy, logger logging.LoggerService) PriceUpdaterService {
	return &ClientPriceUpdater{
		shopifyClient: shopifyClient,
		policy:        policy,
		logger:        logger,
	}
}

// UpdatePrice writes the price with bounded attempts. Every failed attempt
// is logged; the last error wins when attempts run out.
func (c *ClientPriceUpdater) UpdatePrice(ctx context.Context, variant model.Variant, newPrice string) error {
	attempts := c.policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return retry.Do(ctx, c.policy, func(ctx context.Context, attempt int) error {
		err := c.shopifyClient.UpdateVariantPrice(ctx, variant, newPrice)
		if err != nil && c.logger != nil {
			c.logger.LogWarning(fmt.Sprintf(
				"Price update attempt %d/%d failed sku=%s: %v",
				attempt, attempts, variant.Sku, err,
			))
		}
		return err
	})
}
