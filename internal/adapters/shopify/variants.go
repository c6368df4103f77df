package shopify

import (
	"context"
	"errors"
	"strings"

	"shopify-price-updater/internal/adapters/shopify/dto"
	"shopify-price-updater/internal/domain/model"
)

type variantSearchData struct {
	ProductVariants struct {
		Nodes []struct {
			ID      string `json:"id,omitempty"`
			SKU     string `json:"sku,omitempty"`
			Price   string `json:"price,omitempty"`
			Product struct {
				ID string `json:"id,omitempty"`
			} `json:"product,omitempty"`
		} `json:"nodes,omitempty"`
	} `json:"productVariants"`
}

type variantsBulkUpdateData struct {
	ProductVariantsBulkUpdate struct {
		ProductVariants []struct {
			ID    string `json:"id,omitempty"`
			Price string `json:"price,omitempty"`
		} `json:"productVariants,omitempty"`
		UserErrors []dto.ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"productVariantsBulkUpdate"`
}

// FindVariantBySKU resolves a SKU to its variant through the admin search
// query. The first match wins in the order the service returns; zero
// matches is a typed not-found error, see IsVariantNotFound.
func (c *Client) FindVariantBySKU(ctx context.Context, sku string) (model.Variant, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return model.Variant{}, errors.New("shopify sku is required")
	}

	query := `
query productVariantBySku($first: Int!, $query: String!) {
	productVariants(first: $first, query: $query) {
		nodes { id sku price product { id } }
	}
}`

	var data variantSearchData
	if err := c.graphqlRequest(ctx, query, map[string]any{
		"first": 1,
		"query": buildSearchQuery("sku", sku),
	}, &data); err != nil {
		return model.Variant{}, err
	}
	if len(data.ProductVariants.Nodes) == 0 {
		return model.Variant{}, &variantNotFoundError{Sku: sku}
	}

	node := data.ProductVariants.Nodes[0]
	return model.Variant{
		ID:        strings.TrimSpace(node.ID),
		ProductID: strings.TrimSpace(node.Product.ID),
		Sku:       strings.TrimSpace(node.SKU),
		Price:     strings.TrimSpace(node.Price),
	}, nil
}

// UpdateVariantPrice writes the new price through the bulk variant update
// mutation. GraphQL userErrors come back as an error; a single attempt,
// retries are the caller's concern.
func (c *Client) UpdateVariantPrice(ctx context.Context, variant model.Variant, newPrice string) error {
	variantID := strings.TrimSpace(variant.ID)
	productID := strings.TrimSpace(variant.ProductID)
	if variantID == "" || productID == "" {
		return errors.New("shopify variant and product ids are required")
	}

	query := `
mutation productVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
	productVariantsBulkUpdate(productId: $productId, variants: $variants) {
		productVariants { id price }
		userErrors { field message }
	}
}`

	var data variantsBulkUpdateData
	err := c.graphqlRequest(ctx, query, map[string]any{
		"productId": productID,
		"variants": []map[string]any{{
			"id":    variantID,
			"price": strings.TrimSpace(newPrice),
		}},
	}, &data)
	if err != nil {
		return err
	}
	return userErrorsToDetailedError("productVariantsBulkUpdate", data.ProductVariantsBulkUpdate.UserErrors)
}
