package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shopify-price-updater/internal/adapters/shopify/dto"
	"shopify-price-updater/internal/config"
	"shopify-price-updater/internal/domain/model"
	"shopify-price-updater/internal/logging"
)

type VariantService interface {
	VerifyAuth(ctx context.Context) error
	FindVariantBySKU(ctx context.Context, sku string) (model.Variant, error)
	UpdateVariantPrice(ctx context.Context, variant model.Variant, newPrice string) error
	Close()
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type shopQueryData struct {
	Shop struct {
		Name string `json:"name,omitempty"`
	} `json:"shop"`
}

type Client struct {
	config     config.ShopifyConfig
	httpClient *http.Client
	logger     logging.LoggerService
}

func NewClient(config config.ShopifyConfig, httpClient *http.Client, logger logging.LoggerService) VariantService {
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

// VerifyAuth runs a minimal shop query so that bad credentials or an
// unreachable store surface before any row is processed.
func (c *Client) VerifyAuth(ctx context.Context) error {
	query := `
query shop {
	shop { name }
}`

	var data shopQueryData
	if err := c.graphqlRequest(ctx, query, nil, &data); err != nil {
		return fmt.Errorf("shopify auth check failed: %w", err)
	}
	name := strings.TrimSpace(data.Shop.Name)
	if name == "" {
		return errors.New("shopify auth check returned empty shop")
	}
	c.log(fmt.Sprintf("Shopify session verified shop=%s", name))
	return nil
}

func (c *Client) Close() {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
}

func (c *Client) graphqlRequest(ctx context.Context, query string, variables map[string]any, out any) error {
	domain := strings.TrimSpace(c.config.ShopDomain)
	if domain == "" {
		return errors.New("shopify shop domain is empty")
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	domain = strings.TrimRight(domain, "/")
	if c.config.APIVer == "" {
		return errors.New("shopify api version is empty")
	}
	endpoint := domain + "/admin/api/" + c.config.APIVer + "/graphql.json"

	payload := graphQLRequest{
		Query:     strings.TrimSpace(query),
		Variables: variables,
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	raw, err := c.shopifyAPIRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}

	var resp dto.GraphQLResponse[json.RawMessage]
	if err := json.Unmarshal(raw, &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		return fmt.Errorf("shopify graphql errors: %s", formatGraphQLErrors(resp.Errors))
	}
	if out == nil {
		return nil
	}
	if len(resp.Data) == 0 {
		return errors.New("shopify graphql response missing data")
	}
	return json.Unmarshal(resp.Data, out)
}

func (c *Client) shopifyAPIRequest(ctx context.Context, method string, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.config.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newHTTPStatusError(resp.StatusCode, resp.Status, respBody)
	}

	return respBody, nil
}

func buildSearchQuery(field, value string) string {
	queryValue := strings.TrimSpace(value)
	if strings.ContainsAny(queryValue, " \"") {
		queryValue = strings.ReplaceAll(queryValue, `"`, `\"`)
		queryValue = fmt.Sprintf(`"%s"`, queryValue)
	}
	return fmt.Sprintf("%s:%s", field, queryValue)
}

func formatGraphQLErrors(errs []dto.GraphQLError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := strings.TrimSpace(e.Message)
		if msg == "" {
			continue
		}
		if len(e.Path) > 0 {
			msg = fmt.Sprintf("%s (path: %v)", msg, e.Path)
		}
		parts = append(parts, msg)
	}
	if len(parts) == 0 {
		return "unknown graphql error"
	}
	return strings.Join(parts, "; ")
}

func (c *Client) log(message string) {
	if c.logger == nil || strings.TrimSpace(message) == "" {
		return
	}
	c.logger.Log(message)
}
