package shopify

import (
	"errors"
	"fmt"
	"strings"

	"shopify-price-updater/internal/adapters/shopify/dto"
)

type userErrorDetail struct {
	Field   string
	Message string
}

type userErrorsError struct {
	Action string
	Errors []userErrorDetail
}

func (e *userErrorsError) Error() string {
	if e == nil {
		return "shopify user errors"
	}
	parts := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		field := strings.TrimSpace(err.Field)
		message := strings.TrimSpace(err.Message)
		if field == "" {
			parts = append(parts, message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, message))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("shopify %s failed with user errors", e.Action)
	}
	return fmt.Sprintf("shopify %s failed: %s", e.Action, strings.Join(parts, "; "))
}

func userErrorsToDetailedError(action string, errs []dto.ShopifyUserError) error {
	if len(errs) == 0 {
		return nil
	}
	details := make([]userErrorDetail, 0, len(errs))
	for _, e := range errs {
		message := strings.TrimSpace(e.Message)
		if message == "" {
			continue
		}
		field := ""
		if len(e.Field) > 0 {
			field = strings.Join(e.Field, ".")
		}
		details = append(details, userErrorDetail{Field: field, Message: message})
	}
	if len(details) == 0 {
		return &userErrorsError{Action: action, Errors: []userErrorDetail{{Message: "user errors returned"}}}
	}
	return &userErrorsError{Action: action, Errors: details}
}

type variantNotFoundError struct {
	Sku string
}

// NewVariantNotFoundError builds the typed zero-match lookup error;
// IsVariantNotFound recognizes it.
func NewVariantNotFoundError(sku string) error {
	return &variantNotFoundError{Sku: sku}
}

func (e *variantNotFoundError) Error() string {
	sku := strings.TrimSpace(e.Sku)
	if sku == "" {
		return "shopify variant not found"
	}
	return fmt.Sprintf("shopify variant not found for sku %s", sku)
}

// IsVariantNotFound reports whether err means the SKU matched no variant,
// as opposed to the lookup itself failing.
func IsVariantNotFound(err error) bool {
	var typed *variantNotFoundError
	return errors.As(err, &typed)
}

type httpStatusError struct {
	statusCode int
	status     string
	body       string
}

func (e *httpStatusError) Error() string {
	if strings.TrimSpace(e.body) == "" {
		return fmt.Sprintf("shopify request failed: %s", e.status)
	}
	return fmt.Sprintf("shopify request failed: %s: %s", e.status, e.body)
}

func newHTTPStatusError(statusCode int, status string, body []byte) error {
	return &httpStatusError{
		statusCode: statusCode,
		status:     status,
		body:       strings.TrimSpace(string(body)),
	}
}
