package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultAPIVersion  = "2024-10"
	defaultSheetPath   = "price_updates.xlsx"
	defaultSkuColumn   = "SKU"
	defaultPriceColumn = "New Price"
	defaultMaxAttempts = 3
)

// LoadForPriceUpdate reads the price update job configuration from the
// environment. SHOPIFY_STORE_DOMAIN and SHOPIFY_ACCESS_TOKEN are required;
// everything else has a default. The MySQL audit sink and the Telegram
// notifier stay off unless their variables are set.
func LoadForPriceUpdate() (Config, error) {
	shopDomain, err := requiredString("SHOPIFY_STORE_DOMAIN")
	if err != nil {
		return Config{}, err
	}
	token, err := requiredString("SHOPIFY_ACCESS_TOKEN")
	if err != nil {
		return Config{}, err
	}
	timeout, err := secondsWithDefault("SHOPIFY_TIMEOUT_SECONDS", 10)
	if err != nil {
		return Config{}, err
	}
	maxAttempts, err := intWithDefault("UPDATE_MAX_ATTEMPTS", defaultMaxAttempts)
	if err != nil {
		return Config{}, err
	}
	retryDelay, err := secondsWithDefault("UPDATE_RETRY_DELAY_SECONDS", 2)
	if err != nil {
		return Config{}, err
	}
	mysqlPort, err := intWithDefault("MYSQL_PORT", 3306)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Shopify: ShopifyConfig{
			ShopDomain: shopDomain,
			APIVer:     stringWithDefault("SHOPIFY_API_VERSION", defaultAPIVersion),
			Token:      token,
			Timeout:    timeout,
		},
		Sheet: SheetConfig{
			Path:        stringWithDefault("PRICE_FILE", defaultSheetPath),
			SkuColumn:   stringWithDefault("SKU_COLUMN", defaultSkuColumn),
			PriceColumn: stringWithDefault("PRICE_COLUMN", defaultPriceColumn),
		},
		Retry: RetryConfig{
			MaxAttempts: maxAttempts,
			Delay:       retryDelay,
			Backoff:     boolWithDefault("UPDATE_RETRY_BACKOFF", false),
		},
		RunLog: RunLogConfig{
			Dir: stringWithDefault("LOG_DIR", "."),
		},
		Mysql: MysqlConfig{
			Host:     os.Getenv("MYSQL_HOST"),
			Port:     mysqlPort,
			Username: os.Getenv("MYSQL_USERNAME"),
			Password: os.Getenv("MYSQL_PASSWORD"),
			Database: os.Getenv("MYSQL_DATABASE"),
		},
		TelegramBot: TelegramBotConfig{
			ChatId: os.Getenv("TELEGRAM_CHAT_ID"),
			Token:  os.Getenv("TELEGRAM_TOKEN"),
		},
	}, nil
}

func requiredString(key string) (string, error) {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return "", fmt.Errorf("missing required env var: %s", key)
	}
	return variable, nil
}

func stringWithDefault(key, def string) string {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def
	}
	return variable
}

func intWithDefault(key string, def int) (int, error) {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def, nil
	}
	number, err := strconv.Atoi(variable)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %w", key, err)
	}
	return number, nil
}

func secondsWithDefault(key string, def int) (time.Duration, error) {
	seconds, err := intWithDefault(key, def)
	if err != nil {
		return 0, err
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative duration for %s: %d", key, seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}

func boolWithDefault(key string, def bool) bool {
	variable, isOk := os.LookupEnv(key)
	if !isOk || variable == "" {
		return def
	}
	parsed, err := strconv.ParseBool(variable)
	if err != nil {
		return def
	}
	return parsed
}
