package config

import "time"

type Config struct {
	Shopify     ShopifyConfig
	Sheet       SheetConfig
	Retry       RetryConfig
	RunLog      RunLogConfig
	Mysql       MysqlConfig
	TelegramBot TelegramBotConfig
}

type ShopifyConfig struct {
	ShopDomain string
	APIVer     string
	Token      string
	Timeout    time.Duration
}

type SheetConfig struct {
	Path        string
	SkuColumn   string
	PriceColumn string
}

type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     bool
}

type RunLogConfig struct {
	Dir string
}

type MysqlConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

func (c MysqlConfig) Enabled() bool {
	return c.Host != ""
}

type TelegramBotConfig struct {
	ChatId string
	Token  string
}
