package logging

import (
	"io"
	"log/slog"
	"os"

	"shopify-price-updater/internal/config"
)

type LoggerService interface {
	Log(value string)
	LogError(value string, err error)
	LogWarning(value string)
	LogSuccess(value string)
}

// NewLogger always logs to stderr; Telegram fanout is added when both
// credentials are present.
func NewLogger(creds config.TelegramBotConfig) LoggerService {
	base := newStderrLogger(os.Stderr)
	if creds.ChatId == "" || creds.Token == "" {
		return base
	}
	return multiLogger{base, newTelegramNotifier(creds)}
}

type stderrLogger struct {
	logger *slog.Logger
}

func newStderrLogger(w io.Writer) *stderrLogger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &stderrLogger{logger: slog.New(handler)}
}

func (s *stderrLogger) Log(value string) {
	s.logger.Info(value)
}

func (s *stderrLogger) LogError(value string, err error) {
	if err != nil {
		s.logger.Error(value, "error", err)
		return
	}
	s.logger.Error(value)
}

func (s *stderrLogger) LogWarning(value string) {
	s.logger.Warn(value)
}

func (s *stderrLogger) LogSuccess(value string) {
	s.logger.Info(value, "status", "success")
}

type multiLogger []LoggerService

func (m multiLogger) Log(value string) {
	for _, l := range m {
		l.Log(value)
	}
}

func (m multiLogger) LogError(value string, err error) {
	for _, l := range m {
		l.LogError(value, err)
	}
}

func (m multiLogger) LogWarning(value string) {
	for _, l := range m {
		l.LogWarning(value)
	}
}

func (m multiLogger) LogSuccess(value string) {
	for _, l := range m {
		l.LogSuccess(value)
	}
}
