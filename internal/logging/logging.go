package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger from cfg and writes to stderr.
func Setup(cfg *config.LogConfig) error {
	logger, err := New(os.Stderr, cfg)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(logger.GetLevel())
	log.Logger = logger
	return nil
}

// New builds a logger writing to w. A nil cfg means info level JSON.
func New(w io.Writer, cfg *config.LogConfig) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	format := config.LogFormatJSON
	if cfg != nil {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("logging: %w", err)
		}
		if parsed != zerolog.NoLevel {
			level = parsed
		}
		if cfg.Format != "" {
			format = cfg.Format
		}
	}

	if format == config.LogFormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
