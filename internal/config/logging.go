package config

import "fmt"

const (
	envLogLevel  = "LOG_LEVEL"
	envLogFormat = "LOG_FORMAT"

	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

type LogConfig struct {
	Level  string
	Format string
}

// LoadLogConfigFromEnv defaults to info level JSON output.
func LoadLogConfigFromEnv() (*LogConfig, error) {
	cfg := &LogConfig{Level: getenvLower(envLogLevel), Format: getenvLower(envLogFormat)}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	switch cfg.Format {
	case "":
		cfg.Format = LogFormatJSON
	case LogFormatJSON, LogFormatConsole:
	default:
		return nil, fmt.Errorf("config: unsupported %s %q", envLogFormat, cfg.Format)
	}
	return cfg, nil
}
