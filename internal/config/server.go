package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort        = "8080"
	DefaultCORSOrigin  = "http://localhost:3000"
	DefaultEditWindow  = 10 * time.Minute
	defaultGinModeName = "release"

	envPort        = "PORT"
	envGinMode     = "GIN_MODE"
	envCORSOrigins = "CORS_ALLOWED_ORIGINS"
	envEditWindow  = "POST_EDIT_WINDOW"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port        string
	GinMode     string
	CORSOrigins []string
	EditWindow  time.Duration
}

// Addr is the listen address for the configured port.
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

/**
 * Reads PORT, GIN_MODE, CORS_ALLOWED_ORIGINS and POST_EDIT_WINDOW.
 * Malformed values are errors, not silently defaulted.
 */
func LoadServerConfigFromEnv() (*ServerConfig, error) {
	port := getenv(envPort)
	if port == "" {
		port = DefaultPort
	}
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return nil, fmt.Errorf("config: invalid %s %q", envPort, port)
	}

	mode := getenvLower(envGinMode)
	switch mode {
	case "":
		mode = defaultGinModeName
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("config: invalid %s %q", envGinMode, mode)
	}

	origins := splitList(getenv(envCORSOrigins))
	if len(origins) == 0 {
		origins = []string{DefaultCORSOrigin}
	}

	window := DefaultEditWindow
	if raw := getenv(envEditWindow); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("config: invalid %s %q", envEditWindow, raw)
		}
		window = d
	}

	return &ServerConfig{
		Port:        port,
		GinMode:     mode,
		CORSOrigins: origins,
		EditWindow:  window,
	}, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
