package config

import (
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var loadDotEnvOnce sync.Once

// LoadDotEnv reads .env once when the file exists.
func LoadDotEnv() {
	loadDotEnvOnce.Do(func() {
		if _, err := os.Stat(".env"); err != nil {
			return
		}
		if err := godotenv.Load(); err != nil {
			log.Warn().Err(err).Msg("dotenv: failed to load .env")
		}
	})
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getenvLower(key string) string {
	return strings.ToLower(getenv(key))
}
