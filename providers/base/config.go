// Package base holds configuration shared by every chat provider.
package base

import (
	"os"

	"github.com/joho/godotenv"
)

func init() {
	// Auto-load .env file if it exists (silent fail)
	_ = godotenv.Load()
}

// Config contains common configuration for all providers.
type Config struct {
	APIKey  string
	BaseURL string

	// Generation options
	MaxOutputTokens *int
	Temperature     *float64

	// Extra options
	ExtraHeaders map[string]string
}

// ApplyEnvDefaults applies environment variable defaults if config
// values are empty.
func ApplyEnvDefaults(cfg *Config, apiKeyEnv, baseURLEnv string) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(apiKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv(baseURLEnv)
	}
}
