// Package config loads and persists application configuration.
// Precedence: config file > environment (CHATBRIDGE_*) > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the project-local config file looked up by default.
const FileName = "chatbridge.yaml"

// Loader handles loading configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvPrefix("CHATBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return &Loader{v: v}
}

// Load resolves the configuration. When path is empty, the loader
// falls back to ./chatbridge.yaml, then ~/.chatbridge.yaml; a missing
// file is not an error.
func (l *Loader) Load(path string) (Config, error) {
	cfg := Default()
	l.setDefaults(cfg)

	file, explicit := l.resolvePath(path)
	if file != "" {
		l.v.SetConfigFile(file)
		if err := l.v.ReadInConfig(); err != nil {
			if explicit {
				return Config{}, fmt.Errorf("read config %s: %w", file, err)
			}
		}
	}

	decoderConfig := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &cfg,
		TagName:          "mapstructure",
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return Config{}, fmt.Errorf("create config decoder: %w", err)
	}
	if err := decoder.Decode(l.v.AllSettings()); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key with viper so environment overrides
// are visible to AllSettings.
func (l *Loader) setDefaults(cfg Config) {
	l.v.SetDefault("llm.provider", cfg.LLM.Provider)
	l.v.SetDefault("llm.model", cfg.LLM.Model)
	l.v.SetDefault("llm.api_key", cfg.LLM.APIKey)
	l.v.SetDefault("llm.base_url", cfg.LLM.BaseURL)
	l.v.SetDefault("llm.temperature", cfg.LLM.Temperature)
	l.v.SetDefault("llm.max_tokens", cfg.LLM.MaxTokens)
	l.v.SetDefault("mcp.command", cfg.MCP.Command)
	l.v.SetDefault("mcp.args", cfg.MCP.Args)
	l.v.SetDefault("mcp.container", cfg.MCP.Container)
	l.v.SetDefault("server.addr", cfg.Server.Addr)
	l.v.SetDefault("server.turn_timeout", cfg.Server.TurnTimeout)
	l.v.SetDefault("log.level", cfg.Log.Level)
	l.v.SetDefault("log.path", cfg.Log.Path)
}

func (l *Loader) resolvePath(path string) (string, bool) {
	if path != "" {
		return path, true
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName, false
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, "."+FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, false
		}
	}
	return "", false
}

func validate(cfg Config) error {
	if cfg.LLM.Provider == "" {
		return fmt.Errorf("llm.provider must not be empty")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model must not be empty")
	}
	if cfg.MCP.Command == "" {
		return fmt.Errorf("mcp.command must not be empty")
	}
	if cfg.Server.TurnTimeout <= 0 {
		return fmt.Errorf("server.turn_timeout must be positive, got %d", cfg.Server.TurnTimeout)
	}
	return nil
}

// Save writes the configuration to path as YAML.
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
