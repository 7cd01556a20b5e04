package config

// Config is the full application configuration.
type Config struct {
	LLM    LLMConfig    `mapstructure:"llm" yaml:"llm"`
	MCP    MCPConfig    `mapstructure:"mcp" yaml:"mcp"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// LLMConfig holds LLM provider configuration.
type LLMConfig struct {
	Provider    string  `mapstructure:"provider" yaml:"provider"` // ollama, openai, anthropic
	Model       string  `mapstructure:"model" yaml:"model"`
	APIKey      string  `mapstructure:"api_key" yaml:"api_key,omitempty"`
	BaseURL     string  `mapstructure:"base_url" yaml:"base_url,omitempty"` // for OpenAI-compatible APIs
	Temperature float64 `mapstructure:"temperature" yaml:"temperature,omitempty"`
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens,omitempty"`
}

// MCPConfig describes how to reach the tool-providing backend process.
type MCPConfig struct {
	Command string   `mapstructure:"command" yaml:"command"`
	Args    []string `mapstructure:"args" yaml:"args"`
	// Container names the Docker container the preflight check looks
	// for; empty disables the check.
	Container string `mapstructure:"container" yaml:"container,omitempty"`
}

// ServerConfig holds web server configuration.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
	// TurnTimeout bounds one chat turn, in seconds.
	TurnTimeout int `mapstructure:"turn_timeout" yaml:"turn_timeout"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	Path  string `mapstructure:"path" yaml:"path,omitempty"`
}

// Default returns the configuration matching the stock compliance
// assistant deployment: Ollama locally, the MCP server inside Docker.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3.2:3b",
		},
		MCP: MCPConfig{
			Command:   "docker",
			Args:      []string{"exec", "-i", "cloud-compliance-mcp", "java", "-jar", "/app/cloud-compliance-mcp.jar"},
			Container: "cloud-compliance-mcp",
		},
		Server: ServerConfig{
			Addr:        ":5000",
			TurnTimeout: 300,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
