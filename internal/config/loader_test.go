package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader().Load("")
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "llama3.2:3b", cfg.LLM.Model)
	assert.Equal(t, "docker", cfg.MCP.Command)
	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, 300, cfg.Server.TurnTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatbridge.yaml")
	content := []byte(`
llm:
  provider: anthropic
  model: claude-sonnet-4-5
mcp:
  command: python3
  args: ["server.py"]
server:
  addr: ":8080"
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "claude-sonnet-4-5", cfg.LLM.Model)
	assert.Equal(t, "python3", cfg.MCP.Command)
	assert.Equal(t, []string{"server.py"}, cfg.MCP.Args)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, 300, cfg.Server.TurnTimeout)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CHATBRIDGE_LLM_MODEL", "qwen2.5:7b")
	t.Setenv("CHATBRIDGE_SERVER_ADDR", ":9000")

	cfg, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, "qwen2.5:7b", cfg.LLM.Model)
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  provider: \"\"\n"), 0o644))

	_, err := NewLoader().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.provider")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatbridge.yaml")
	want := Default()
	want.LLM.Model = "llama3.1:8b"
	require.NoError(t, Save(want, path))

	got, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
