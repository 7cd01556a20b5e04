package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_KnownProviders(t *testing.T) {
	for _, name := range []string{"ollama", "openai", "anthropic"} {
		p, err := New(name, "test-model", Options{APIKey: "key"})
		require.NoError(t, err, "provider %s", name)
		assert.NotNil(t, p)
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New("bard", "test-model", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}
