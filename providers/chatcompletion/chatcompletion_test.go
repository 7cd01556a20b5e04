package chatcompletion_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complycloud/chatbridge"
	cc "github.com/complycloud/chatbridge/providers/chatcompletion"
)

func TestBuildParams(t *testing.T) {
	params := cc.BuildParams(chatbridge.ChatRequest{
		SystemPrompt: "You are a compliance assistant.",
		History: []chatbridge.Message{
			{Role: chatbridge.RoleUser, Content: "List my buckets"},
			{Role: chatbridge.RoleAssistant, Content: "You have two buckets."},
			{Role: chatbridge.RoleUser, Content: "Which is larger?"},
		},
	})

	require.Len(t, params.Messages, 4)
	assert.NotNil(t, params.Messages[0].OfSystem)
	assert.NotNil(t, params.Messages[1].OfUser)
	assert.NotNil(t, params.Messages[2].OfAssistant)
	assert.NotNil(t, params.Messages[3].OfUser)
}

func TestBuildParams_NoSystemPrompt(t *testing.T) {
	params := cc.BuildParams(chatbridge.ChatRequest{
		History: []chatbridge.Message{{Role: chatbridge.RoleUser, Content: "hi"}},
	})
	require.Len(t, params.Messages, 1)
	assert.NotNil(t, params.Messages[0].OfUser)
}

func TestLive_Chat(t *testing.T) {
	if os.Getenv("OPENAI_API_KEY") == "" {
		t.Skipf("skipping: OPENAI_API_KEY not set")
	}

	provider := cc.New("gpt-4o-mini")
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	text, err := provider.Chat(ctx, chatbridge.ChatRequest{
		History: []chatbridge.Message{{Role: chatbridge.RoleUser, Content: "Reply with the single word: pong"}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, text)
	t.Logf("response: %q", text)
}
