package chatbridge

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversation_CommitTurn(t *testing.T) {
	conv := NewConversation()
	conv.CommitTurn("list my buckets", "You have two buckets.")

	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, Message{Role: RoleUser, Content: "list my buckets"}, msgs[0])
	assert.Equal(t, Message{Role: RoleAssistant, Content: "You have two buckets."}, msgs[1])
}

func TestConversation_MessagesReturnsCopy(t *testing.T) {
	conv := NewConversation()
	conv.CommitTurn("a", "b")

	msgs := conv.Messages()
	msgs[0].Content = "mutated"
	assert.Equal(t, "a", conv.Messages()[0].Content)
}

func TestConversation_GrowsMonotonically(t *testing.T) {
	conv := NewConversation()
	for i := 0; i < 5; i++ {
		conv.CommitTurn("question", "answer")
		assert.Equal(t, (i+1)*2, conv.Len())
	}
}

func TestConversation_ConcurrentAppend(t *testing.T) {
	conv := NewConversation()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv.Append(RoleUser, "x")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, conv.Len())
}
