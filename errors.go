package chatbridge

import "errors"

var (
	ErrNoProvider     = errors.New("chatbridge: provider is required")
	ErrNoSession      = errors.New("chatbridge: tool session is required")
	ErrEmptyUtterance = errors.New("chatbridge: utterance is empty")
	ErrDuplicateTool  = errors.New("chatbridge: duplicate tool name in catalog")
)
