package adapter

import (
	"context"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// ConversationStore persists chat exchanges keyed by conversation id.
// Implementations are expected to expire conversations after a retention
// window; callers treat store failures as non-fatal (the reply is still
// delivered, history is simply not kept).
type ConversationStore interface {
	// Append stores one exchange at the end of a conversation.
	Append(ctx context.Context, message *entity.ConversationMessage) error

	// History returns a conversation's exchanges in insertion order.
	History(ctx context.Context, conversationID string) ([]*entity.ConversationMessage, error)

	// Delete removes a conversation and all its exchanges.
	Delete(ctx context.Context, conversationID string) error
}
