package chat

import (
	"context"
	"fmt"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// GetConversationHistoryInput represents the input for getting a
// conversation's history.
type GetConversationHistoryInput struct {
	ConversationID string
}

// GetConversationHistoryOutput represents the output of getting a
// conversation's history, oldest exchange first.
type GetConversationHistoryOutput struct {
	Messages []*entity.ConversationMessage `json:"messages"`
}

// GetConversationHistoryUseCase handles reading stored conversations.
type GetConversationHistoryUseCase struct {
	store adapter.ConversationStore
}

// NewGetConversationHistoryUseCase creates a new GetConversationHistoryUseCase instance.
func NewGetConversationHistoryUseCase(store adapter.ConversationStore) *GetConversationHistoryUseCase {
	return &GetConversationHistoryUseCase{store: store}
}

// Execute retrieves the conversation's exchanges. An unknown conversation
// yields an empty history, not an error.
func (uc *GetConversationHistoryUseCase) Execute(
	ctx context.Context,
	input GetConversationHistoryInput,
) (*GetConversationHistoryOutput, error) {
	if uc.store == nil {
		return &GetConversationHistoryOutput{Messages: []*entity.ConversationMessage{}}, nil
	}

	messages, err := uc.store.History(ctx, input.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation history: %w", err)
	}
	if messages == nil {
		messages = []*entity.ConversationMessage{}
	}

	return &GetConversationHistoryOutput{Messages: messages}, nil
}

// DeleteConversationInput represents the input for deleting a conversation.
type DeleteConversationInput struct {
	ConversationID string
}

// DeleteConversationUseCase handles removing a stored conversation.
type DeleteConversationUseCase struct {
	store adapter.ConversationStore
}

// NewDeleteConversationUseCase creates a new DeleteConversationUseCase instance.
func NewDeleteConversationUseCase(store adapter.ConversationStore) *DeleteConversationUseCase {
	return &DeleteConversationUseCase{store: store}
}

// Execute deletes the conversation and its exchanges.
func (uc *DeleteConversationUseCase) Execute(
	ctx context.Context,
	input DeleteConversationInput,
) error {
	if uc.store == nil {
		return nil
	}

	if err := uc.store.Delete(ctx, input.ConversationID); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}
