package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// conversationTTL is how long an idle conversation is retained.
const conversationTTL = 24 * time.Hour

// redisConversationStore implements the adapter.ConversationStore interface
// on a Redis list per conversation.
type redisConversationStore struct {
	client *redis.Client
}

// NewRedisConversationStore creates a new Redis-backed conversation store.
func NewRedisConversationStore(client *redis.Client) adapter.ConversationStore {
	return &redisConversationStore{
		client: client,
	}
}

// Append stores one exchange at the end of the conversation and refreshes
// the retention window.
func (s *redisConversationStore) Append(ctx context.Context, message *entity.ConversationMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode conversation message: %w", err)
	}

	key := conversationKey(message.ConversationID)
	if err := s.client.RPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("failed to append conversation message: %w", err)
	}
	if err := s.client.Expire(ctx, key, conversationTTL).Err(); err != nil {
		return fmt.Errorf("failed to refresh conversation ttl: %w", err)
	}
	return nil
}

// History returns the conversation's exchanges in insertion order.
func (s *redisConversationStore) History(ctx context.Context, conversationID string) ([]*entity.ConversationMessage, error) {
	raw, err := s.client.LRange(ctx, conversationKey(conversationID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation history: %w", err)
	}

	messages := make([]*entity.ConversationMessage, 0, len(raw))
	for _, item := range raw {
		var message entity.ConversationMessage
		if err := json.Unmarshal([]byte(item), &message); err != nil {
			return nil, fmt.Errorf("failed to decode conversation message: %w", err)
		}
		messages = append(messages, &message)
	}
	return messages, nil
}

// Delete removes a conversation and all its exchanges.
func (s *redisConversationStore) Delete(ctx context.Context, conversationID string) error {
	if err := s.client.Del(ctx, conversationKey(conversationID)).Err(); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

func conversationKey(conversationID string) string {
	return "conversation:" + conversationID
}
