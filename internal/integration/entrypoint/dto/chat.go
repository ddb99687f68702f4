package dto

import (
	"time"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// ChatMessageRequest represents the request body for sending a chat message.
type ChatMessageRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id"`
}

// ChatMessageResponse represents the reply to one chat message.
type ChatMessageResponse struct {
	Response       string                   `json:"response"`
	Intent         string                   `json:"intent"`
	Confidence     float64                  `json:"confidence"`
	Entities       []entity.ExtractedEntity `json:"entities"`
	ConversationID string                   `json:"conversation_id"`
	ChartData      *entity.ChartData        `json:"chart_data,omitempty"`
	Actions        []entity.Action          `json:"actions,omitempty"`
}

// ConversationMessageResponse represents one stored exchange.
type ConversationMessageResponse struct {
	ConversationID string    `json:"conversation_id"`
	UserMessage    string    `json:"user_message"`
	BotResponse    string    `json:"bot_response"`
	Intent         string    `json:"intent"`
	Timestamp      time.Time `json:"timestamp"`
}

// ConversationHistoryResponse represents a conversation's exchanges, oldest
// first.
type ConversationHistoryResponse struct {
	ConversationID string                        `json:"conversation_id"`
	Messages       []ConversationMessageResponse `json:"messages"`
}

// SuggestionsResponse represents the starter prompts for the chat UI.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// ToChatMessageResponse converts a domain ChatReply to its DTO.
func ToChatMessageResponse(reply *entity.ChatReply) ChatMessageResponse {
	entities := reply.Entities
	if entities == nil {
		entities = []entity.ExtractedEntity{}
	}

	return ChatMessageResponse{
		Response:       reply.Text,
		Intent:         reply.Intent,
		Confidence:     reply.Confidence,
		Entities:       entities,
		ConversationID: reply.ConversationID,
		ChartData:      reply.Chart,
		Actions:        reply.Actions,
	}
}

// ToConversationHistoryResponse converts stored exchanges to their DTO.
func ToConversationHistoryResponse(
	conversationID string,
	messages []*entity.ConversationMessage,
) ConversationHistoryResponse {
	out := make([]ConversationMessageResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, ConversationMessageResponse{
			ConversationID: message.ConversationID,
			UserMessage:    message.UserMessage,
			BotResponse:    message.BotResponse,
			Intent:         message.Intent,
			Timestamp:      message.Timestamp,
		})
	}

	return ConversationHistoryResponse{
		ConversationID: conversationID,
		Messages:       out,
	}
}
