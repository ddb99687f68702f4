package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityLabel identifies the kind of span a named-entity tagger found.
type EntityLabel string

const (
	EntityLabelDate EntityLabel = "DATE"
	EntityLabelTime EntityLabel = "TIME"
)

// ExtractedEntity is a single tagged span inside a chat message.
type ExtractedEntity struct {
	Text  string      `json:"text"`
	Label EntityLabel `json:"label"`
	Start int         `json:"start"`
	End   int         `json:"end"`
}

// StructuredEntities holds the purpose-built extraction results used by the
// response builders, distinct from the generic tagged spans.
type StructuredEntities struct {
	Amounts    []decimal.Decimal
	Dates      []string
	Categories []string
}

// IsEmpty reports whether nothing was extracted from the message.
func (s StructuredEntities) IsEmpty() bool {
	return len(s.Amounts) == 0 && len(s.Dates) == 0 && len(s.Categories) == 0
}

// ClassificationResult is the outcome of classifying one chat message.
type ClassificationResult struct {
	Intent     string
	Confidence float64
	Entities   []ExtractedEntity
}

// ChartData is an optional chart payload attached to a chat reply.
type ChartData struct {
	Type  string        `json:"type"`
	Title string        `json:"title"`
	Data  ChartDataSets `json:"data"`
}

// ChartDataSets holds parallel label/value series for a chart.
type ChartDataSets struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Action is a follow-up action the client can offer the user.
type Action struct {
	Type   string `json:"type"`
	ID     string `json:"id,omitempty"`
	Format string `json:"format,omitempty"`
	Label  string `json:"label"`
}

// ChatReply is the assembled response to one chat message.
type ChatReply struct {
	Text           string
	Intent         string
	Confidence     float64
	Entities       []ExtractedEntity
	ConversationID string
	Chart          *ChartData
	Actions        []Action
}

// ConversationMessage is one stored exchange in a conversation.
type ConversationMessage struct {
	ConversationID string    `json:"conversation_id"`
	UserMessage    string    `json:"user_message"`
	BotResponse    string    `json:"bot_response"`
	Intent         string    `json:"intent"`
	Timestamp      time.Time `json:"timestamp"`
}
