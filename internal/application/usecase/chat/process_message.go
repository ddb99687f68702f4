package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/application/nlp"
	"github.com/finance-assistant/backend/internal/application/usecase/ledger"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// FallbackResponse is the fixed reply for unknown intents and for any
// builder that could not produce an answer.
const FallbackResponse = "I'm not sure how to help with that. Try asking about your balance, spending, or budget!"

// analysisWindowDays is the trailing window the spending, budget and
// savings builders analyze.
const analysisWindowDays = 30

// builderResponse is what one intent response builder produces.
type builderResponse struct {
	Text    string
	Chart   *entity.ChartData
	Actions []entity.Action
}

// responseBuilder answers one intent, consulting the ledger as needed.
type responseBuilder func(
	ctx context.Context,
	userID uuid.UUID,
	entities entity.StructuredEntities,
) (builderResponse, error)

// ProcessMessageInput represents one incoming chat message. An empty
// ConversationID starts a new conversation.
type ProcessMessageInput struct {
	UserID         uuid.UUID
	Message        string
	ConversationID string
}

// ProcessMessageUseCase coordinates one chat exchange: classification and
// entity extraction, dispatch to the intent's response builder, reply
// assembly and best-effort conversation persistence. It is stateless per
// invocation; the conversation id is an opaque handle echoed to the caller.
type ProcessMessageUseCase struct {
	matcher   *nlp.IntentMatcher
	extractor *nlp.EntityExtractor
	store     adapter.ConversationStore

	balances  *ledger.GetAccountBalancesUseCase
	breakdown *ledger.GetCategoryBreakdownUseCase
	netFlow   *ledger.GetNetFlowUseCase
	search    *ledger.SearchTransactionsUseCase

	builders map[string]responseBuilder
	now      func() time.Time
}

// NewProcessMessageUseCase creates a new ProcessMessageUseCase instance and
// its fixed intent dispatch table. The store may be nil; history is then
// not kept.
func NewProcessMessageUseCase(
	matcher *nlp.IntentMatcher,
	extractor *nlp.EntityExtractor,
	store adapter.ConversationStore,
	balances *ledger.GetAccountBalancesUseCase,
	breakdown *ledger.GetCategoryBreakdownUseCase,
	netFlow *ledger.GetNetFlowUseCase,
	search *ledger.SearchTransactionsUseCase,
) *ProcessMessageUseCase {
	uc := &ProcessMessageUseCase{
		matcher:   matcher,
		extractor: extractor,
		store:     store,
		balances:  balances,
		breakdown: breakdown,
		netFlow:   netFlow,
		search:    search,
		now:       func() time.Time { return time.Now().UTC() },
	}

	uc.builders = map[string]responseBuilder{
		nlp.IntentGreeting:          uc.buildTemplateResponse(nlp.IntentGreeting),
		nlp.IntentBalanceInquiry:    uc.buildBalanceResponse,
		nlp.IntentSpendingAnalysis:  uc.buildSpendingResponse,
		nlp.IntentBudgetHelp:        uc.buildBudgetResponse,
		nlp.IntentSavingsAdvice:     uc.buildSavingsResponse,
		nlp.IntentTransactionSearch: uc.buildSearchResponse,
		nlp.IntentFinancialGoals:    uc.buildGoalsResponse,
		nlp.IntentBillReminders:     uc.buildBillsResponse,
		nlp.IntentExportData:        uc.buildExportResponse,
		nlp.IntentHelp:              uc.buildTemplateResponse(nlp.IntentHelp),
		nlp.IntentGoodbye:           uc.buildTemplateResponse(nlp.IntentGoodbye),
	}

	return uc
}

// Execute processes one chat message and assembles the reply. Every code
// path terminates in a reply; a failing builder or store degrades to the
// fallback text rather than surfacing an error to the caller.
func (uc *ProcessMessageUseCase) Execute(
	ctx context.Context,
	input ProcessMessageInput,
) (*entity.ChatReply, error) {
	conversationID := input.ConversationID
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	// Classification and extraction are independent pure functions of the
	// message and run concurrently.
	var (
		intent     string
		confidence float64
		spans      []entity.ExtractedEntity
		structured entity.StructuredEntities
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		intent, confidence = uc.matcher.Classify(input.Message)
	}()
	go func() {
		defer wg.Done()
		spans = uc.extractor.Tag(ctx, input.Message)
		structured = uc.extractor.Extract(ctx, input.Message)
	}()
	wg.Wait()

	response := builderResponse{Text: FallbackResponse}
	if builder, ok := uc.builders[intent]; ok {
		built, err := builder(ctx, input.UserID, structured)
		if err != nil {
			slog.Warn("Response builder failed, replying with fallback",
				"intent", intent,
				"error", err,
			)
			built = builderResponse{Text: FallbackResponse}
		}
		response = built
	}

	uc.storeExchange(ctx, conversationID, input.Message, response.Text, intent)

	return &entity.ChatReply{
		Text:           response.Text,
		Intent:         intent,
		Confidence:     confidence,
		Entities:       spans,
		ConversationID: conversationID,
		Chart:          response.Chart,
		Actions:        response.Actions,
	}, nil
}

// storeExchange persists the exchange when a store is configured. Failures
// are logged and swallowed; the reply is already built.
func (uc *ProcessMessageUseCase) storeExchange(
	ctx context.Context,
	conversationID, userMessage, botResponse, intent string,
) {
	if uc.store == nil {
		return
	}

	message := &entity.ConversationMessage{
		ConversationID: conversationID,
		UserMessage:    userMessage,
		BotResponse:    botResponse,
		Intent:         intent,
		Timestamp:      uc.now(),
	}
	if err := uc.store.Append(ctx, message); err != nil {
		slog.Warn("Failed to store conversation message",
			"conversation_id", conversationID,
			"error", err,
		)
	}
}
