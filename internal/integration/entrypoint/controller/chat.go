package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-assistant/backend/internal/application/usecase/chat"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/dto"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/middleware"
)

// maxMessageLength bounds the accepted chat message size.
const maxMessageLength = 1000

// ChatController handles conversational assistant endpoints.
type ChatController struct {
	processMessageUseCase *chat.ProcessMessageUseCase
	historyUseCase        *chat.GetConversationHistoryUseCase
	deleteUseCase         *chat.DeleteConversationUseCase
	suggestionsUseCase    *chat.GetSuggestionsUseCase
}

// NewChatController creates a new chat controller instance.
func NewChatController(
	processMessageUseCase *chat.ProcessMessageUseCase,
	historyUseCase *chat.GetConversationHistoryUseCase,
	deleteUseCase *chat.DeleteConversationUseCase,
	suggestionsUseCase *chat.GetSuggestionsUseCase,
) *ChatController {
	return &ChatController{
		processMessageUseCase: processMessageUseCase,
		historyUseCase:        historyUseCase,
		deleteUseCase:         deleteUseCase,
		suggestionsUseCase:    suggestionsUseCase,
	}
}

// SendMessage handles POST /chat/message requests.
func (c *ChatController) SendMessage(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Authentication required",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.ChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Message is required",
			Code:  string(domainerror.ErrCodeEmptyMessage),
		})
		return
	}

	if len(req.Message) > maxMessageLength {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Message must be at most 1000 characters",
			Code:  string(domainerror.ErrCodeMessageTooLong),
		})
		return
	}

	input := chat.ProcessMessageInput{
		UserID:         userID,
		Message:        req.Message,
		ConversationID: req.ConversationID,
	}

	reply, err := c.processMessageUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToChatMessageResponse(reply))
}

// GetHistory handles GET /chat/conversations/:id requests.
func (c *ChatController) GetHistory(ctx *gin.Context) {
	conversationID := ctx.Param("id")

	output, err := c.historyUseCase.Execute(ctx.Request.Context(), chat.GetConversationHistoryInput{
		ConversationID: conversationID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToConversationHistoryResponse(conversationID, output.Messages))
}

// DeleteConversation handles DELETE /chat/conversations/:id requests.
func (c *ChatController) DeleteConversation(ctx *gin.Context) {
	conversationID := ctx.Param("id")

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), chat.DeleteConversationInput{
		ConversationID: conversationID,
	}); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetSuggestions handles GET /chat/suggestions requests.
func (c *ChatController) GetSuggestions(ctx *gin.Context) {
	output, err := c.suggestionsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.SuggestionsResponse{
		Suggestions: output.Suggestions,
	})
}
