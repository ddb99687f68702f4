package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-assistant/backend/internal/application/usecase/ledger"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/dto"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/middleware"
)

// summaryDateLayout is the accepted format of the summary window query
// parameters.
const summaryDateLayout = "2006-01-02"

// TransactionController handles transaction reporting endpoints.
type TransactionController struct {
	summaryUseCase *ledger.GetSummaryUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(summaryUseCase *ledger.GetSummaryUseCase) *TransactionController {
	return &TransactionController{
		summaryUseCase: summaryUseCase,
	}
}

// GetSummaryStats handles GET /transactions/summary/stats requests. The
// optional start_date and end_date query parameters bound the window.
func (c *TransactionController) GetSummaryStats(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Authentication required",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := ledger.GetSummaryInput{UserID: userID}

	if raw := ctx.Query("start_date"); raw != "" {
		startDate, err := time.Parse(summaryDateLayout, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "start_date must be formatted as YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateRange),
			})
			return
		}
		input.StartDate = startDate
	}

	if raw := ctx.Query("end_date"); raw != "" {
		endDate, err := time.Parse(summaryDateLayout, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "end_date must be formatted as YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateRange),
			})
			return
		}
		input.EndDate = endDate
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionSummaryResponse(output))
}

// handleLedgerError handles ledger errors and returns appropriate HTTP
// responses.
func (c *TransactionController) handleLedgerError(ctx *gin.Context, err error) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		ctx.JSON(c.getStatusCodeForLedgerError(ledgerErr.Code), dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForLedgerError maps ledger error codes to HTTP status codes.
func (c *TransactionController) getStatusCodeForLedgerError(code domainerror.LedgerErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidDateRange, domainerror.ErrCodeInvalidMonths:
		return http.StatusBadRequest
	case domainerror.ErrCodeAccountNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
