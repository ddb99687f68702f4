package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-assistant/backend/internal/application/usecase/categorization"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/dto"
)

// CategorizationController handles transaction categorization endpoints.
type CategorizationController struct {
	categorizeUseCase *categorization.CategorizeTransactionUseCase
	retrainUseCase    *categorization.RetrainModelUseCase
}

// NewCategorizationController creates a new categorization controller instance.
func NewCategorizationController(
	categorizeUseCase *categorization.CategorizeTransactionUseCase,
	retrainUseCase *categorization.RetrainModelUseCase,
) *CategorizationController {
	return &CategorizationController{
		categorizeUseCase: categorizeUseCase,
		retrainUseCase:    retrainUseCase,
	}
}

// Categorize handles POST /categorization/categorize requests.
func (c *CategorizationController) Categorize(ctx *gin.Context) {
	var req dto.CategorizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeEmptyDescription),
		})
		return
	}

	input := categorization.CategorizeTransactionInput{
		Description:  req.Description,
		MerchantName: req.MerchantName,
		Amount:       req.Amount,
	}

	output, err := c.categorizeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCategorizationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategorizeResponse{
		Category:        string(output.Category),
		Subcategory:     output.Subcategory,
		ConfidenceScore: output.ConfidenceScore,
	})
}

// Retrain handles POST /categorization/retrain requests.
func (c *CategorizationController) Retrain(ctx *gin.Context) {
	output, err := c.retrainUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleCategorizationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RetrainResponse{
		SampleCount:  output.SampleCount,
		TrainCount:   output.TrainCount,
		HoldoutCount: output.HoldoutCount,
		Accuracy:     output.Accuracy,
	})
}

// handleCategorizationError handles categorization errors and returns
// appropriate HTTP responses.
func (c *CategorizationController) handleCategorizationError(ctx *gin.Context, err error) {
	var catErr *domainerror.CategorizationError
	if errors.As(err, &catErr) {
		ctx.JSON(c.getStatusCodeForCategorizationError(catErr.Code), dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCategorizationError maps categorization error codes to
// HTTP status codes.
func (c *CategorizationController) getStatusCodeForCategorizationError(
	code domainerror.CategorizationErrorCode,
) int {
	switch code {
	case domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeEmptyDescription,
		domainerror.ErrCodeDescriptionTooLong:
		return http.StatusBadRequest
	case domainerror.ErrCodeNoTrainingData:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
