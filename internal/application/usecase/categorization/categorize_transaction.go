// Package categorization contains the transaction categorization use cases.
package categorization

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/application/ml"
	"github.com/finance-assistant/backend/internal/domain/entity"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
)

// MaxDescriptionLength bounds the accepted transaction description.
const MaxDescriptionLength = 500

// CategorizeTransactionInput represents the input for categorizing one
// transaction.
type CategorizeTransactionInput struct {
	Description  string
	MerchantName string
	Amount       decimal.Decimal
}

// CategorizeTransactionOutput represents the output of categorizing one
// transaction.
type CategorizeTransactionOutput struct {
	Category        entity.TransactionCategory `json:"category"`
	Subcategory     string                     `json:"subcategory,omitempty"`
	ConfidenceScore float64                    `json:"confidence_score"`
}

// CategorizeTransactionUseCase handles predicting a transaction's category.
type CategorizeTransactionUseCase struct {
	categorizer *ml.Categorizer
}

// NewCategorizeTransactionUseCase creates a new CategorizeTransactionUseCase instance.
func NewCategorizeTransactionUseCase(categorizer *ml.Categorizer) *CategorizeTransactionUseCase {
	return &CategorizeTransactionUseCase{
		categorizer: categorizer,
	}
}

// Execute validates the input and predicts the category. Prediction itself
// never fails: an untrained model yields the documented low-confidence
// default.
func (uc *CategorizeTransactionUseCase) Execute(
	_ context.Context,
	input CategorizeTransactionInput,
) (*CategorizeTransactionOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	result := uc.categorizer.Predict(input.Description, input.MerchantName, input.Amount)

	return &CategorizeTransactionOutput{
		Category:        result.Category,
		Subcategory:     result.Subcategory,
		ConfidenceScore: result.Confidence,
	}, nil
}

// validateInput validates the input parameters.
func (uc *CategorizeTransactionUseCase) validateInput(input CategorizeTransactionInput) error {
	if input.Description == "" {
		return domainerror.NewCategorizationError(
			domainerror.ErrCodeEmptyDescription,
			"description is required",
			domainerror.ErrEmptyDescription,
		)
	}

	if len(input.Description) > MaxDescriptionLength {
		return domainerror.NewCategorizationError(
			domainerror.ErrCodeDescriptionTooLong,
			"description must be at most 500 characters",
			domainerror.ErrDescriptionTooLong,
		)
	}

	if !input.Amount.IsPositive() {
		return domainerror.NewCategorizationError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}

	return nil
}
