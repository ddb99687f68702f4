package dto

import "github.com/shopspring/decimal"

// CategorizeRequest represents the request body for categorizing one
// transaction.
type CategorizeRequest struct {
	Description  string          `json:"description" binding:"required"`
	MerchantName string          `json:"merchant_name"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
}

// CategorizeResponse represents a category prediction.
type CategorizeResponse struct {
	Category        string  `json:"category"`
	Subcategory     string  `json:"subcategory,omitempty"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// RetrainResponse represents the outcome of retraining the model.
type RetrainResponse struct {
	SampleCount  int     `json:"sample_count"`
	TrainCount   int     `json:"train_count"`
	HoldoutCount int     `json:"holdout_count"`
	Accuracy     float64 `json:"accuracy"`
}
