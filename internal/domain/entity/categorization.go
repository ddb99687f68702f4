package entity

import "github.com/shopspring/decimal"

// CategorizationResult is the categorizer's verdict for one transaction
// description. Confidence is always in [0,1].
type CategorizationResult struct {
	Category    TransactionCategory
	Subcategory string // empty when no sub-category rule matched
	Confidence  float64
}

// LabeledSample is one labeled training example for the categorizer.
type LabeledSample struct {
	Description  string
	MerchantName string
	Amount       decimal.Decimal
	Category     TransactionCategory
}
