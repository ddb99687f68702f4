package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/application/usecase/ledger"
)

// CategorySummaryResponse represents one top spending category.
type CategorySummaryResponse struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// MonthlyTrendItemResponse represents one month of the trailing trend.
type MonthlyTrendItemResponse struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// TransactionSummaryResponse represents the transaction summary statistics.
type TransactionSummaryResponse struct {
	TotalIncome      decimal.Decimal            `json:"total_income"`
	TotalExpenses    decimal.Decimal            `json:"total_expenses"`
	NetIncome        decimal.Decimal            `json:"net_income"`
	TransactionCount int                        `json:"transaction_count"`
	TopCategories    []CategorySummaryResponse  `json:"top_categories"`
	MonthlyTrend     []MonthlyTrendItemResponse `json:"monthly_trend"`
}

// ToTransactionSummaryResponse converts a summary output to its DTO.
func ToTransactionSummaryResponse(output *ledger.GetSummaryOutput) TransactionSummaryResponse {
	categories := make([]CategorySummaryResponse, 0, len(output.TopCategories))
	for _, item := range output.TopCategories {
		categories = append(categories, CategorySummaryResponse{
			Category:   string(item.Category),
			Amount:     item.Amount,
			Percentage: item.Percentage,
		})
	}

	trend := make([]MonthlyTrendItemResponse, 0, len(output.MonthlyTrend))
	for _, item := range output.MonthlyTrend {
		trend = append(trend, MonthlyTrendItemResponse{
			Month:    fmt.Sprintf("%04d-%02d", item.Year, int(item.Month)),
			Income:   item.Income,
			Expenses: item.Expenses,
			Net:      item.Net,
		})
	}

	return TransactionSummaryResponse{
		TotalIncome:      output.TotalIncome,
		TotalExpenses:    output.TotalExpenses,
		NetIncome:        output.NetIncome,
		TransactionCount: output.TransactionCount,
		TopCategories:    categories,
		MonthlyTrend:     trend,
	}
}
