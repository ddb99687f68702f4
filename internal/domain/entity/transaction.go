// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// TransactionCategory is the top-level spending/income category assigned to
// a transaction, either manually or by the categorizer.
type TransactionCategory string

const (
	// Income categories
	CategorySalary           TransactionCategory = "salary"
	CategoryFreelance        TransactionCategory = "freelance"
	CategoryInvestmentIncome TransactionCategory = "investment_income"
	CategoryOtherIncome      TransactionCategory = "other_income"

	// Expense categories
	CategoryFoodDining     TransactionCategory = "food_dining"
	CategoryShopping       TransactionCategory = "shopping"
	CategoryTransportation TransactionCategory = "transportation"
	CategoryEntertainment  TransactionCategory = "entertainment"
	CategoryBillsUtilities TransactionCategory = "bills_utilities"
	CategoryHealthcare     TransactionCategory = "healthcare"
	CategoryEducation      TransactionCategory = "education"
	CategoryTravel         TransactionCategory = "travel"
	CategoryInsurance      TransactionCategory = "insurance"
	CategoryTaxes          TransactionCategory = "taxes"
	CategoryOtherExpense   TransactionCategory = "other_expense"

	// Transfer categories
	CategoryTransferIn  TransactionCategory = "transfer_in"
	CategoryTransferOut TransactionCategory = "transfer_out"
)

// Transaction represents a financial transaction tied to an account.
type Transaction struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	Date         time.Time
	Description  string
	MerchantName string
	Amount       decimal.Decimal // Always positive; Type carries the direction
	Type         TransactionType
	Category     TransactionCategory
	Subcategory  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	accountID uuid.UUID,
	date time.Time,
	description string,
	merchantName string,
	amount decimal.Decimal,
	transactionType TransactionType,
	category TransactionCategory,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:           uuid.New(),
		AccountID:    accountID,
		Date:         date,
		Description:  description,
		MerchantName: merchantName,
		Amount:       amount,
		Type:         transactionType,
		Category:     category,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CategoryTotal represents the summed expenses for one category.
type CategoryTotal struct {
	Category TransactionCategory
	Amount   decimal.Decimal
}

// MonthlyTotals represents income and expense totals for one calendar month.
type MonthlyTotals struct {
	Year     int
	Month    time.Month
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Net returns income minus expenses for the month.
func (m MonthlyTotals) Net() decimal.Decimal {
	return m.Income.Sub(m.Expenses)
}
