package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date         time.Time       `gorm:"type:date;not null;index"`
	Description  string          `gorm:"type:varchar(500);not null"`
	MerchantName string          `gorm:"type:varchar(255)"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type         string          `gorm:"type:varchar(10);not null;index"`
	Category     string          `gorm:"type:varchar(30);index"`
	Subcategory  string          `gorm:"type:varchar(30)"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`

	Account *AccountModel `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:           m.ID,
		AccountID:    m.AccountID,
		Date:         m.Date,
		Description:  m.Description,
		MerchantName: m.MerchantName,
		Amount:       m.Amount,
		Type:         entity.TransactionType(m.Type),
		Category:     entity.TransactionCategory(m.Category),
		Subcategory:  m.Subcategory,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:           transaction.ID,
		AccountID:    transaction.AccountID,
		Date:         transaction.Date,
		Description:  transaction.Description,
		MerchantName: transaction.MerchantName,
		Amount:       transaction.Amount,
		Type:         string(transaction.Type),
		Category:     string(transaction.Category),
		Subcategory:  transaction.Subcategory,
		CreatedAt:    transaction.CreatedAt,
		UpdatedAt:    transaction.UpdatedAt,
	}
}
