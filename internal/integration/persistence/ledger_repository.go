package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-assistant/backend/internal/application/usecase/ledger"
	"github.com/finance-assistant/backend/internal/domain/entity"
	domainerror "github.com/finance-assistant/backend/internal/domain/error"
	"github.com/finance-assistant/backend/internal/integration/persistence/model"
)

// LedgerRepository implements the ledger read accessors plus the write
// paths that keep account balances consistent. Monetary aggregation is
// done in Go with decimal arithmetic so totals stay exact on every
// database backend.
type LedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{
		db: db,
	}
}

// GetActiveAccounts returns the user's active accounts.
func (r *LedgerRepository) GetActiveAccounts(ctx context.Context, userID uuid.UUID) ([]entity.Account, error) {
	var models []model.AccountModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	accounts := make([]entity.Account, 0, len(models))
	for i := range models {
		accounts = append(accounts, *models[i].ToEntity())
	}
	return accounts, nil
}

// GetCategoryExpenses returns summed expense amounts per category within
// the window.
func (r *LedgerRepository) GetCategoryExpenses(
	ctx context.Context,
	userID uuid.UUID,
	startDate, endDate time.Time,
) ([]entity.CategoryTotal, error) {
	rows, err := r.windowRows(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	totals := make(map[entity.TransactionCategory]decimal.Decimal)
	for i := range rows {
		if rows[i].Type != string(entity.TransactionTypeExpense) {
			continue
		}
		category := entity.TransactionCategory(rows[i].Category)
		totals[category] = totals[category].Add(rows[i].Amount)
	}

	out := make([]entity.CategoryTotal, 0, len(totals))
	for category, amount := range totals {
		out = append(out, entity.CategoryTotal{Category: category, Amount: amount})
	}
	return out, nil
}

// GetMonthlyTotals returns income and expense totals per calendar month
// within the window.
func (r *LedgerRepository) GetMonthlyTotals(
	ctx context.Context,
	userID uuid.UUID,
	startDate, endDate time.Time,
) ([]entity.MonthlyTotals, error) {
	rows, err := r.windowRows(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	type monthKey struct {
		year  int
		month time.Month
	}
	totals := make(map[monthKey]*entity.MonthlyTotals)
	for i := range rows {
		key := monthKey{year: rows[i].Date.Year(), month: rows[i].Date.Month()}
		mt, ok := totals[key]
		if !ok {
			mt = &entity.MonthlyTotals{Year: key.year, Month: key.month}
			totals[key] = mt
		}

		switch rows[i].Type {
		case string(entity.TransactionTypeIncome):
			mt.Income = mt.Income.Add(rows[i].Amount)
		case string(entity.TransactionTypeExpense):
			mt.Expenses = mt.Expenses.Add(rows[i].Amount)
		}
	}

	out := make([]entity.MonthlyTotals, 0, len(totals))
	for _, mt := range totals {
		out = append(out, *mt)
	}
	return out, nil
}

// GetPeriodTotals returns overall income and expense totals within the
// window.
func (r *LedgerRepository) GetPeriodTotals(
	ctx context.Context,
	userID uuid.UUID,
	startDate, endDate time.Time,
) (decimal.Decimal, decimal.Decimal, error) {
	rows, err := r.windowRows(ctx, userID, startDate, endDate)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	income := decimal.Zero
	expenses := decimal.Zero
	for i := range rows {
		switch rows[i].Type {
		case string(entity.TransactionTypeIncome):
			income = income.Add(rows[i].Amount)
		case string(entity.TransactionTypeExpense):
			expenses = expenses.Add(rows[i].Amount)
		}
	}
	return income, expenses, nil
}

// CountTransactions returns the number of the user's transactions inside
// the window.
func (r *LedgerRepository) CountTransactions(
	ctx context.Context,
	userID uuid.UUID,
	startDate, endDate time.Time,
) (int, error) {
	query := r.userTransactions(ctx, userID)
	if !startDate.IsZero() {
		query = query.Where("transactions.date >= ?", startDate)
	}
	if !endDate.IsZero() {
		query = query.Where("transactions.date <= ?", endDate)
	}

	var count int64
	if result := query.Count(&count); result.Error != nil {
		return 0, result.Error
	}
	return int(count), nil
}

// GetRecentTransactions returns the user's transactions, newest first.
func (r *LedgerRepository) GetRecentTransactions(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]entity.Transaction, error) {
	var models []model.TransactionModel
	result := r.userTransactions(ctx, userID).
		Order("transactions.date DESC, transactions.created_at DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactionEntities(models), nil
}

// SearchTransactionsByAmountRanges returns the user's transactions whose
// amount falls inside any of the bands, newest first.
func (r *LedgerRepository) SearchTransactionsByAmountRanges(
	ctx context.Context,
	userID uuid.UUID,
	ranges []ledger.AmountRange,
	limit int,
) ([]entity.Transaction, error) {
	if len(ranges) == 0 {
		return r.GetRecentTransactions(ctx, userID, limit)
	}

	bands := r.db.Where("transactions.amount BETWEEN ? AND ?", ranges[0].Min, ranges[0].Max)
	for _, band := range ranges[1:] {
		bands = bands.Or("transactions.amount BETWEEN ? AND ?", band.Min, band.Max)
	}

	var models []model.TransactionModel
	result := r.userTransactions(ctx, userID).
		Where(bands).
		Order("transactions.date DESC, transactions.created_at DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactionEntities(models), nil
}

// GetLabeledSamples returns every categorized transaction as a training
// sample for the categorization model.
func (r *LedgerRepository) GetLabeledSamples(ctx context.Context) ([]entity.LabeledSample, error) {
	var models []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("category <> ''").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	samples := make([]entity.LabeledSample, 0, len(models))
	for i := range models {
		samples = append(samples, entity.LabeledSample{
			Description:  models[i].Description,
			MerchantName: models[i].MerchantName,
			Amount:       models[i].Amount,
			Category:     entity.TransactionCategory(models[i].Category),
		})
	}
	return samples, nil
}

// CreateAccount persists a new account.
func (r *LedgerRepository) CreateAccount(ctx context.Context, account *entity.Account) error {
	accountModel := model.AccountFromEntity(account)
	if result := r.db.WithContext(ctx).Create(accountModel); result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateTransaction persists a new transaction and recalculates the
// owning account's balance.
func (r *LedgerRepository) CreateTransaction(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	if result := r.db.WithContext(ctx).Create(transactionModel); result.Error != nil {
		return result.Error
	}
	return r.RecalculateBalance(ctx, transaction.AccountID)
}

// RecalculateBalance recomputes an account's balance as the exact decimal
// sum of its income minus its expense transactions.
func (r *LedgerRepository) RecalculateBalance(ctx context.Context, accountID uuid.UUID) error {
	var accountModel model.AccountModel
	result := r.db.WithContext(ctx).Where("id = ?", accountID).First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return result.Error
	}

	var models []model.TransactionModel
	result = r.db.WithContext(ctx).Where("account_id = ?", accountID).Find(&models)
	if result.Error != nil {
		return result.Error
	}

	balance := decimal.Zero
	for i := range models {
		switch models[i].Type {
		case string(entity.TransactionTypeIncome):
			balance = balance.Add(models[i].Amount)
		case string(entity.TransactionTypeExpense):
			balance = balance.Sub(models[i].Amount)
		}
	}

	return r.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"current_balance": balance,
			"updated_at":      time.Now().UTC(),
		}).Error
}

// userTransactions scopes transaction queries to one user via the owning
// account.
func (r *LedgerRepository) userTransactions(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.user_id = ?", userID)
}

// windowRows fetches the user's transactions inside the window. Zero dates
// leave that side open.
func (r *LedgerRepository) windowRows(
	ctx context.Context,
	userID uuid.UUID,
	startDate, endDate time.Time,
) ([]model.TransactionModel, error) {
	query := r.userTransactions(ctx, userID)
	if !startDate.IsZero() {
		query = query.Where("transactions.date >= ?", startDate)
	}
	if !endDate.IsZero() {
		query = query.Where("transactions.date <= ?", endDate)
	}

	var models []model.TransactionModel
	if result := query.Find(&models); result.Error != nil {
		return nil, result.Error
	}
	return models, nil
}

func toTransactionEntities(models []model.TransactionModel) []entity.Transaction {
	out := make([]entity.Transaction, 0, len(models))
	for i := range models {
		out = append(out, *models[i].ToEntity())
	}
	return out
}
