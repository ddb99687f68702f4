package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/application/usecase/ledger"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// maxSearchActions caps the suggested view-transaction actions attached to
// a search reply.
const maxSearchActions = 3

// buildTemplateResponse answers intents whose reply is a canned template
// with no ledger data behind it.
func (uc *ProcessMessageUseCase) buildTemplateResponse(intent string) responseBuilder {
	return func(_ context.Context, _ uuid.UUID, _ entity.StructuredEntities) (builderResponse, error) {
		return builderResponse{Text: uc.matcher.ResponseTemplate(intent)}, nil
	}
}

// buildBalanceResponse lists the user's account balances with a derived
// total and a pie chart of per-account balances.
func (uc *ProcessMessageUseCase) buildBalanceResponse(
	ctx context.Context,
	userID uuid.UUID,
	_ entity.StructuredEntities,
) (builderResponse, error) {
	output, err := uc.balances.Execute(ctx, ledger.GetAccountBalancesInput{UserID: userID})
	if err != nil {
		return builderResponse{}, err
	}

	chart := &entity.ChartData{
		Type:  "pie",
		Title: "Account Balances",
		Data:  entity.ChartDataSets{Labels: []string{}, Values: []float64{}},
	}

	var b strings.Builder
	b.WriteString("Here are your current account balances:\n")

	if len(output.Accounts) == 0 {
		b.WriteString("You don't have any active accounts.")
		return builderResponse{Text: b.String(), Chart: chart}, nil
	}
	for _, account := range output.Accounts {
		fmt.Fprintf(&b, "• %s: %s\n", account.Name, formatMoney(account.CurrentBalance))

		value, _ := account.CurrentBalance.Float64()
		chart.Data.Labels = append(chart.Data.Labels, account.Name)
		chart.Data.Values = append(chart.Data.Values, value)
	}
	fmt.Fprintf(&b, "\nTotal Balance: %s", formatMoney(output.TotalBalance))

	return builderResponse{Text: b.String(), Chart: chart}, nil
}

// buildSpendingResponse summarizes the trailing window's expenses by
// category with a doughnut chart.
func (uc *ProcessMessageUseCase) buildSpendingResponse(
	ctx context.Context,
	userID uuid.UUID,
	_ entity.StructuredEntities,
) (builderResponse, error) {
	end := uc.now()
	start := end.AddDate(0, 0, -analysisWindowDays)

	output, err := uc.breakdown.Execute(ctx, ledger.GetCategoryBreakdownInput{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return builderResponse{}, err
	}

	if len(output.Categories) == 0 {
		return builderResponse{Text: "No expenses found for the specified period."}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Spending Analysis (Last %d Days):\n", analysisWindowDays)
	fmt.Fprintf(&b, "Total Spent: %s\n\n", formatMoney(output.TotalExpenses))
	b.WriteString("Top Categories:\n")

	for _, item := range output.TopCategories() {
		fmt.Fprintf(&b, "• %s: %s (%.1f%%)\n",
			categoryLabel(item.Category), formatMoney(item.Amount), item.Percentage)
	}

	// The chart carries every category; only the text is capped.
	chart := &entity.ChartData{
		Type:  "doughnut",
		Title: "Spending by Category",
	}
	for _, item := range output.Categories {
		value, _ := item.Amount.Float64()
		chart.Data.Labels = append(chart.Data.Labels, categoryLabel(item.Category))
		chart.Data.Values = append(chart.Data.Values, value)
	}

	return builderResponse{Text: b.String(), Chart: chart}, nil
}

// buildBudgetResponse derives budget recommendations from the trailing
// window's spending.
func (uc *ProcessMessageUseCase) buildBudgetResponse(
	ctx context.Context,
	userID uuid.UUID,
	_ entity.StructuredEntities,
) (builderResponse, error) {
	end := uc.now()
	start := end.AddDate(0, 0, -analysisWindowDays)

	output, err := uc.netFlow.Execute(ctx, ledger.GetNetFlowInput{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return builderResponse{}, err
	}

	if output.Expenses.IsZero() {
		return builderResponse{
			Text: "I need some transaction data to provide budget advice. Start by adding some expenses!",
		}, nil
	}

	emergencyGoal := output.Expenses.Mul(decimal.NewFromInt(3))
	monthlySavings := output.Expenses.Mul(decimal.RequireFromString("0.2"))

	var b strings.Builder
	b.WriteString("Budget Advice:\n\n")
	fmt.Fprintf(&b, "Your monthly spending: %s\n\n", formatMoney(output.Expenses))
	b.WriteString("Recommendations:\n")
	fmt.Fprintf(&b, "• Emergency fund goal: %s (3 months expenses)\n", formatMoney(emergencyGoal))
	fmt.Fprintf(&b, "• Suggested monthly savings: %s (20%% of expenses)\n", formatMoney(monthlySavings))
	b.WriteString("• Consider the 50/30/20 rule: 50% needs, 30% wants, 20% savings\n")
	b.WriteString("• Review your largest expense categories for potential savings")

	return builderResponse{Text: b.String()}, nil
}

// buildSavingsResponse sizes savings suggestions from the trailing window's
// net flow using the fixed allocation split.
func (uc *ProcessMessageUseCase) buildSavingsResponse(
	ctx context.Context,
	userID uuid.UUID,
	_ entity.StructuredEntities,
) (builderResponse, error) {
	end := uc.now()
	start := end.AddDate(0, 0, -analysisWindowDays)

	output, err := uc.netFlow.Execute(ctx, ledger.GetNetFlowInput{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return builderResponse{}, err
	}

	var b strings.Builder
	b.WriteString("Savings Analysis:\n\n")
	fmt.Fprintf(&b, "Monthly Income: %s\n", formatMoney(output.Income))
	fmt.Fprintf(&b, "Monthly Expenses: %s\n", formatMoney(output.Expenses))
	fmt.Fprintf(&b, "Net Income: %s\n\n", formatMoney(output.NetFlow))

	if output.Allocation != nil {
		fmt.Fprintf(&b, "Great! You have %s left over each month.\n\n", formatMoney(output.NetFlow))
		b.WriteString("Savings Suggestions:\n")
		fmt.Fprintf(&b, "• Emergency fund: Save %s/month\n", formatMoney(output.Allocation.Emergency))
		fmt.Fprintf(&b, "• Long-term goals: Save %s/month\n", formatMoney(output.Allocation.LongTerm))
		fmt.Fprintf(&b, "• Fun money: Keep %s/month flexible", formatMoney(output.Allocation.Discretionary))
	} else {
		b.WriteString("You're spending more than you earn. Consider:\n")
		b.WriteString("• Review your largest expenses\n")
		b.WriteString("• Look for subscription services to cancel\n")
		b.WriteString("• Find ways to increase your income")
	}

	return builderResponse{Text: b.String()}, nil
}

// buildSearchResponse finds recent transactions, filtered by the extracted
// amounts when present, and suggests view actions for the first matches.
func (uc *ProcessMessageUseCase) buildSearchResponse(
	ctx context.Context,
	userID uuid.UUID,
	entities entity.StructuredEntities,
) (builderResponse, error) {
	output, err := uc.search.Execute(ctx, ledger.SearchTransactionsInput{
		UserID:  userID,
		Amounts: entities.Amounts,
	})
	if err != nil {
		return builderResponse{}, err
	}

	if len(output.Transactions) == 0 {
		return builderResponse{Text: "No transactions found matching your criteria."}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d recent transactions:\n\n", len(output.Transactions))

	var actions []entity.Action
	for i, tx := range output.Transactions {
		fmt.Fprintf(&b, "• %s - %s: %s\n",
			tx.Date.Format("01/02"), tx.Description, formatMoney(tx.Amount))

		if i < maxSearchActions {
			actions = append(actions, entity.Action{
				Type:  "view_transaction",
				ID:    tx.ID.String(),
				Label: "View " + formatMoney(tx.Amount),
			})
		}
	}

	return builderResponse{Text: b.String(), Actions: actions}, nil
}

// buildGoalsResponse describes the goal kinds the assistant can track.
func (uc *ProcessMessageUseCase) buildGoalsResponse(
	_ context.Context,
	_ uuid.UUID,
	_ entity.StructuredEntities,
) (builderResponse, error) {
	return builderResponse{
		Text: "Financial Goals Help:\n\n" +
			"I can help you set and track goals like:\n" +
			"• Emergency fund (3-6 months expenses)\n" +
			"• Vacation savings\n" +
			"• Home down payment\n" +
			"• Debt payoff\n" +
			"• Retirement savings\n\n" +
			"Would you like to create a new goal or check progress on existing ones?",
	}, nil
}

// buildBillsResponse lists upcoming bill reminders.
// TODO: back this with recurring-transaction detection once transactions
// carry a recurrence flag.
func (uc *ProcessMessageUseCase) buildBillsResponse(
	_ context.Context,
	_ uuid.UUID,
	_ entity.StructuredEntities,
) (builderResponse, error) {
	return builderResponse{
		Text: "Upcoming Bills (Mock Data):\n\n" +
			"• Electric Bill - Due in 5 days - $89.45\n" +
			"• Credit Card - Due in 8 days - $234.67\n" +
			"• Internet Service - Due in 12 days - $79.99\n" +
			"• Phone Bill - Due in 15 days - $65.00\n\n" +
			"Would you like me to set up automatic reminders?",
	}, nil
}

// buildExportResponse describes the export formats and offers download
// actions.
func (uc *ProcessMessageUseCase) buildExportResponse(
	_ context.Context,
	_ uuid.UUID,
	_ entity.StructuredEntities,
) (builderResponse, error) {
	return builderResponse{
		Text: "Export Options:\n\n" +
			"I can generate reports in these formats:\n" +
			"• PDF - Detailed financial summary with charts\n" +
			"• Excel - Transaction data for analysis\n" +
			"• CSV - Raw transaction data\n\n" +
			"What type of report would you like?",
		Actions: []entity.Action{
			{Type: "export", Format: "pdf", Label: "Download PDF Report"},
			{Type: "export", Format: "excel", Label: "Download Excel Report"},
		},
	}, nil
}
