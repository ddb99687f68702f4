// Package nlp implements the lexical intent matcher and entity extraction
// pipeline for chat messages.
package nlp

// Intent names recognized by the matcher. IntentUnknown is the override used
// when no intent scores above the classification threshold.
const (
	IntentGreeting          = "greeting"
	IntentBalanceInquiry    = "balance_inquiry"
	IntentSpendingAnalysis  = "spending_analysis"
	IntentBudgetHelp        = "budget_help"
	IntentSavingsAdvice     = "savings_advice"
	IntentTransactionSearch = "transaction_search"
	IntentFinancialGoals    = "financial_goals"
	IntentInvestmentAdvice  = "investment_advice"
	IntentBillReminders     = "bill_reminders"
	IntentExportData        = "export_data"
	IntentHelp              = "help"
	IntentGoodbye           = "goodbye"
	IntentUnknown           = "unknown"
)

// IntentDefinition declares one recognizable intent: its match patterns and
// the response templates used by intents that answer without ledger data.
type IntentDefinition struct {
	Name      string
	Patterns  []string
	Responses []string
}

// DefaultIntentTable returns the built-in intent table. The slice order is
// part of the matcher contract: when two intents reach the same score, the
// one earlier in the table wins.
func DefaultIntentTable() []IntentDefinition {
	return []IntentDefinition{
		{
			Name: IntentGreeting,
			Patterns: []string{
				"hello", "hi", "hey", "good morning", "good afternoon",
				"good evening", "greetings", "what's up", "howdy",
			},
			Responses: []string{
				"Hello! I'm your personal finance assistant. How can I help you today?",
				"Hi there! I'm here to help you manage your finances. What would you like to know?",
				"Greetings! I can help you with budgets, transactions, and financial insights.",
			},
		},
		{
			Name: IntentBalanceInquiry,
			Patterns: []string{
				"what's my balance", "show balance", "account balance", "how much money",
				"current balance", "balance check", "money left", "account total",
			},
			Responses: []string{
				"Let me check your account balances for you.",
				"I'll retrieve your current account balances.",
			},
		},
		{
			Name: IntentSpendingAnalysis,
			Patterns: []string{
				"spending analysis", "where did I spend", "spending breakdown", "expense report",
				"spending summary", "money spent on", "spending patterns", "expense analysis",
			},
			Responses: []string{
				"I'll analyze your spending patterns for you.",
				"Let me break down your expenses by category.",
			},
		},
		{
			Name: IntentBudgetHelp,
			Patterns: []string{
				"budget help", "create budget", "budget advice", "budgeting tips",
				"how to budget", "budget planning", "budget management", "budget recommendation",
			},
			Responses: []string{
				"I'd be happy to help you with budgeting!",
				"Let me provide some budget recommendations based on your spending.",
			},
		},
		{
			Name: IntentSavingsAdvice,
			Patterns: []string{
				"saving money", "savings advice", "how to save", "savings tips",
				"save more money", "savings plan", "savings goal", "emergency fund",
			},
			Responses: []string{
				"I can help you create a savings plan!",
				"Let me analyze your spending to find savings opportunities.",
			},
		},
		{
			Name: IntentTransactionSearch,
			Patterns: []string{
				"find transaction", "search transactions", "look for payment", "transaction history",
				"find purchase", "search spending", "transaction details", "payment history",
			},
			Responses: []string{
				"I'll search your transaction history for you.",
				"Let me find the transactions you're looking for.",
			},
		},
		{
			Name: IntentFinancialGoals,
			Patterns: []string{
				"financial goals", "set goal", "savings goal", "financial planning",
				"goal tracking", "achieve goal", "financial targets", "money goals",
			},
			Responses: []string{
				"I can help you set and track your financial goals!",
				"Let's work on your financial goal planning.",
			},
		},
		{
			Name: IntentInvestmentAdvice,
			Patterns: []string{
				"investment advice", "should I invest", "investment tips", "portfolio",
				"stocks", "bonds", "investing money", "investment strategy",
			},
			Responses: []string{
				"I can provide general investment guidance based on your financial situation.",
				"Let me help you understand your investment options.",
			},
		},
		{
			Name: IntentBillReminders,
			Patterns: []string{
				"bill reminders", "upcoming bills", "bill due dates", "payment reminders",
				"bill schedule", "payment due", "bill notifications", "recurring payments",
			},
			Responses: []string{
				"I'll check your upcoming bill due dates.",
				"Let me show you your bill payment schedule.",
			},
		},
		{
			Name: IntentExportData,
			Patterns: []string{
				"export data", "download report", "export transactions", "generate report",
				"export to excel", "pdf report", "download statements", "export csv",
			},
			Responses: []string{
				"I can help you export your financial data.",
				"What type of report would you like to generate?",
			},
		},
		{
			Name: IntentHelp,
			Patterns: []string{
				"help", "what can you do", "commands", "features", "assistance",
				"how to use", "capabilities", "options", "support",
			},
			Responses: []string{
				"I can help you with:\n• Account balances\n• Spending analysis\n• Budget planning\n• Savings advice\n• Transaction search\n• Financial goals\n• Bill reminders\n• Export reports",
				"I'm your financial assistant! I can analyze spending, help with budgets, track goals, and much more.",
			},
		},
		{
			Name: IntentGoodbye,
			Patterns: []string{
				"goodbye", "bye", "see you later", "talk to you later", "farewell",
				"good night", "take care", "until next time", "see ya", "adios",
			},
			Responses: []string{
				"Goodbye! Feel free to ask me anything about your finances anytime.",
				"Take care! I'm here whenever you need financial assistance.",
				"See you later! Remember to check your budget regularly.",
			},
		},
	}
}
