package chat

import "context"

// GetSuggestionsOutput represents the output of getting chat suggestions.
type GetSuggestionsOutput struct {
	Suggestions []string `json:"suggestions"`
}

// GetSuggestionsUseCase handles getting starter prompts for the chat UI.
type GetSuggestionsUseCase struct{}

// NewGetSuggestionsUseCase creates a new GetSuggestionsUseCase instance.
func NewGetSuggestionsUseCase() *GetSuggestionsUseCase {
	return &GetSuggestionsUseCase{}
}

// Execute returns the suggested prompts.
func (uc *GetSuggestionsUseCase) Execute(_ context.Context) (*GetSuggestionsOutput, error) {
	return &GetSuggestionsOutput{
		Suggestions: []string{
			"What's my spending this month?",
			"Show me my account balances",
			"Help me create a budget",
			"What are my upcoming bills?",
			"How can I save more money?",
		},
	}, nil
}
