package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/domain/entity"
)

// GeminiTagger implements the NERTagger using Google Gemini.
type GeminiTagger struct {
	apiKey    string
	modelName string
}

// NewGeminiTagger creates a new Gemini tagger instance.
func NewGeminiTagger(apiKey string) adapter.NERTagger {
	return &GeminiTagger{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the tagger is configured with an API key.
func (s *GeminiTagger) IsAvailable() bool {
	return s.apiKey != ""
}

// Tag asks the model to mark date and time spans in the message.
func (s *GeminiTagger) Tag(ctx context.Context, message string) ([]entity.ExtractedEntity, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini tagger is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(s.buildPrompt(message)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	spans, err := s.parseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return spans, nil
}

// buildPrompt creates the span-tagging prompt for Gemini.
func (s *GeminiTagger) buildPrompt(message string) string {
	var sb strings.Builder

	sb.WriteString(`You are a named-entity tagger for a personal finance chat assistant. Find every DATE and TIME expression in the user's message.

RULES:
- Label each span DATE (calendar references such as "yesterday", "last month", "January 5th") or TIME (clock references such as "3pm", "noon").
- "start" and "end" are byte offsets of the span within the original message, end exclusive.
- Do not tag amounts, merchants, or categories.
- If nothing matches, return an empty array.

MESSAGE:
`)
	sb.WriteString(message)
	sb.WriteString(`

Respond with only a JSON array, each element shaped as:
{"text": "string", "label": "DATE" | "TIME", "start": 0, "end": 0}
`)

	return sb.String()
}

// geminiSpan represents one raw tagged span from Gemini.
type geminiSpan struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// parseResponse parses the Gemini response into tagged spans, skipping
// anything outside the known label set.
func (s *GeminiTagger) parseResponse(resp *genai.GenerateContentResponse) ([]entity.ExtractedEntity, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var spans []geminiSpan
	if err := json.Unmarshal([]byte(textContent), &spans); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	entities := make([]entity.ExtractedEntity, 0, len(spans))
	for _, span := range spans {
		label := entity.EntityLabel(span.Label)
		if label != entity.EntityLabelDate && label != entity.EntityLabelTime {
			continue
		}
		entities = append(entities, entity.ExtractedEntity{
			Text:  span.Text,
			Label: label,
			Start: span.Start,
			End:   span.End,
		})
	}

	return entities, nil
}
