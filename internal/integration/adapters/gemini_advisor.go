// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
)

// GeminiAdvisor implements the adapter.CategoryAdvisor using Google Gemini.
type GeminiAdvisor struct {
	apiKey    string
	modelName string
}

// NewGeminiAdvisor creates a new Gemini advisor instance.
func NewGeminiAdvisor(apiKey string) *GeminiAdvisor {
	return &GeminiAdvisor{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini advisor is properly configured.
func (s *GeminiAdvisor) IsAvailable() bool {
	return s.apiKey != ""
}

// Suggest picks the closest detail category for a transaction description.
func (s *GeminiAdvisor) Suggest(ctx context.Context, description string) (*adapter.CategorySuggestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini advisor is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)

	// Configure model for JSON output
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(s.buildPrompt(description)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	suggestion, err := s.parseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return suggestion, nil
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiAdvisor) buildPrompt(description string) string {
	var sb strings.Builder

	sb.WriteString(`You are an expert at categorizing personal finance transactions. Pick the single closest category for the transaction description below.

ALLOWED CATEGORIES (use ONLY these exact values):
`)
	for _, category := range entity.AllDetailedCategories() {
		sb.WriteString("- ")
		sb.WriteString(string(category))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf(`
TRANSACTION DESCRIPTION: %q

Respond with a single JSON object:
{
  "category": "one of the allowed values",
  "confidence": 0.0-1.0,
  "reason": "brief explanation"
}

If nothing fits, use "other" with low confidence.

RESPONSE FORMAT: Return only the JSON object, no additional text.
`, description))

	return sb.String()
}

// geminiSuggestion represents the raw response from Gemini.
type geminiSuggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// parseResponse parses the Gemini response into a CategorySuggestion.
func (s *GeminiAdvisor) parseResponse(resp *genai.GenerateContentResponse) (*adapter.CategorySuggestion, error) {
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

	var raw geminiSuggestion
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	category := entity.DetailedCategory(strings.ToLower(strings.TrimSpace(raw.Category)))
	if !category.IsValid() {
		category = entity.CategoryOther
	}

	confidence := raw.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &adapter.CategorySuggestion{
		Category:   category,
		Confidence: confidence,
		Reason:     raw.Reason,
	}, nil
}
