package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

const defaultTemperature = 0.2

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for text generation.
var (
	// ErrNoAPIKey indicates no API key was configured for the generator.
	ErrNoAPIKey = constError("GEMINI_API_KEY not set")

	// ErrEmptyResponse indicates the model returned no text.
	ErrEmptyResponse = constError("model returned an empty response")
)

// Generator produces free text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}

// GeminiGenerator calls the Gemini API through the GenAI SDK.
type GeminiGenerator struct {
	APIKey      string
	Model       string
	Temperature float32
}

var _ Generator = (*GeminiGenerator)(nil)

// NewGemini returns a generator for model, or DefaultModel when empty.
func NewGemini(apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiGenerator{APIKey: apiKey, Model: model, Temperature: defaultTemperature}, nil
}

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt, system string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("creating GenAI client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.Temperature),
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	result, err := client.Models.GenerateContent(ctx, g.Model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Clean strips an outer Markdown code fence from generated text.
func Clean(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") || !strings.HasSuffix(cleaned, "```") || len(cleaned) < 6 {
		return cleaned
	}
	cleaned = strings.TrimSuffix(strings.TrimPrefix(cleaned, "```"), "```")
	cleaned = strings.TrimPrefix(cleaned, "markdown")
	return strings.TrimSpace(cleaned)
}

func jsonIndent(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
