// Package translate turns English vocabulary into Chinese glosses, batching
// requests against a chat model and memoizing results on disk.
package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Translator translates a block of English text to Simplified Chinese.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
	Name() string
}

// NewTranslator creates the backend selected by name.
func NewTranslator(backend, apiKey string) (Translator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required for %s translator", backend)
	}

	switch backend {
	case "openai":
		return &OpenAITranslator{client: openai.NewClient(apiKey)}, nil
	case "gemini":
		return &GeminiTranslator{apiKey: apiKey}, nil
	default:
		return nil, fmt.Errorf("unknown translator backend: %s", backend)
	}
}

// OpenAITranslator translates via the OpenAI chat completion API.
type OpenAITranslator struct {
	client *openai.Client
}

// Translate sends text to the chat model and returns the raw response.
func (t *OpenAITranslator) Translate(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: translationPrompt(text),
			},
		},
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Name returns the backend name.
func (t *OpenAITranslator) Name() string {
	return "openai"
}

// GeminiTranslator translates via the Gemini API. The client is created per
// call; the underlying transport reuses connections.
type GeminiTranslator struct {
	apiKey string
}

// Translate sends text to Gemini and returns the raw response.
func (t *GeminiTranslator) Translate(ctx context.Context, text string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  t.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, "gemini-2.0-flash",
		genai.Text(translationPrompt(text)), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	result := strings.TrimSpace(resp.Text())
	if result == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return result, nil
}

// Name returns the backend name.
func (t *GeminiTranslator) Name() string {
	return "gemini"
}

func translationPrompt(text string) string {
	return fmt.Sprintf("Translate the following English words to Simplified Chinese. "+
		"Respond with only the translations, one per line, in the same order, nothing else.\n\n%s", text)
}
