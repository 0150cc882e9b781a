package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAITranslator asks an OpenAI chat model for the reference translation
type OpenAITranslator struct {
	apiKey     string
	model      string
	sourceLang string
	targetLang string
	client     *openai.Client
}

// NewOpenAITranslator creates a new OpenAI backed translator
func NewOpenAITranslator(apiKey, model, sourceLang, targetLang string) *OpenAITranslator {
	return NewOpenAITranslatorWithBaseURL(apiKey, "", model, sourceLang, targetLang)
}

// NewOpenAITranslatorWithBaseURL creates a translator talking to an
// OpenAI compatible endpoint. An empty baseURL keeps the default.
func NewOpenAITranslatorWithBaseURL(apiKey, baseURL, model, sourceLang, targetLang string) *OpenAITranslator {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAITranslator{
		apiKey:     apiKey,
		model:      model,
		sourceLang: sourceLang,
		targetLang: targetLang,
		client:     openai.NewClientWithConfig(config),
	}
}

// Translate translates a single word
func (t *OpenAITranslator) Translate(ctx context.Context, word string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not found")
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(word, t.sourceLang, t.targetLang),
			},
		},
		MaxTokens:   50,
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoResult
	}

	translation := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", ErrNoResult
	}
	return translation, nil
}
