package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiTranslator asks a Gemini model for the reference translation
type GeminiTranslator struct {
	client     *genai.Client
	model      string
	sourceLang string
	targetLang string
}

// NewGeminiTranslator creates a new Gemini backed translator
func NewGeminiTranslator(ctx context.Context, apiKey, model, sourceLang, targetLang string) (*GeminiTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiTranslator{
		client:     client,
		model:      model,
		sourceLang: sourceLang,
		targetLang: targetLang,
	}, nil
}

// Translate translates a single word
func (t *GeminiTranslator) Translate(ctx context.Context, word string) (string, error) {
	temp := float32(0.3)
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: 50,
		Temperature:     &temp,
	}

	result, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(buildPrompt(word, t.sourceLang, t.targetLang)), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	translation := strings.TrimSpace(result.Text())
	if translation == "" {
		return "", ErrNoResult
	}
	return translation, nil
}
