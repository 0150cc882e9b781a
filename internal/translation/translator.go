package translation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNoResult is returned when the collaborator answered but the answer
// held no usable translation.
var ErrNoResult = errors.New("no translation in response")

// Translator looks up the reference translation of a single word
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Func adapts a plain function to the Translator interface
type Func func(ctx context.Context, text string) (string, error)

// Translate calls f
func (f Func) Translate(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Provider names accepted by New
const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config selects and configures the translation provider
type Config struct {
	Provider   string
	SourceLang string
	TargetLang string

	// Google settings
	Endpoint   string
	HTTPClient *http.Client

	// OpenAI settings
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	// Gemini settings
	GeminiKey   string
	GeminiModel string

	// Resilience. BreakerFailures of zero leaves the breaker out so every
	// word gets its own request.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
	EnableCache     bool

	Logger logrus.FieldLogger
}

// DefaultConfig returns the default configuration: English words looked up
// in Traditional Chinese through Google, no circuit breaker.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderGoogle,
		SourceLang:     "en",
		TargetLang:     "zh-TW",
		Endpoint:       DefaultGoogleEndpoint,
		OpenAIModel:    "gpt-4o-mini",
		GeminiModel:    "gemini-2.0-flash",
		BreakerTimeout: 30 * time.Second,
	}
}

// New builds the configured provider, wrapped in a circuit breaker when
// BreakerFailures is set and in a cache when enabled.
func New(ctx context.Context, cfg *Config) (Translator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	defaults := DefaultConfig()
	if cfg.SourceLang == "" {
		cfg.SourceLang = defaults.SourceLang
	}
	if cfg.TargetLang == "" {
		cfg.TargetLang = defaults.TargetLang
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	var base Translator
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGoogle:
		base = NewGoogleTranslator(cfg.Endpoint, cfg.SourceLang, cfg.TargetLang, cfg.HTTPClient)
	case ProviderOpenAI:
		model := cfg.OpenAIModel
		if model == "" {
			model = defaults.OpenAIModel
		}
		base = NewOpenAITranslatorWithBaseURL(cfg.OpenAIKey, cfg.OpenAIBaseURL, model, cfg.SourceLang, cfg.TargetLang)
	case ProviderGemini:
		model := cfg.GeminiModel
		if model == "" {
			model = defaults.GeminiModel
		}
		g, err := NewGeminiTranslator(ctx, cfg.GeminiKey, model, cfg.SourceLang, cfg.TargetLang)
		if err != nil {
			return nil, err
		}
		base = g
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", cfg.Provider)
	}

	t := base
	if cfg.BreakerFailures > 0 {
		t = NewBreaker(base, BreakerSettings{
			Name:                strings.ToLower(cfg.Provider),
			ConsecutiveFailures: cfg.BreakerFailures,
			Timeout:             cfg.BreakerTimeout,
			Logger:              cfg.Logger,
		})
	}
	if cfg.EnableCache {
		t = NewCachedTranslator(t)
	}
	return t, nil
}

// languageName returns a human readable name for the prompt based providers
func languageName(code string) string {
	switch strings.ToLower(code) {
	case "en":
		return "English"
	case "zh-tw", "zh-hant":
		return "Traditional Chinese"
	case "zh-cn", "zh", "zh-hans":
		return "Simplified Chinese"
	case "ja":
		return "Japanese"
	case "ko":
		return "Korean"
	case "bg":
		return "Bulgarian"
	case "de":
		return "German"
	case "fr":
		return "French"
	case "es":
		return "Spanish"
	default:
		return code
	}
}

func buildPrompt(word, sourceLang, targetLang string) string {
	return fmt.Sprintf("Translate the %s word '%s' to %s. Respond with only the translation, nothing else.",
		languageName(sourceLang), word, languageName(targetLang))
}
