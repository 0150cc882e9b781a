package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"codeberg.org/snonux/vocabquiz/internal/quiz"
	"codeberg.org/snonux/vocabquiz/internal/translation"
)

// Settings is the resolved configuration: flags first, then config file,
// then defaults.
type Settings struct {
	BankSource  string
	Limit       int
	OutputDir   string
	FontPath    string
	DeckName    string
	Translation *translation.Config
}

// LoadSettings resolves the settings from viper. Flag defaults bound in
// setupFlags act as the fallback.
func LoadSettings(logger logrus.FieldLogger) Settings {
	cfg := translation.DefaultConfig()
	setString(&cfg.Provider, "translation.provider")
	setString(&cfg.SourceLang, "translation.source_lang")
	setString(&cfg.TargetLang, "translation.target_lang")
	setString(&cfg.Endpoint, "translation.endpoint")
	setString(&cfg.OpenAIModel, "translation.openai_model")
	setString(&cfg.OpenAIBaseURL, "translation.openai_base_url")
	setString(&cfg.GeminiModel, "translation.gemini_model")
	if viper.IsSet("translation.breaker_failures") {
		cfg.BreakerFailures = viper.GetUint32("translation.breaker_failures")
	}
	if viper.IsSet("translation.breaker_timeout") {
		cfg.BreakerTimeout = viper.GetDuration("translation.breaker_timeout")
	}
	cfg.EnableCache = viper.GetBool("translation.cache")
	cfg.OpenAIKey = GetOpenAIKey()
	cfg.GeminiKey = GetGeminiKey()
	cfg.Logger = logger

	limit := quiz.MaxSessionWords
	if viper.IsSet("quiz.limit") {
		limit = viper.GetInt("quiz.limit")
	}

	s := Settings{
		BankSource:  viper.GetString("bank.source"),
		Limit:       quiz.ClampLimit(limit),
		OutputDir:   viper.GetString("output.directory"),
		FontPath:    viper.GetString("export.font_path"),
		DeckName:    viper.GetString("export.deck_name"),
		Translation: cfg,
	}
	if s.BankSource == "" {
		s.BankSource = "word_bank.json"
	}
	if s.OutputDir == "" {
		s.OutputDir = DefaultOutputDir()
	}
	return s
}

func setString(dst *string, key string) {
	if v := viper.GetString(key); v != "" {
		*dst = v
	}
}

// NewTranslator builds the translation stack described by s
func (s Settings) NewTranslator(ctx context.Context) (translation.Translator, error) {
	return translation.New(ctx, s.Translation)
}
