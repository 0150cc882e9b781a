package cli

import "codeberg.org/snonux/vocabquiz/internal/quiz"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	BankSource string
	Limit      int
	OutputDir  string
	LogLevel   string
	LogFormat  string

	// Translation flags
	Provider   string
	SourceLang string
	TargetLang string

	// Modes
	Terminal    bool
	AnswersFile string
	Seed        uint64
	SeedSet     bool
	ListModels  bool
	Archive     bool

	// Exports
	PDF      bool
	CSV      bool
	Anki     bool
	DeckName string
	FontPath string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		BankSource: "word_bank.json",
		Limit:      quiz.MaxSessionWords,
		LogLevel:   "info",
		LogFormat:  "text",
		Provider:   "google",
		SourceLang: "en",
		TargetLang: "zh-TW",
		PDF:        true,
		DeckName:   "Vocabulary Quiz",
	}
}

// GUIMode reports whether no terminal mode was requested
func (f *Flags) GUIMode() bool {
	return !f.Terminal && f.AnswersFile == "" && !f.ListModels && !f.Archive
}
