package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/vocabquiz/internal"
)

// DefaultOutputDir returns the directory exports land in by default
func DefaultOutputDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "vocabquiz", "results")
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vocabquiz",
		Short: "Vocabulary quiz with reference translations",
		Long: `vocabquiz draws up to 25 random words from a word bank, collects your
translations and grades each one against a reference translation
looked up online. Results can be downloaded as a PDF.

Examples:
  vocabquiz                                 # Launch the interactive GUI (default)
  vocabquiz --terminal                      # Answer in the terminal
  vocabquiz --answers answers.txt --seed 7  # Grade a prepared answers file
  vocabquiz --bank https://host/bank.json   # Load the word bank over HTTP`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
		PreRun: func(cmd *cobra.Command, args []string) {
			flags.SeedSet = cmd.Flags().Changed("seed")
		},
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.vocabquiz.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")

	// Local flags
	cmd.Flags().StringVarP(&flags.BankSource, "bank", "b", flags.BankSource, "Word bank file path or http(s) URL")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", flags.Limit, "Number of words per quiz (1 to 25)")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", DefaultOutputDir(), "Output directory for exported results")
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: google, openai or gemini")
	cmd.Flags().StringVar(&flags.SourceLang, "from", flags.SourceLang, "Language of the word bank")
	cmd.Flags().StringVar(&flags.TargetLang, "to", flags.TargetLang, "Language answers are given in")

	cmd.Flags().BoolVarP(&flags.Terminal, "terminal", "t", false, "Answer the quiz in the terminal instead of the GUI")
	cmd.Flags().StringVar(&flags.AnswersFile, "answers", "", "Grade answers from file (one per line, in session order)")
	cmd.Flags().Uint64Var(&flags.Seed, "seed", 0, "Seed for a reproducible word selection")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List OpenAI chat models usable for translation")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move the output directory into a timestamped archive")

	cmd.Flags().BoolVar(&flags.PDF, "pdf", flags.PDF, "Write the results PDF after grading")
	cmd.Flags().BoolVar(&flags.CSV, "csv", false, "Also write the results as CSV")
	cmd.Flags().BoolVar(&flags.Anki, "anki", false, "Also write an Anki package (APKG) of the graded words")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for the Anki package")
	cmd.Flags().StringVar(&flags.FontPath, "font", "", "TrueType font for the PDF (needed for CJK answers)")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("bank.source", cmd.Flags().Lookup("bank"))
	viper.BindPFlag("quiz.limit", cmd.Flags().Lookup("limit"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("translation.source_lang", cmd.Flags().Lookup("from"))
	viper.BindPFlag("translation.target_lang", cmd.Flags().Lookup("to"))
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output"))
	viper.BindPFlag("export.font_path", cmd.Flags().Lookup("font"))
	viper.BindPFlag("export.deck_name", cmd.Flags().Lookup("deck-name"))
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.PersistentFlags().Lookup("log-format"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".vocabquiz" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vocabquiz")
	}

	viper.SetEnvPrefix("VOCABQUIZ")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("translation.gemini_key")
}
