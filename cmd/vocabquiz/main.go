package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/vocabquiz/internal/cli"
	"codeberg.org/snonux/vocabquiz/internal/processor"
)

func main() {
	flags := cli.NewFlags()

	rootCmd := cli.CreateRootCommand(flags)

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger, err := cli.NewLogger(viper.GetString("log.level"), viper.GetString("log.format"), os.Stderr)
	if err != nil {
		return err
	}

	settings := cli.LoadSettings(logger)
	proc, err := processor.NewProcessor(ctx, flags, settings, logger)
	if err != nil {
		return err
	}

	switch {
	case flags.Archive:
		return proc.Archive()
	case flags.ListModels:
		return proc.ListModels(ctx)
	case flags.AnswersFile != "":
		return proc.RunBatch(ctx)
	case flags.Terminal:
		return proc.RunTerminal(ctx)
	default:
		fmt.Fprintln(os.Stderr, "Launching GUI, word bank:", settings.BankSource)
		return proc.RunGUIMode()
	}
}
