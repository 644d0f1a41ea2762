package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/pathogenius/internal/common"
	"github.com/Veraticus/pathogenius/internal/config"
	"github.com/Veraticus/pathogenius/internal/model"
	"github.com/Veraticus/pathogenius/internal/tui"
	"github.com/Veraticus/pathogenius/internal/tui/themes"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [SYMPTOM...]",
		Short: "Interactive symptom checker",
		Long: `Open the interactive checker. Type to search symptoms, Enter to add,
Ctrl+R to analyze and Ctrl+T for recovery tips.

Log output would corrupt the screen, so it is discarded unless --log-file
is given.`,
		RunE: runCheck,
	}

	cmd.Flags().String("theme", "default", "Color theme (default, catppuccin-mocha)")
	cmd.Flags().String("log-file", "", "Write logs to this file while the checker runs")

	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("ui.log_file", cmd.Flags().Lookup("log-file"))

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := checkLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	svc, err := createChecker(logger)
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(),
		tui.WithChecker(svc),
		tui.WithLogger(logger),
		tui.WithTheme(themes.GetTheme(viper.GetString("ui.theme"))),
		tui.WithInitialSymptoms(model.Dedupe(args)),
	)
}

// checkLogger returns a logger that never writes to the terminal.
func checkLogger() (*slog.Logger, func(), error) {
	path := viper.GetString("ui.log_file")
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	level, err := common.ParseLevel(viper.GetString(config.KeyLoggingLevel))
	if err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(config.ExpandPath(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := common.NewLogger(f, level, viper.GetString(config.KeyLoggingFormat))
	return logger, func() { _ = f.Close() }, nil
}
