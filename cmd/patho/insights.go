package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pathogenius/internal/checker"
	"github.com/Veraticus/pathogenius/internal/cli"
	"github.com/Veraticus/pathogenius/internal/common"
	"github.com/Veraticus/pathogenius/internal/model"
)

func insightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights SYMPTOM...",
		Short: "Get lifestyle and recovery tips for a set of symptoms",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := createChecker(slog.Default())
			if err != nil {
				return err
			}

			text, err := svc.Insights(cmd.Context(), model.Dedupe(args))
			if err != nil {
				return common.NewUserError(checker.MsgInsightFailed, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderInsight(text))
			return nil
		},
	}
}
