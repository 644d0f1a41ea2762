package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/pathogenius/internal/checker"
	"github.com/Veraticus/pathogenius/internal/cli"
	"github.com/Veraticus/pathogenius/internal/common"
	"github.com/Veraticus/pathogenius/internal/model"
)

func diagnoseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnose SYMPTOM...",
		Short: "Get the most likely condition for a set of symptoms",
		Long: `Send the given symptoms to the model and print the most likely condition,
a confidence score and an urgency level.

Symptoms are free text; run 'patho symptoms' to see the suggested labels.

Examples:
  patho diagnose Fever Cough
  patho diagnose "Sore throat" Chills --insights
  patho diagnose Rash -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDiagnose,
	}

	// Flags
	cmd.Flags().Bool("insights", false, "Also fetch recovery tips")
	cmd.Flags().StringP("output", "o", "text", "Output format (text, json, yaml)")

	_ = viper.BindPFlag("diagnose.insights", cmd.Flags().Lookup("insights"))
	_ = viper.BindPFlag("diagnose.output", cmd.Flags().Lookup("output"))

	return cmd
}

// diagnosisReport is the serialized form of a diagnose run.
type diagnosisReport struct {
	Insight      string           `json:"insight,omitempty" yaml:"insight,omitempty"`
	InsightError string           `json:"insight_error,omitempty" yaml:"insight_error,omitempty"`
	Disclaimer   string           `json:"disclaimer" yaml:"disclaimer"`
	Symptoms     []string         `json:"symptoms" yaml:"symptoms"`
	Prediction   model.Prediction `json:"prediction" yaml:"prediction"`
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	format := strings.ToLower(viper.GetString("diagnose.output"))
	withInsights := viper.GetBool("diagnose.insights")

	if !validFormat(format) {
		return fmt.Errorf("%w: unknown output format %q", common.ErrInvalidConfig, format)
	}

	logger := slog.Default()
	svc, err := createChecker(logger)
	if err != nil {
		return err
	}

	symptoms := model.Dedupe(args)
	prediction, err := svc.Diagnose(ctx, symptoms)
	if err != nil {
		return common.NewUserError(checker.Message(err), err)
	}

	report := diagnosisReport{
		Symptoms:   symptoms,
		Prediction: prediction,
		Disclaimer: cli.Disclaimer,
	}

	if withInsights {
		insight, insightErr := svc.Insights(ctx, symptoms)
		if insightErr != nil {
			logger.Debug("insight request failed", "error", insightErr)
			report.InsightError = checker.MsgInsightFailed
		} else {
			report.Insight = insight
		}
	}

	return writeReport(cmd.OutOrStdout(), format, report)
}

func validFormat(format string) bool {
	switch format {
	case "text", "json", "yaml":
		return true
	}
	return false
}

// writeReport renders report in the given format.
func writeReport(w io.Writer, format string, report diagnosisReport) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()

	default:
		fmt.Fprintln(w, cli.RenderPrediction(report.Symptoms, report.Prediction))
		switch {
		case report.Insight != "":
			fmt.Fprintln(w, cli.RenderInsight(report.Insight))
		case report.InsightError != "":
			fmt.Fprintln(w, cli.FormatError(report.InsightError))
		}
		return nil
	}
}
