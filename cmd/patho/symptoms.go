package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pathogenius/internal/cli"
	"github.com/Veraticus/pathogenius/internal/model"
)

func symptomsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symptoms",
		Short: "List suggested symptom labels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := cmd.Flags().GetString("filter")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderSymptoms(model.FilterCatalog(filter, nil)))
			return nil
		},
	}

	cmd.Flags().StringP("filter", "f", "", "Only show labels containing this text")

	return cmd
}
