package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/pathogenius/internal/config"
	"github.com/Veraticus/pathogenius/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the checker as a JSON HTTP API",
		Long: `Start an HTTP server exposing:

  GET  /healthz
  GET  /api/symptoms?q=
  POST /api/diagnose   {"symptoms": [...]}
  POST /api/insights   {"symptoms": [...]}

The Gemini API key stays on the server.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.Default()

			svc, err := createChecker(logger)
			if err != nil {
				return err
			}

			return server.New(svc, logger).ListenAndServe(cmd.Context(), viper.GetString(config.KeyServerAddr))
		},
	}

	cmd.Flags().String("addr", config.DefaultServerAddr, "Listen address")
	_ = viper.BindPFlag(config.KeyServerAddr, cmd.Flags().Lookup("addr"))

	return cmd
}
