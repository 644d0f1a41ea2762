package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/pathogenius/internal/cli"
	"github.com/Veraticus/pathogenius/internal/model"
)

func findCommand(t *testing.T, name string) *cobra.Command {
	t.Helper()
	for _, c := range newRootCmd().Commands() {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("command %q not registered", name)
	return nil
}

// fakeGemini serves a fixed model reply and counts calls.
func fakeGemini(t *testing.T, reply string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		payload := map[string]any{
			"candidates": []map[string]any{{
				"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": reply}}},
				"finishReason": "STOP",
			}},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))

	err := root.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"symptoms", "diagnose", "insights", "check", "serve", "version"} {
		assert.Contains(t, names, want)
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.Equal(t, "info", root.PersistentFlags().Lookup("log-level").DefValue)
	assert.Equal(t, "console", root.PersistentFlags().Lookup("log-format").DefValue)
}

func TestDiagnoseCommand_Flags(t *testing.T) {
	cmd := findCommand(t, "diagnose")

	tests := []struct {
		name       string
		defaultVal string
	}{
		{"insights", "false"},
		{"output", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flag(tt.name)
			require.NotNil(t, flag, "flag %s should exist", tt.name)
			assert.Equal(t, tt.defaultVal, flag.DefValue)
		})
	}

	assert.Equal(t, "o", cmd.Flag("output").Shorthand)
}

func TestServeAndCheckCommand_Flags(t *testing.T) {
	serve := findCommand(t, "serve")
	require.NotNil(t, serve.Flag("addr"))
	assert.Equal(t, ":8080", serve.Flag("addr").DefValue)

	check := findCommand(t, "check")
	require.NotNil(t, check.Flag("theme"))
	assert.Equal(t, "default", check.Flag("theme").DefValue)
	require.NotNil(t, check.Flag("log-file"))
}

func TestDiagnoseCommand_RequiresSymptoms(t *testing.T) {
	_, err := execute(t, "diagnose")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "patho dev\n", out)
}

func TestSymptomsCommand_Filter(t *testing.T) {
	out, err := execute(t, "symptoms", "--filter", "pain")
	require.NoError(t, err)

	assert.Contains(t, out, "Muscle pain")
	assert.Contains(t, out, "Chest pain")
	assert.NotContains(t, out, "Fever")
}

func TestDiagnoseCommand_JSONOutput(t *testing.T) {
	srv, calls := fakeGemini(t, "Sure! ```json\n"+
		`{"name":"Common Cold","description":"A viral infection.","urgency":"low","score":82}`+
		"\n```")
	t.Setenv("PATHO_GEMINI_API_KEY", "test-key")
	t.Setenv("PATHO_GEMINI_ENDPOINT", srv.URL+"/")

	out, err := execute(t, "diagnose", "Cough", "Congestion", "Cough", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	var report diagnosisReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, []string{"Cough", "Congestion"}, report.Symptoms)
	assert.Equal(t, "Common Cold", report.Prediction.Name)
	assert.Equal(t, model.UrgencyLow, report.Prediction.Urgency)
	assert.InDelta(t, 82.0, report.Prediction.Score, 0.001)
	assert.Equal(t, cli.Disclaimer, report.Disclaimer)
	assert.Empty(t, report.Insight)
}

func TestDiagnoseCommand_MissingKey(t *testing.T) {
	srv, calls := fakeGemini(t, "{}")
	t.Setenv("PATHO_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PATHO_GEMINI_ENDPOINT", srv.URL+"/")

	_, err := execute(t, "diagnose", "Fever")
	require.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestDiagnoseCommand_UnknownFormat(t *testing.T) {
	_, err := execute(t, "diagnose", "Fever", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestWriteReport(t *testing.T) {
	report := diagnosisReport{
		Symptoms: []string{"Fever", "Chills"},
		Prediction: model.Prediction{
			Name:        "Influenza",
			Description: "Seasonal flu.",
			Urgency:     model.UrgencyMedium,
			Score:       75,
		},
		Insight:    "Rest and drink fluids.",
		Disclaimer: cli.Disclaimer,
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeReport(&buf, "text", report))
		out := buf.String()
		assert.Contains(t, out, "Influenza")
		assert.Contains(t, out, "75% Match")
		assert.Contains(t, out, "Rest and drink fluids.")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeReport(&buf, "yaml", report))

		var decoded diagnosisReport
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, report, decoded)
	})

	t.Run("insight error", func(t *testing.T) {
		failed := report
		failed.Insight = ""
		failed.InsightError = "Could not load insights."

		var buf bytes.Buffer
		require.NoError(t, writeReport(&buf, "text", failed))
		assert.Contains(t, buf.String(), "Could not load insights.")
	})
}
