package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generatePath = "/v1/models/gemini-1.5-flash:generateContent"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type wireRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	SafetySettings []struct {
		Category  string `json:"category"`
		Threshold string `json:"threshold"`
	} `json:"safetySettings"`
}

func newTestClient(t *testing.T, srv *httptest.Server, cfg Config) *GeminiClient {
	t.Helper()
	cfg.Endpoint = srv.URL + "/"
	cfg.HTTPClient = srv.Client()
	client, err := NewGeminiClient(cfg, quietLogger())
	require.NoError(t, err)
	return client
}

func TestGeminiClient_Generate_Success(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, generatePath, r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req wireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		require.Len(t, req.SafetySettings, 4)
		categories := make([]string, 0, 4)
		for _, s := range req.SafetySettings {
			categories = append(categories, s.Category)
			assert.Equal(t, "BLOCK_NONE", s.Threshold)
		}
		assert.ElementsMatch(t, harmCategories, categories)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Sure! {\"name\":\"Flu\"}"}]},"finishReason":"STOP"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, Config{APIKey: "test-key"})

	text, err := client.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `Sure! {"name":"Flu"}`, text)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGeminiClient_Generate_MissingCredential(t *testing.T) {
	for _, key := range []string{"", "   ", "\t\n"} {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusOK)
		}))

		client := newTestClient(t, server, Config{APIKey: key})
		_, err := client.Generate(context.Background(), "hello")

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfiguration))
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "no request may be sent without a key")
		server.Close()
	}
}

func TestGeminiClient_Generate_ErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    ErrorKind
		wantMessage string
	}{
		{
			name:        "rate limited",
			status:      http.StatusTooManyRequests,
			body:        `{"error":{"code":429,"message":"Resource has been exhausted"}}`,
			wantKind:    KindRateLimit,
			wantMessage: MsgRateLimited,
		},
		{
			name:        "upstream message is surfaced",
			status:      http.StatusBadRequest,
			body:        `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key."}}`,
			wantKind:    KindUpstream,
			wantMessage: "API key not valid. Please pass a valid API key.",
		},
		{
			name:        "upstream without message",
			status:      http.StatusServiceUnavailable,
			body:        `upstream unavailable`,
			wantKind:    KindUpstream,
			wantMessage: "Google API Error: 503",
		},
		{
			name:        "unreadable body",
			status:      http.StatusOK,
			body:        `<html>proxy error</html>`,
			wantKind:    KindUpstream,
			wantMessage: MsgUnreadableBody,
		},
		{
			name:        "safety finish reason",
			status:      http.StatusOK,
			body:        `{"candidates":[{"finishReason":"SAFETY"}]}`,
			wantKind:    KindContentFiltered,
			wantMessage: MsgContentFiltered,
		},
		{
			name:        "prompt blocked",
			status:      http.StatusOK,
			body:        `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			wantKind:    KindContentFiltered,
			wantMessage: MsgContentFiltered,
		},
		{
			name:        "no candidates",
			status:      http.StatusOK,
			body:        `{}`,
			wantKind:    KindEmptyResponse,
			wantMessage: MsgEmptyResponse,
		},
		{
			name:        "no parts",
			status:      http.StatusOK,
			body:        `{"candidates":[{"content":{"parts":[]},"finishReason":"STOP"}]}`,
			wantKind:    KindEmptyResponse,
			wantMessage: MsgEmptyResponse,
		},
		{
			name:        "empty text",
			status:      http.StatusOK,
			body:        `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`,
			wantKind:    KindEmptyResponse,
			wantMessage: MsgEmptyResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server, Config{APIKey: "test-key"})
			_, err := client.Generate(context.Background(), "hello")

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))
			msg, ok := UserMessage(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantMessage, msg)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "exactly one attempt")
		})
	}
}

func TestGeminiClient_Generate_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	client := newTestClient(t, server, Config{APIKey: "test-key"})
	server.Close()

	_, err := client.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestGeminiClient_Generate_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(t, server, Config{APIKey: "test-key"})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestGeminiClient_CustomModelAndSafety(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models/gemini-pro:generateContent", r.URL.Path)

		var req wireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		for _, s := range req.SafetySettings {
			assert.Equal(t, "BLOCK_ONLY_HIGH", s.Threshold)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, Config{
		APIKey:         "test-key",
		Model:          "gemini-pro",
		SafetySettings: SafetySettingsWithThreshold("BLOCK_ONLY_HIGH"),
	})
	assert.Equal(t, "gemini-pro", client.Model())

	text, err := client.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

func TestGeminiClient_APIKeyNeverLogged(t *testing.T) {
	const secret = "AIza-secret-test-key"

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"success", http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`},
		{"upstream error", http.StatusForbidden, `{"error":{"code":403,"message":"forbidden"}}`},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"code":429,"message":"slow down"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, secret, r.URL.Query().Get("key"))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

			client, err := NewGeminiClient(Config{
				APIKey:     secret,
				Endpoint:   server.URL,
				HTTPClient: server.Client(),
			}, logger)
			require.NoError(t, err)

			_, _ = client.Generate(context.Background(), "hello")

			assert.NotEmpty(t, logs.String())
			assert.NotContains(t, logs.String(), secret)
		})
	}

	t.Run("network failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
		server.Close()

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

		client, err := NewGeminiClient(Config{APIKey: secret, Endpoint: server.URL}, logger)
		require.NoError(t, err)

		_, err = client.Generate(context.Background(), "hello")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNetwork))
		assert.NotContains(t, err.Error(), secret)
		assert.NotContains(t, logs.String(), secret)
	})
}

func TestNewClient_Provider(t *testing.T) {
	client, err := NewClient(Config{Provider: "gemini", APIKey: "k"}, quietLogger())
	require.NoError(t, err)
	assert.NotNil(t, client)

	_, err = NewClient(Config{Provider: "openai"}, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}
