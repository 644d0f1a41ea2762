package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/api/googleapi"
	gtransport "google.golang.org/api/googleapi/transport"
)

const finishReasonSafety = "SAFETY"

// GeminiClient implements Client for the Gemini generateContent API.
type GeminiClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	apiKey     string
	model      string
	endpoint   string
	safety     []SafetySetting
}

// NewGeminiClient creates a Gemini client. A blank API key is accepted here
// and reported by every Generate call, before any network traffic.
func NewGeminiClient(cfg Config, logger *slog.Logger) (*GeminiClient, error) {
	if logger == nil {
		logger = slog.Default()
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid Gemini endpoint %q: %w", endpoint, err)
	}

	safety := cfg.SafetySettings
	if safety == nil {
		safety = PermissiveSafetySettings()
	}

	apiKey := strings.TrimSpace(cfg.APIKey)

	return &GeminiClient{
		httpClient: keyedHTTPClient(cfg, apiKey),
		logger:     logger,
		apiKey:     apiKey,
		model:      model,
		endpoint:   endpoint,
		safety:     safety,
	}, nil
}

// keyedHTTPClient wraps the injected client's transport so the key travels
// as the "key" query parameter.
func keyedHTTPClient(cfg Config, apiKey string) *http.Client {
	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{}
	}

	rt := base.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}

	client := &http.Client{
		Transport:     &gtransport.APIKey{Key: apiKey, Transport: rt},
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
		Timeout:       base.Timeout,
	}
	if cfg.Timeout > 0 {
		client.Timeout = cfg.Timeout
	}
	return client
}

// Wire types for generateContent.
type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents       []geminiContent `json:"contents"`
	SafetySettings []SafetySetting `json:"safetySettings,omitempty"`
}

type geminiCandidate struct {
	Content      *geminiContent `json:"content"`
	FinishReason string         `json:"finishReason"`
}

type geminiResponse struct {
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Candidates []geminiCandidate `json:"candidates"`
}

// Model returns the model name requests are sent to.
func (c *GeminiClient) Model() string {
	return c.model
}

func (c *GeminiClient) generateURL() string {
	return c.endpoint + "v1/models/" + url.PathEscape(c.model) + ":generateContent"
}

// Generate sends a single generateContent request.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", NewError(KindConfiguration, MsgMissingCredential, nil)
	}

	jsonBody, err := json.Marshal(geminiRequest{
		Contents:       []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		SafetySettings: c.safety,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.generateURL(), bytes.NewReader(jsonBody))
	if err != nil {
		return "", NewError(KindConfiguration, "Invalid AI service endpoint.", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending generation request",
		"model", c.model,
		"prompt_length", len(prompt))

	text, err := c.do(req)
	if err != nil {
		c.logger.Warn("generation request failed",
			"model", c.model,
			"kind", KindOf(err),
			"status", statusOf(err),
			"error", err)
		return "", err
	}

	c.logger.Debug("received generation response",
		"model", c.model,
		"response_length", len(text))

	return text, nil
}

func (c *GeminiClient) do(req *http.Request) (string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", NewError(KindNetwork, MsgNetwork, stripURL(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if err := googleapi.CheckResponse(resp); err != nil {
		return "", classifyStatusError(err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewError(KindNetwork, MsgNetwork, err)
	}

	var response geminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		e := NewError(KindUpstream, MsgUnreadableBody, err)
		e.StatusCode = resp.StatusCode
		return "", e
	}

	return candidateText(response)
}

// stripURL drops the *url.Error wrapper, whose URL carries the API key.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request failed: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

// classifyStatusError maps a non-2xx reply onto the error taxonomy.
func classifyStatusError(err error) *Error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return NewError(KindUpstream, "Google API Error", err)
	}

	if apiErr.Code == http.StatusTooManyRequests {
		e := NewError(KindRateLimit, MsgRateLimited, err)
		e.StatusCode = apiErr.Code
		return e
	}

	msg := apiErr.Message
	if msg == "" {
		msg = fmt.Sprintf("Google API Error: %d", apiErr.Code)
	}
	e := NewError(KindUpstream, msg, err)
	e.StatusCode = apiErr.Code
	return e
}

func statusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// candidateText extracts the first candidate's first text part.
func candidateText(resp geminiResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason == finishReasonSafety {
			return "", NewError(KindContentFiltered, MsgContentFiltered, nil)
		}
		return "", NewError(KindEmptyResponse, MsgEmptyResponse, nil)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == finishReasonSafety {
		return "", NewError(KindContentFiltered, MsgContentFiltered, nil)
	}

	if candidate.Content == nil || len(candidate.Content.Parts) == 0 || candidate.Content.Parts[0].Text == "" {
		return "", NewError(KindEmptyResponse, MsgEmptyResponse, nil)
	}

	return candidate.Content.Parts[0].Text, nil
}
