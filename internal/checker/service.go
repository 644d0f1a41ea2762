package checker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/pathogenius/internal/common"
	"github.com/Veraticus/pathogenius/internal/extract"
	"github.com/Veraticus/pathogenius/internal/llm"
	"github.com/Veraticus/pathogenius/internal/model"
	"github.com/Veraticus/pathogenius/internal/prompt"
)

// Service runs diagnosis and insight requests against a language model.
type Service struct {
	client    llm.Client
	prompts   *prompt.Builder
	logger    *slog.Logger
	extractor extract.Extractor
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithExtractor sets the response extractor.
func WithExtractor(e extract.Extractor) Option {
	return func(s *Service) {
		s.extractor = e
	}
}

// NewService creates a service using client for generation.
func NewService(client llm.Client, opts ...Option) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: llm client is required", common.ErrMissingConfig)
	}

	prompts, err := prompt.NewBuilder()
	if err != nil {
		return nil, err
	}

	s := &Service{
		client:  client,
		prompts: prompts,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Diagnose asks the model for the most likely condition.
func (s *Service) Diagnose(ctx context.Context, symptoms []string) (model.Prediction, error) {
	symptoms = model.Dedupe(symptoms)
	if len(symptoms) == 0 {
		return model.Prediction{}, common.ErrNoSymptoms
	}

	logger := s.requestLogger(ctx, "diagnose")
	start := time.Now()

	p, err := s.prompts.Diagnosis(symptoms)
	if err != nil {
		return model.Prediction{}, err
	}

	text, err := s.client.Generate(ctx, p)
	if err != nil {
		logger.Warn("diagnosis request failed", "symptoms", len(symptoms), "error", err)
		return model.Prediction{}, fmt.Errorf("diagnosis failed: %w", err)
	}

	prediction, err := s.extractor.Structured(text)
	if err != nil {
		logger.Warn("diagnosis response unusable", "response_length", len(text), "error", err)
		return model.Prediction{}, fmt.Errorf("diagnosis failed: %w", err)
	}

	logger.Info("diagnosis complete",
		"symptoms", len(symptoms),
		"condition", prediction.Name,
		"score", prediction.Score,
		"urgency", prediction.Urgency,
		"duration", time.Since(start))

	return prediction, nil
}

// Insights asks the model for recovery tips.
func (s *Service) Insights(ctx context.Context, symptoms []string) (string, error) {
	symptoms = model.Dedupe(symptoms)
	if len(symptoms) == 0 {
		return "", common.ErrNoSymptoms
	}

	logger := s.requestLogger(ctx, "insights")
	start := time.Now()

	p, err := s.prompts.Insight(symptoms)
	if err != nil {
		return "", err
	}

	text, err := s.client.Generate(ctx, p)
	if err != nil {
		logger.Warn("insight request failed", "symptoms", len(symptoms), "error", err)
		return "", fmt.Errorf("insights failed: %w", err)
	}

	logger.Info("insights complete",
		"symptoms", len(symptoms),
		"response_length", len(text),
		"duration", time.Since(start))

	return extract.ExtractFreeText(text), nil
}

func (s *Service) requestLogger(ctx context.Context, operation string) *slog.Logger {
	id := RequestID(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	return s.logger.With("request_id", id, "operation", operation)
}

type requestIDKey struct{}

// WithRequestID attaches a request ID used to correlate log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
