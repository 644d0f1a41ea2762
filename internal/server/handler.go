package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Veraticus/pathogenius/internal/checker"
	"github.com/Veraticus/pathogenius/internal/common"
	"github.com/Veraticus/pathogenius/internal/llm"
	"github.com/Veraticus/pathogenius/internal/model"
)

const maxBodyBytes = 64 << 10

type handler struct {
	checker Checker
	logger  *slog.Logger
}

// SymptomsRequest is the body of the diagnose and insights endpoints.
type SymptomsRequest struct {
	Symptoms []string `json:"symptoms"`
}

// InsightResponse is returned by the insights endpoint.
type InsightResponse struct {
	Insight string `json:"insight"`
}

// ErrorResponse is returned for every failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) symptoms(w http.ResponseWriter, r *http.Request) {
	labels := model.FilterCatalog(r.URL.Query().Get("q"), nil)
	h.writeJSON(w, http.StatusOK, map[string][]string{"symptoms": labels})
}

func (h *handler) diagnose(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	p, err := h.checker.Diagnose(r.Context(), req.Symptoms)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *handler) insights(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	text, err := h.checker.Insights(r.Context(), req.Symptoms)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, InsightResponse{Insight: text})
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request) (SymptomsRequest, bool) {
	var req SymptomsRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body."})
		return req, false
	}
	return req, true
}

func (h *handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Warn("request failed", "status", status, "error", err)
	}
	h.writeJSON(w, status, ErrorResponse{Error: checker.Message(err)})
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, common.ErrNoSymptoms) {
		return http.StatusBadRequest
	}

	switch llm.KindOf(err) {
	case llm.KindConfiguration:
		return http.StatusInternalServerError
	case llm.KindRateLimit:
		return http.StatusTooManyRequests
	case llm.KindContentFiltered:
		return http.StatusUnprocessableEntity
	case llm.KindNetwork, llm.KindUpstream, llm.KindEmptyResponse, llm.KindMalformedResponse:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
