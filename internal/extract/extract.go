// Package extract turns raw model output into structured predictions.
//
// Missing or unusable fields fall back to the model package defaults. A
// score that is present and numeric is always kept, including 0; only a
// missing or non-numeric score becomes the default of 70. Scores are not
// clamped.
package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/pathogenius/internal/llm"
	"github.com/Veraticus/pathogenius/internal/model"
)

// Strategy selects how the JSON object is located in the text.
type Strategy string

// Available strategies.
const (
	// StrategySpan takes everything from the first '{' to the last '}'.
	StrategySpan Strategy = "span"
	// StrategyBalanced takes the first complete brace-balanced object,
	// ignoring braces inside JSON strings.
	StrategyBalanced Strategy = "balanced"
)

// ParseStrategy converts a configuration value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategySpan:
		return StrategySpan, nil
	case StrategyBalanced:
		return StrategyBalanced, nil
	default:
		return "", fmt.Errorf("unknown extraction strategy %q", s)
	}
}

// Extractor builds predictions from model output. The zero value uses
// StrategySpan.
type Extractor struct {
	Strategy Strategy
}

// Structured locates a JSON object in text and builds a prediction,
// defaulting every missing or unusable field.
func (e Extractor) Structured(text string) (model.Prediction, error) {
	var (
		raw string
		ok  bool
	)
	switch e.Strategy {
	case StrategyBalanced:
		raw, ok = balancedObject(text)
	default:
		raw, ok = spanObject(text)
	}
	if !ok {
		return model.Prediction{}, llm.NewError(llm.KindMalformedResponse, llm.MsgNoStructure, nil)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return model.Prediction{}, llm.NewError(llm.KindMalformedResponse, llm.MsgInvalidStructure, err)
	}

	p := model.DefaultPrediction()
	if s, ok := textField(fields["name"]); ok {
		p.Name = s
	}
	if s, ok := textField(fields["description"]); ok {
		p.Description = s
	}
	if s, ok := textField(fields["urgency"]); ok {
		p.Urgency = model.Urgency(s)
	}
	if f, ok := scoreField(fields["score"]); ok {
		p.Score = f
	}
	return p, nil
}

// ExtractStructured uses the default span strategy.
func ExtractStructured(text string) (model.Prediction, error) {
	return Extractor{}.Structured(text)
}

// ExtractFreeText returns the insight text unchanged.
func ExtractFreeText(text string) string {
	return text
}

// spanObject returns text between the first '{' and the last '}'.
func spanObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// balancedObject returns the first brace-balanced object in text.
func balancedObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	for start != -1 {
		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(text); i++ {
			c := text[i]
			if inString {
				switch {
				case escaped:
					escaped = false
				case c == '\\':
					escaped = true
				case c == '"':
					inString = false
				}
				continue
			}
			switch c {
			case '"':
				inString = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
		next := strings.Index(text[start+1:], "{")
		if next == -1 {
			break
		}
		start += next + 1
	}
	return "", false
}

// textField accepts non-empty strings and the literal text of numbers and
// booleans.
func textField(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, t != ""
	case float64:
		return strings.TrimSpace(string(raw)), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

// scoreField accepts numbers and numeric strings.
func scoreField(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
