// Package prompt builds the instructions sent to the language model.
//
// Symptom labels are interpolated verbatim. Free-text labels can therefore
// steer the model; callers that accept arbitrary input should be aware of it.
package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Template names.
const (
	diagnosisTemplate = "diagnosis"
	insightTemplate   = "insight"
)

// Data is the input to every prompt template.
type Data struct {
	Symptoms []string
}

// Builder renders prompts from the embedded templates.
type Builder struct {
	templates map[string]*template.Template
}

// NewBuilder parses the embedded templates.
func NewBuilder() (*Builder, error) {
	b := &Builder{
		templates: make(map[string]*template.Template),
	}

	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	for _, name := range []string{diagnosisTemplate, insightTemplate} {
		filename := fmt.Sprintf("templates/%s.tmpl", name)
		tmpl, err := template.New(name + ".tmpl").Funcs(funcMap).ParseFS(templateFS, filename)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		b.templates[name] = tmpl
	}

	return b, nil
}

// Diagnosis renders the structured diagnosis request for symptoms.
func (b *Builder) Diagnosis(symptoms []string) (string, error) {
	return b.render(diagnosisTemplate, symptoms)
}

// Insight renders the free-text tips request for symptoms.
func (b *Builder) Insight(symptoms []string) (string, error) {
	return b.render(insightTemplate, symptoms)
}

func (b *Builder) render(name string, symptoms []string) (string, error) {
	tmpl, ok := b.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name+".tmpl", Data{Symptoms: symptoms}); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

var defaultBuilder = mustNewBuilder()

func mustNewBuilder() *Builder {
	b, err := NewBuilder()
	if err != nil {
		panic(err)
	}
	return b
}

// BuildDiagnosisPrompt returns the diagnosis prompt for a non-empty selection.
func BuildDiagnosisPrompt(symptoms []string) string {
	p, err := defaultBuilder.Diagnosis(symptoms)
	if err != nil {
		panic(err)
	}
	return p
}

// BuildInsightPrompt returns the insight prompt for a non-empty selection.
func BuildInsightPrompt(symptoms []string) string {
	p, err := defaultBuilder.Insight(symptoms)
	if err != nil {
		panic(err)
	}
	return p
}
