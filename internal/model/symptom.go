package model

import "strings"

// Catalog is the fixed list of symptom labels offered for selection.
var Catalog = []string{
	"Fever",
	"Cough",
	"Headache",
	"Fatigue",
	"Sore throat",
	"Shortness of breath",
	"Body aches",
	"Nausea",
	"Dizziness",
	"Rash",
	"Chills",
	"Loss of taste",
	"Congestion",
	"Muscle pain",
	"Chest pain",
}

// FilterCatalog returns catalog labels containing query (case-insensitive)
// that are not already in selected, preserving catalog order.
func FilterCatalog(query string, selected []string) []string {
	q := strings.ToLower(query)
	result := make([]string, 0, len(Catalog))
	for _, label := range Catalog {
		if Contains(selected, label) {
			continue
		}
		if strings.Contains(strings.ToLower(label), q) {
			result = append(result, label)
		}
	}
	return result
}

// Contains reports whether label is present in labels.
func Contains(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

// Dedupe returns labels with exact repeats removed, first occurrence wins.
// Kept labels are not modified; whitespace-only labels are dropped.
func Dedupe(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if strings.TrimSpace(l) == "" || Contains(out, l) {
			continue
		}
		out = append(out, l)
	}
	return out
}
