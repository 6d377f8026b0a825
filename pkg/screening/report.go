package screening

import (
	"strconv"
	"strings"
)

const notProvided = "Not provided"

// Disclaimer accompanies every report.
const Disclaimer = "DizzyCheck is a screening aid for educational purposes only and is not a medical diagnosis. Always consult a doctor for health concerns."

type PatientSnapshot struct {
	FirstName   string `json:"first_name"`
	Surname     string `json:"surname"`
	DisplayName string `json:"display_name"`
	Age         int    `json:"age"`
	Gender      Gender `json:"gender"`
}

type SymptomHighlight struct {
	Symptom string  `json:"symptom"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// Report is everything the presentation layer needs for one submission. It is built
// once by BuildReport and not modified afterwards; BuildReport copies every slice it
// is given.
type Report struct {
	Patient       PatientSnapshot    `json:"patient"`
	Highlights    []SymptomHighlight `json:"highlights"`
	Scores        []ConditionScore   `json:"scores"`
	Likely        []Condition        `json:"likely"`
	Summary       string             `json:"summary"`
	Warnings      []Warning          `json:"warnings"`
	Scaled        bool               `json:"scaled"`
	SchemaVersion string             `json:"schema_version"`
	Disclaimer    string             `json:"disclaimer"`
}

// Degraded reports whether the prediction ran on unscaled features.
func (r Report) Degraded() bool {
	return !r.Scaled
}

// IsLikely reports whether c is in the likely set.
func (r Report) IsLikely(c Condition) bool {
	for _, l := range r.Likely {
		if l == c {
			return true
		}
	}
	return false
}

// Percent returns the percentage for c, or 0 when c is absent.
func (r Report) Percent(c Condition) float64 {
	for _, s := range r.Scores {
		if s.Condition == c {
			return s.Percent
		}
	}
	return 0
}

func BuildReport(identity PatientIdentity, s Symptoms, interp Interpretation, norm Normalization, warnings []Warning) Report {
	return Report{
		Patient:       snapshot(identity),
		Highlights:    highlights(s),
		Scores:        append(make([]ConditionScore, 0, len(interp.Scores)), interp.Scores...),
		Likely:        append(make([]Condition, 0, len(interp.Likely)), interp.Likely...),
		Summary:       interp.Summary,
		Warnings:      append(make([]Warning, 0, len(warnings)), warnings...),
		Scaled:        norm.Scaled,
		SchemaVersion: SchemaVersion,
		Disclaimer:    Disclaimer,
	}
}

func snapshot(identity PatientIdentity) PatientSnapshot {
	first := strings.TrimSpace(identity.FirstName)
	if first == "" {
		first = notProvided
	}
	surname := strings.TrimSpace(identity.Surname)
	return PatientSnapshot{
		FirstName:   first,
		Surname:     surname,
		DisplayName: strings.TrimSpace(first + " " + surname),
		Age:         identity.Age,
		Gender:      identity.Gender,
	}
}

func highlights(s Symptoms) []SymptomHighlight {
	return []SymptomHighlight{
		{Symptom: "dizziness", Label: "Dizziness", Value: s.Dizziness, Display: formatValue(s.Dizziness)},
		{Symptom: "headache", Label: "Headache", Value: s.Headache, Display: formatValue(s.Headache)},
		{Symptom: "intensity", Label: "Intensity", Value: s.Intensity, Display: formatValue(s.Intensity) + "/10"},
		{Symptom: "duration", Label: "Duration", Value: s.Duration, Display: formatValue(s.Duration) + "/10"},
	}
}

// formatValue prints v as entered, with a trailing ".0" on whole numbers.
func formatValue(v float64) string {
	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(out, ".NI") {
		out += ".0"
	}
	return out
}
