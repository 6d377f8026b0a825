package models

import (
	"time"
)

// Event Bus models
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"` // screening.completed, screening.failed
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

const (
	EventScreeningCompleted = "screening.completed"
	EventScreeningFailed    = "screening.failed"
)

// ScreeningOutcome is the de-identified summary of one screening that leaves the
// screening service. It never carries names, age or gender.
type ScreeningOutcome struct {
	ScreeningID   string             `json:"screening_id"`
	SchemaVersion string             `json:"schema_version"`
	ModelVersion  string             `json:"model_version"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
	Likely        []string           `json:"likely,omitempty"`
	Scaled        bool               `json:"scaled"`
	Failed        bool               `json:"failed"`
	Error         string             `json:"error,omitempty"`
	LatencyMs     float64            `json:"latency_ms"`
	CompletedAt   time.Time          `json:"completed_at"`
}

// ToEventData flattens the outcome into the generic event payload.
func (o ScreeningOutcome) ToEventData() map[string]interface{} {
	probabilities := make(map[string]interface{}, len(o.Probabilities))
	for k, v := range o.Probabilities {
		probabilities[k] = v
	}
	likely := make([]interface{}, 0, len(o.Likely))
	for _, name := range o.Likely {
		likely = append(likely, name)
	}
	data := map[string]interface{}{
		"screening_id":   o.ScreeningID,
		"schema_version": o.SchemaVersion,
		"model_version":  o.ModelVersion,
		"probabilities":  probabilities,
		"likely":         likely,
		"scaled":         o.Scaled,
		"failed":         o.Failed,
		"latency_ms":     o.LatencyMs,
		"completed_at":   o.CompletedAt.UTC().Format(time.RFC3339Nano),
	}
	if o.Error != "" {
		data["error"] = o.Error
	}
	return data
}

// ScreeningOutcomeFromEvent is the inverse of ToEventData. Values that arrive through
// JSON decode as float64, []interface{} and string, so each field is converted leniently.
func ScreeningOutcomeFromEvent(data map[string]interface{}) ScreeningOutcome {
	out := ScreeningOutcome{
		ScreeningID:   stringValue(data["screening_id"]),
		SchemaVersion: stringValue(data["schema_version"]),
		ModelVersion:  stringValue(data["model_version"]),
		Error:         stringValue(data["error"]),
	}
	if v, ok := data["scaled"].(bool); ok {
		out.Scaled = v
	}
	if v, ok := data["failed"].(bool); ok {
		out.Failed = v
	}
	if v, ok := data["latency_ms"].(float64); ok {
		out.LatencyMs = v
	}
	if raw, ok := data["probabilities"].(map[string]interface{}); ok {
		out.Probabilities = make(map[string]float64, len(raw))
		for k, v := range raw {
			if f, ok := v.(float64); ok {
				out.Probabilities[k] = f
			}
		}
	}
	switch likely := data["likely"].(type) {
	case []interface{}:
		for _, v := range likely {
			if s, ok := v.(string); ok {
				out.Likely = append(out.Likely, s)
			}
		}
	case []string:
		out.Likely = append(out.Likely, likely...)
	}
	if ts := stringValue(data["completed_at"]); ts != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			out.CompletedAt = parsed
		}
	}
	return out
}

func stringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
