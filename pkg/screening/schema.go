package screening

import (
	"errors"
	"fmt"
)

// SchemaVersion names the feature order the scaler and model were fitted on.
const SchemaVersion = "dizzycheck-v1"

// FeatureCount is the width of every feature vector.
const FeatureCount = 13

// Feature indexes in canonical order.
const (
	FeatureAge = iota
	FeatureGender
	FeatureDuration
	FeatureFrequency
	FeatureIntensity
	FeatureNausea
	FeatureVomiting
	FeatureDizziness
	FeatureHeadache
	FeaturePhotophobia
	FeaturePhonophobia
	FeatureVisual
	FeatureSensory
)

var ErrSchemaMismatch = errors.New("artifact does not match feature schema")

// FeatureSchema is a frozen, versioned list of feature names.
type FeatureSchema struct {
	version string
	names   [FeatureCount]string
}

// Schema is the feature schema every artifact must agree with.
var Schema = FeatureSchema{
	version: SchemaVersion,
	names: [FeatureCount]string{
		"age", "gender", "duration", "frequency", "intensity",
		"nausea", "vomiting", "dizziness", "headache",
		"photophobia", "phonophobia", "visual", "sensory",
	},
}

func (s FeatureSchema) Version() string { return s.version }

func (s FeatureSchema) Width() int { return len(s.names) }

func (s FeatureSchema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names[:])
	return out
}

// ArtifactInfo describes what a loaded artifact expects as input.
type ArtifactInfo struct {
	Kind          string
	Width         int
	FeatureNames  []string
	SchemaVersion string
}

// Check fails when the artifact's width differs from the schema, or when the artifact
// declares feature names or a schema version that differ from it.
func (s FeatureSchema) Check(info ArtifactInfo) error {
	if info.Width != s.Width() {
		return fmt.Errorf("%w: %s expects %d features, schema %s has %d", ErrSchemaMismatch, info.Kind, info.Width, s.version, s.Width())
	}
	if info.SchemaVersion != "" && info.SchemaVersion != s.version {
		return fmt.Errorf("%w: %s fitted on schema %q, want %q", ErrSchemaMismatch, info.Kind, info.SchemaVersion, s.version)
	}
	if len(info.FeatureNames) == 0 {
		return nil
	}
	if len(info.FeatureNames) != s.Width() {
		return fmt.Errorf("%w: %s declares %d feature names", ErrSchemaMismatch, info.Kind, len(info.FeatureNames))
	}
	for i, name := range info.FeatureNames {
		if name != s.names[i] {
			return fmt.Errorf("%w: %s feature %d is %q, want %q", ErrSchemaMismatch, info.Kind, i, name, s.names[i])
		}
	}
	return nil
}

// CheckOutputs verifies that a model's declared outputs follow the fixed condition
// order. An empty list means the model does not declare them.
func CheckOutputs(outputs []string, width int) error {
	conditions := Conditions()
	if width != len(conditions) {
		return fmt.Errorf("%w: model has %d outputs, want %d", ErrSchemaMismatch, width, len(conditions))
	}
	if len(outputs) == 0 {
		return nil
	}
	if len(outputs) != len(conditions) {
		return fmt.Errorf("%w: model outputs %v, want %v", ErrSchemaMismatch, outputs, conditions)
	}
	for i, c := range conditions {
		if outputs[i] != string(c) {
			return fmt.Errorf("%w: model outputs %v, want %v", ErrSchemaMismatch, outputs, conditions)
		}
	}
	return nil
}

// CheckArtifacts runs the startup check for both artifacts. scaler is nil when the
// service runs without one.
func (s FeatureSchema) CheckArtifacts(scaler *ArtifactInfo, model ArtifactInfo, outputs []string, outputWidth int) error {
	if scaler != nil {
		if err := s.Check(*scaler); err != nil {
			return err
		}
	}
	if err := s.Check(model); err != nil {
		return err
	}
	return CheckOutputs(outputs, outputWidth)
}
