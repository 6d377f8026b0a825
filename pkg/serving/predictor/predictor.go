package predictor

import (
	"fmt"
	"strings"

	"github.com/dizzycheck/platform/pkg/ml/artifact"
	"github.com/dizzycheck/platform/pkg/ml/dense"
	"github.com/dizzycheck/platform/pkg/ml/linear"
)

const (
	TypeLogistic = "logistic"
	TypeDense    = "dense"
)

// Artifact is the serialized multi-output model.
type Artifact struct {
	SchemaVersion string        `json:"schema_version" yaml:"schema_version"`
	ModelVersion  string        `json:"model_version" yaml:"model_version"`
	Type          string        `json:"type" yaml:"type"`
	FeatureNames  []string      `json:"feature_names" yaml:"feature_names"`
	Outputs       []string      `json:"outputs" yaml:"outputs"`
	Heads         []linear.Head `json:"heads,omitempty" yaml:"heads,omitempty"`
	Layers        []dense.Layer `json:"layers,omitempty" yaml:"layers,omitempty"`
}

// Classifier maps one feature sample to independent per-output scores.
// Implementations must be safe for concurrent Predict calls.
type Classifier interface {
	Predict(sample []float64) ([]float64, error)
	InputWidth() int
	OutputWidth() int
}

// Model is a loaded classifier plus the metadata its artifact declared.
type Model struct {
	Classifier
	Type          string
	SchemaVersion string
	Version       string
	FeatureNames  []string
	Outputs       []string
}

func FromArtifact(a Artifact) (*Model, error) {
	kind := strings.ToLower(strings.TrimSpace(a.Type))
	var (
		classifier Classifier
		err        error
	)
	outputs := append([]string(nil), a.Outputs...)

	switch kind {
	case TypeLogistic:
		classifier, err = linear.NewMultiLogistic(a.Heads)
		if err == nil && len(outputs) == 0 {
			for _, h := range a.Heads {
				outputs = append(outputs, h.Name)
			}
		}
	case TypeDense:
		classifier, err = dense.NewNetwork(a.Layers)
	default:
		return nil, fmt.Errorf("unsupported model type %q", a.Type)
	}
	if err != nil {
		return nil, err
	}

	if len(a.FeatureNames) > 0 && len(a.FeatureNames) != classifier.InputWidth() {
		return nil, fmt.Errorf("model declares %d feature names for %d inputs", len(a.FeatureNames), classifier.InputWidth())
	}
	if len(outputs) > 0 && len(outputs) != classifier.OutputWidth() {
		return nil, fmt.Errorf("model declares %d outputs for %d output units", len(outputs), classifier.OutputWidth())
	}

	version := a.ModelVersion
	if version == "" {
		version = "latest"
	}

	return &Model{
		Classifier:    classifier,
		Type:          kind,
		SchemaVersion: a.SchemaVersion,
		Version:       version,
		FeatureNames:  append([]string(nil), a.FeatureNames...),
		Outputs:       outputs,
	}, nil
}

// Load reads a model artifact from a .json or .yaml file.
func Load(path string) (*Model, error) {
	var a Artifact
	if err := artifact.DecodeFile(path, &a); err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	model, err := FromArtifact(a)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return model, nil
}
