// Package scaling applies feature scalers fitted offline (StandardScaler and
// MinMaxScaler semantics) to a single sample.
package scaling

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dizzycheck/platform/pkg/ml/artifact"
)

const (
	TypeStandard = "standard"
	TypeMinMax   = "minmax"
)

var (
	ErrShapeMismatch = errors.New("sample shape does not match scaler")
	ErrNonFinite     = errors.New("scaled value is not finite")
)

type Scaler interface {
	Transform(sample []float64) ([]float64, error)
	Width() int
}

// Artifact is the serialized form of a fitted scaler.
type Artifact struct {
	SchemaVersion string    `json:"schema_version" yaml:"schema_version"`
	Type          string    `json:"type" yaml:"type"`
	FeatureNames  []string  `json:"feature_names" yaml:"feature_names"`
	Mean          []float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	Min           []float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Scale         []float64 `json:"scale" yaml:"scale"`
}

// Fitted is a loaded scaler together with the metadata its artifact declared.
type Fitted struct {
	Scaler
	Type          string
	SchemaVersion string
	FeatureNames  []string
}

// Standard computes (x - mean) / scale per feature.
type Standard struct {
	mean  []float64
	scale []float64
}

func NewStandard(mean, scale []float64) (*Standard, error) {
	if len(mean) == 0 || len(mean) != len(scale) {
		return nil, fmt.Errorf("standard scaler needs equal non-empty mean and scale, got %d/%d", len(mean), len(scale))
	}
	return &Standard{mean: append([]float64(nil), mean...), scale: safeScale(scale)}, nil
}

func (s *Standard) Width() int { return len(s.mean) }

func (s *Standard) Transform(sample []float64) ([]float64, error) {
	if len(sample) != len(s.mean) {
		return nil, fmt.Errorf("%w: got %d features, want %d", ErrShapeMismatch, len(sample), len(s.mean))
	}
	out := make([]float64, len(sample))
	for i, x := range sample {
		out[i] = (x - s.mean[i]) / s.scale[i]
	}
	return out, checkFinite(out)
}

// MinMax computes x * scale + min per feature, matching the fitted min_ and scale_
// attributes of a min-max scaler.
type MinMax struct {
	min   []float64
	scale []float64
}

func NewMinMax(min, scale []float64) (*MinMax, error) {
	if len(min) == 0 || len(min) != len(scale) {
		return nil, fmt.Errorf("min-max scaler needs equal non-empty min and scale, got %d/%d", len(min), len(scale))
	}
	return &MinMax{min: append([]float64(nil), min...), scale: append([]float64(nil), scale...)}, nil
}

func (m *MinMax) Width() int { return len(m.min) }

func (m *MinMax) Transform(sample []float64) ([]float64, error) {
	if len(sample) != len(m.min) {
		return nil, fmt.Errorf("%w: got %d features, want %d", ErrShapeMismatch, len(sample), len(m.min))
	}
	out := make([]float64, len(sample))
	for i, x := range sample {
		out[i] = x*m.scale[i] + m.min[i]
	}
	return out, checkFinite(out)
}

// FromArtifact builds the scaler an artifact describes.
func FromArtifact(a Artifact) (*Fitted, error) {
	var (
		scaler Scaler
		err    error
	)
	kind := strings.ToLower(strings.TrimSpace(a.Type))
	switch kind {
	case TypeStandard, "":
		kind = TypeStandard
		scaler, err = NewStandard(a.Mean, a.Scale)
	case TypeMinMax:
		scaler, err = NewMinMax(a.Min, a.Scale)
	default:
		return nil, fmt.Errorf("unsupported scaler type %q", a.Type)
	}
	if err != nil {
		return nil, err
	}
	if len(a.FeatureNames) > 0 && len(a.FeatureNames) != scaler.Width() {
		return nil, fmt.Errorf("scaler declares %d feature names for %d features", len(a.FeatureNames), scaler.Width())
	}
	return &Fitted{
		Scaler:        scaler,
		Type:          kind,
		SchemaVersion: a.SchemaVersion,
		FeatureNames:  append([]string(nil), a.FeatureNames...),
	}, nil
}

// Load reads a scaler artifact from a .json or .yaml file.
func Load(path string) (*Fitted, error) {
	var a Artifact
	if err := artifact.DecodeFile(path, &a); err != nil {
		return nil, fmt.Errorf("load scaler %s: %w", path, err)
	}
	fitted, err := FromArtifact(a)
	if err != nil {
		return nil, fmt.Errorf("load scaler %s: %w", path, err)
	}
	return fitted, nil
}

// safeScale replaces zero scales with 1, as the fitting side does for constant features.
func safeScale(scale []float64) []float64 {
	out := make([]float64, len(scale))
	for i, s := range scale {
		if s == 0 {
			s = 1
		}
		out[i] = s
	}
	return out
}

func checkFinite(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w at index %d", ErrNonFinite, i)
		}
	}
	return nil
}
