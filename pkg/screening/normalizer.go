package screening

import (
	"errors"
	"fmt"
	"math"

	"github.com/dizzycheck/platform/pkg/common/logger"
)

var ErrScalerUnavailable = errors.New("scaler unavailable")

// FallbackMessage is the warning attached to reports computed on unscaled features.
const FallbackMessage = "Feature scaling failed; prediction was computed on unscaled inputs and may be inaccurate."

// Transformer is a fitted scaling transform.
type Transformer interface {
	Transform(sample []float64) ([]float64, error)
	Width() int
}

// NormalizationError records why scaling was skipped.
type NormalizationError struct {
	Cause error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization fallback: %v", e.Cause)
}

func (e *NormalizationError) Unwrap() error {
	return e.Cause
}

// Normalization is the Normalizer's result. When Fallback is set, Values holds the
// raw, unscaled vector.
type Normalization struct {
	Values   []float64
	Scaled   bool
	Fallback *NormalizationError
}

// Normalizer applies a fitted scaler and falls back to the raw vector when the scaler
// fails in any way. The fallback keeps the request alive at the cost of accuracy, so it
// is always logged and reported to the observer.
type Normalizer struct {
	scaler   Transformer
	observer Observer
}

// NewNormalizer accepts a nil scaler; every vector then falls back.
func NewNormalizer(scaler Transformer, observer Observer) *Normalizer {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Normalizer{scaler: scaler, observer: observer}
}

func (n *Normalizer) Normalize(vec FeatureVector) Normalization {
	raw := vec.Slice()
	scaled, err := n.transform(vec.Slice())
	if err != nil {
		fallback := &NormalizationError{Cause: err}
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"schema_version": SchemaVersion,
			"fallback":       "unscaled",
		}).Warn("feature scaling failed, predicting on unscaled features")
		n.observer.NormalizationFallback(fallback)
		return Normalization{Values: raw, Scaled: false, Fallback: fallback}
	}
	return Normalization{Values: scaled, Scaled: true}
}

func (n *Normalizer) transform(sample []float64) (out []float64, err error) {
	if n.scaler == nil {
		return nil, ErrScalerUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("scaler panicked: %v", r)
		}
	}()

	out, err = n.scaler.Transform(sample)
	if err != nil {
		return nil, err
	}
	if len(out) != len(sample) {
		return nil, fmt.Errorf("scaler returned %d values for %d features", len(out), len(sample))
	}
	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("scaler produced non-finite value at index %d", i)
		}
	}
	return out, nil
}
