package linear

import (
	"errors"
	"fmt"
	"math"
)

var ErrNoHeads = errors.New("logistic model has no output heads")

type Weights struct {
	Bias         float64   `json:"bias" yaml:"bias"`
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
}

// Head is one independent sigmoid output.
type Head struct {
	Name    string `json:"name" yaml:"name"`
	Weights `yaml:",inline"`
}

// MultiLogistic evaluates several independent logistic regressions over one sample.
// It holds no mutable state and is safe for concurrent use.
type MultiLogistic struct {
	heads []Head
	width int
}

func NewMultiLogistic(heads []Head) (*MultiLogistic, error) {
	if len(heads) == 0 {
		return nil, ErrNoHeads
	}
	width := len(heads[0].Weights.Coefficients)
	copied := make([]Head, len(heads))
	for i, h := range heads {
		if len(h.Weights.Coefficients) != width {
			return nil, fmt.Errorf("head %q has %d coefficients, want %d", h.Name, len(h.Weights.Coefficients), width)
		}
		coeffs := make([]float64, width)
		copy(coeffs, h.Weights.Coefficients)
		copied[i] = Head{Name: h.Name, Weights: Weights{Bias: h.Weights.Bias, Coefficients: coeffs}}
	}
	return &MultiLogistic{heads: copied, width: width}, nil
}

func (m *MultiLogistic) InputWidth() int { return m.width }

func (m *MultiLogistic) OutputWidth() int { return len(m.heads) }

func (m *MultiLogistic) Predict(sample []float64) ([]float64, error) {
	if len(sample) != m.width {
		return nil, fmt.Errorf("sample has %d features, want %d", len(sample), m.width)
	}
	out := make([]float64, len(m.heads))
	for i, h := range m.heads {
		out[i] = Predict(h.Weights, sample)
	}
	return out, nil
}

func Predict(weights Weights, sample []float64) float64 {
	return sigmoid(dot(weights.Coefficients, sample) + weights.Bias)
}

func dot(weights []float64, sample []float64) float64 {
	var sum float64
	for i := 0; i < len(weights); i++ {
		sum += weights[i] * sample[i]
	}
	return sum
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
