// Package dense evaluates small fully connected feed-forward networks exported from a
// training framework as plain weight matrices.
package dense

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	ActivationLinear  = "linear"
	ActivationReLU    = "relu"
	ActivationSigmoid = "sigmoid"
	ActivationTanh    = "tanh"
)

var ErrNoLayers = errors.New("network has no layers")

// Layer computes activation(W·x + b). Weights is indexed [input][unit], the layout
// Keras uses for Dense kernels.
type Layer struct {
	Weights    [][]float64 `json:"weights" yaml:"weights"`
	Bias       []float64   `json:"bias" yaml:"bias"`
	Activation string      `json:"activation" yaml:"activation"`
}

// Network is immutable after construction and safe for concurrent Predict calls.
type Network struct {
	layers []layer
}

type layer struct {
	weights    [][]float64
	bias       []float64
	activation func(float64) float64
	inputs     int
	units      int
}

func NewNetwork(layers []Layer) (*Network, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}
	net := &Network{layers: make([]layer, 0, len(layers))}
	prevUnits := -1
	for i, l := range layers {
		compiled, err := compile(l)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		if prevUnits >= 0 && compiled.inputs != prevUnits {
			return nil, fmt.Errorf("layer %d expects %d inputs, previous layer has %d units", i, compiled.inputs, prevUnits)
		}
		prevUnits = compiled.units
		net.layers = append(net.layers, compiled)
	}
	return net, nil
}

func compile(l Layer) (layer, error) {
	if len(l.Weights) == 0 {
		return layer{}, errors.New("empty weight matrix")
	}
	units := len(l.Bias)
	if units == 0 {
		return layer{}, errors.New("empty bias vector")
	}
	weights := make([][]float64, len(l.Weights))
	for i, row := range l.Weights {
		if len(row) != units {
			return layer{}, fmt.Errorf("weight row %d has %d units, bias has %d", i, len(row), units)
		}
		weights[i] = append([]float64(nil), row...)
	}
	act, err := activation(l.Activation)
	if err != nil {
		return layer{}, err
	}
	return layer{
		weights:    weights,
		bias:       append([]float64(nil), l.Bias...),
		activation: act,
		inputs:     len(weights),
		units:      units,
	}, nil
}

func activation(name string) (func(float64) float64, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ActivationLinear:
		return func(x float64) float64 { return x }, nil
	case ActivationReLU:
		return func(x float64) float64 { return math.Max(0, x) }, nil
	case ActivationSigmoid:
		return func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }, nil
	case ActivationTanh:
		return math.Tanh, nil
	default:
		return nil, fmt.Errorf("unsupported activation %q", name)
	}
}

func (n *Network) InputWidth() int { return n.layers[0].inputs }

func (n *Network) OutputWidth() int { return n.layers[len(n.layers)-1].units }

func (n *Network) Predict(sample []float64) ([]float64, error) {
	if len(sample) != n.InputWidth() {
		return nil, fmt.Errorf("sample has %d features, want %d", len(sample), n.InputWidth())
	}
	current := sample
	for _, l := range n.layers {
		next := make([]float64, l.units)
		for u := 0; u < l.units; u++ {
			sum := l.bias[u]
			for i, x := range current {
				sum += x * l.weights[i][u]
			}
			next[u] = l.activation(sum)
		}
		current = next
	}
	return current, nil
}
