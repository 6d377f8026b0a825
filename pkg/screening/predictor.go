package screening

import (
	"errors"
	"fmt"
	"math"
)

// Classifier is a pre-loaded multi-output model. Predict must be pure.
type Classifier interface {
	Predict(sample []float64) ([]float64, error)
}

// PredictionError marks a failed model invocation. It is fatal for the submission.
type PredictionError struct {
	Cause error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed: %v", e.Cause)
}

func (e *PredictionError) Unwrap() error {
	return e.Cause
}

func IsPredictionError(err error) bool {
	var pe *PredictionError
	return errors.As(err, &pe)
}

type ConditionProbability struct {
	Condition   Condition `json:"condition"`
	Probability float64   `json:"probability"`
}

// PredictionResult pairs each condition, in fixed order, with its independent
// probability.
type PredictionResult []ConditionProbability

// Probability returns the probability for c, or 0 when c is absent.
func (r PredictionResult) Probability(c Condition) float64 {
	for _, cp := range r {
		if cp.Condition == c {
			return cp.Probability
		}
	}
	return 0
}

type Predictor struct {
	classifier Classifier
}

func NewPredictor(classifier Classifier) *Predictor {
	return &Predictor{classifier: classifier}
}

func (p *Predictor) Predict(values []float64) (PredictionResult, error) {
	if p.classifier == nil {
		return nil, &PredictionError{Cause: errors.New("no model loaded")}
	}
	outputs, err := p.classifier.Predict(values)
	if err != nil {
		return nil, &PredictionError{Cause: err}
	}
	conditions := Conditions()
	if len(outputs) != len(conditions) {
		return nil, &PredictionError{Cause: fmt.Errorf("model returned %d outputs, want %d", len(outputs), len(conditions))}
	}

	result := make(PredictionResult, len(conditions))
	for i, c := range conditions {
		prob := outputs[i]
		if math.IsNaN(prob) || prob < 0 || prob > 1 {
			return nil, &PredictionError{Cause: fmt.Errorf("%s output %v outside [0,1]", c, prob)}
		}
		result[i] = ConditionProbability{Condition: c, Probability: prob}
	}
	return result, nil
}
