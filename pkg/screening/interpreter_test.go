package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func predictionOf(v, m, p float64) PredictionResult {
	return PredictionResult{
		{Condition: Vertigo, Probability: v},
		{Condition: Migraine, Probability: m},
		{Condition: PPPD, Probability: p},
	}
}

func TestInterpretThresholdIsInclusive(t *testing.T) {
	interp := Interpret(predictionOf(0.5, 0.49999, 0.0))
	assert.Equal(t, []Condition{Vertigo}, interp.Likely)
	assert.Equal(t, "Vertigo", interp.Summary)
	assert.True(t, interp.Scores[0].Likely)
	assert.False(t, interp.Scores[1].Likely)
	assert.InDelta(t, 49.999, interp.Scores[1].Percent, 1e-9)
}

func TestInterpretNoStrongIndication(t *testing.T) {
	interp := Interpret(predictionOf(0.1, 0.2, 0.3))
	assert.Empty(t, interp.Likely)
	assert.NotNil(t, interp.Likely)
	assert.Equal(t, "No strong indication detected (all < 50%)", interp.Summary)
}

func TestInterpretKeepsConditionOrder(t *testing.T) {
	interp := Interpret(predictionOf(0.9, 0.1, 0.51))
	assert.Equal(t, []Condition{Vertigo, PPPD}, interp.Likely)
	assert.Equal(t, "Vertigo, PPPD", interp.Summary)
	for i, c := range Conditions() {
		assert.Equal(t, c, interp.Scores[i].Condition)
	}
}

func TestInterpretIsIndependentPerCondition(t *testing.T) {
	interp := Interpret(predictionOf(1, 1, 1))
	assert.Len(t, interp.Likely, 3)
	assert.InDelta(t, 100.0, interp.Scores[2].Percent, 1e-9)
}
