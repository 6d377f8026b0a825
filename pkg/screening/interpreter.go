package screening

import "strings"

// LikelyThreshold is the inclusive percentage at which a condition counts as likely.
const LikelyThreshold = 50.0

const NoStrongIndication = "No strong indication detected (all < 50%)"

type ConditionScore struct {
	Condition   Condition `json:"condition"`
	Probability float64   `json:"probability"`
	Percent     float64   `json:"percent"`
	Likely      bool      `json:"likely"`
}

type Interpretation struct {
	Scores  []ConditionScore
	Likely  []Condition
	Summary string
}

// Interpret converts probabilities to percentages and selects every condition at or
// above LikelyThreshold. The likely set keeps the fixed condition order.
func Interpret(result PredictionResult) Interpretation {
	interp := Interpretation{
		Scores: make([]ConditionScore, 0, len(result)),
		Likely: make([]Condition, 0, len(result)),
	}
	names := make([]string, 0, len(result))
	for _, cp := range result {
		percent := cp.Probability * 100
		likely := percent >= LikelyThreshold
		interp.Scores = append(interp.Scores, ConditionScore{
			Condition:   cp.Condition,
			Probability: cp.Probability,
			Percent:     percent,
			Likely:      likely,
		})
		if likely {
			interp.Likely = append(interp.Likely, cp.Condition)
			names = append(names, string(cp.Condition))
		}
	}

	if len(names) == 0 {
		interp.Summary = NoStrongIndication
	} else {
		interp.Summary = strings.Join(names, ", ")
	}
	return interp
}
