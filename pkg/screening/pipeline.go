package screening

import (
	"context"
)

// Pipeline runs one submission through validation, assembly, normalization,
// prediction, interpretation and report building. It holds only read-only
// dependencies and is safe for concurrent use.
type Pipeline struct {
	normalizer *Normalizer
	predictor  *Predictor
	observer   Observer
}

func NewPipeline(normalizer *Normalizer, predictor *Predictor, observer Observer) *Pipeline {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Pipeline{normalizer: normalizer, predictor: predictor, observer: observer}
}

// Run returns a ValidationError for an unknown gender and a PredictionError when the
// model fails. Name and range problems, as well as scaler failures, only add
// warnings to the report.
func (p *Pipeline) Run(ctx context.Context, sub Submission) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	identity, warnings, err := CaptureIdentity(sub.Identity)
	if err != nil {
		return Report{}, err
	}
	symptoms, symptomWarnings := CaptureSymptoms(sub.Symptoms)
	warnings = append(warnings, symptomWarnings...)

	vec := Assemble(identity, symptoms)
	norm := p.normalizer.Normalize(vec)
	if norm.Fallback != nil {
		warnings = append(warnings, Warning{Field: "features", Code: WarningUnscaled, Message: FallbackMessage})
	}

	for _, w := range warnings {
		p.observer.Warned(w)
	}

	result, err := p.predictor.Predict(norm.Values)
	if err != nil {
		p.observer.PredictionFailed(err)
		return Report{}, err
	}

	return BuildReport(identity, symptoms, Interpret(result), norm, warnings), nil
}
