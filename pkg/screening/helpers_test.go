package screening

import (
	"context"
	"errors"
	"sync"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

// identityScaler returns its input unchanged.
type identityScaler struct{}

func (identityScaler) Transform(sample []float64) ([]float64, error) {
	return append([]float64(nil), sample...), nil
}

func (identityScaler) Width() int { return FeatureCount }

// doublingScaler makes scaled and unscaled vectors distinguishable.
type doublingScaler struct{}

func (doublingScaler) Transform(sample []float64) ([]float64, error) {
	out := make([]float64, len(sample))
	for i, v := range sample {
		out[i] = v * 2
	}
	return out, nil
}

func (doublingScaler) Width() int { return FeatureCount }

type failingScaler struct{ err error }

func (s failingScaler) Transform([]float64) ([]float64, error) { return nil, s.err }

func (failingScaler) Width() int { return FeatureCount }

type panickingScaler struct{}

func (panickingScaler) Transform([]float64) ([]float64, error) { panic("corrupt scaler state") }

func (panickingScaler) Width() int { return FeatureCount }

type shortScaler struct{}

func (shortScaler) Transform(sample []float64) ([]float64, error) { return sample[:3], nil }

func (shortScaler) Width() int { return FeatureCount }

// recordingClassifier remembers the last sample and returns fixed outputs.
type recordingClassifier struct {
	mu      sync.Mutex
	outputs []float64
	err     error
	last    []float64
	calls   int
}

func (c *recordingClassifier) Predict(sample []float64) ([]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.last = append([]float64(nil), sample...)
	if c.err != nil {
		return nil, c.err
	}
	return append([]float64(nil), c.outputs...), nil
}

func (c *recordingClassifier) lastSample() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]float64(nil), c.last...)
}

type recordingObserver struct {
	mu        sync.Mutex
	warnings  []Warning
	fallbacks []*NormalizationError
	failures  []error
	completed []Report
}

func (o *recordingObserver) Warned(w Warning) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.warnings = append(o.warnings, w)
}

func (o *recordingObserver) NormalizationFallback(err *NormalizationError) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fallbacks = append(o.fallbacks, err)
}

func (o *recordingObserver) PredictionFailed(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures = append(o.failures, err)
}

func (o *recordingObserver) Completed(report Report, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.completed = append(o.completed, report)
}

type publishedEvent struct {
	eventType string
	source    string
	data      map[string]interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, eventType, source string, data map[string]interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{eventType: eventType, source: source, data: data})
	return p.err
}

var errBrokenModel = errors.New("model weights corrupted")

// sampleSubmission is a full form with every slider set.
func sampleSubmission() Submission {
	return Submission{
		Identity: RawIdentity{FirstName: "Jane", Surname: "Doe", Gender: "Female"},
		Symptoms: RawSymptoms{
			Duration:    floatPtr(5),
			Frequency:   floatPtr(6),
			Intensity:   floatPtr(7),
			Nausea:      floatPtr(0.5),
			Vomiting:    floatPtr(0.2),
			Dizziness:   floatPtr(0.8),
			Headache:    floatPtr(0.6),
			Photophobia: floatPtr(0.3),
			Phonophobia: floatPtr(0.1),
			Visual:      floatPtr(0.4),
			Sensory:     floatPtr(0.2),
		},
	}
}

func newTestPipeline(scaler Transformer, classifier Classifier, observer Observer) *Pipeline {
	return NewPipeline(NewNormalizer(scaler, observer), NewPredictor(classifier), observer)
}
