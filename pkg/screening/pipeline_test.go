package screening

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineAssemblesCanonicalVector(t *testing.T) {
	classifier := &recordingClassifier{outputs: []float64{0.2, 0.7, 0.4}}
	p := newTestPipeline(identityScaler{}, classifier, nil)

	report, err := p.Run(context.Background(), sampleSubmission())
	require.NoError(t, err)

	want := []float64{35, 0, 5, 6, 7, 0.5, 0.2, 0.8, 0.6, 0.3, 0.1, 0.4, 0.2}
	assert.Equal(t, want, classifier.lastSample())
	assert.True(t, report.Scaled)
	assert.Equal(t, []Condition{Migraine}, report.Likely)
	assert.Equal(t, "Migraine", report.Summary)
	assert.Equal(t, "Jane Doe", report.Patient.DisplayName)
	assert.Equal(t, SchemaVersion, report.SchemaVersion)
}

func TestPipelineMaleGenderEncodesOne(t *testing.T) {
	classifier := &recordingClassifier{outputs: []float64{0.1, 0.1, 0.1}}
	sub := sampleSubmission()
	sub.Identity.Gender = "Male"
	sub.Identity.Age = intPtr(62)

	_, err := newTestPipeline(identityScaler{}, classifier, nil).Run(context.Background(), sub)
	require.NoError(t, err)

	sample := classifier.lastSample()
	assert.Equal(t, 62.0, sample[FeatureAge])
	assert.Equal(t, 1.0, sample[FeatureGender])
}

func TestPipelineInvalidNameStillPredicts(t *testing.T) {
	classifier := &recordingClassifier{outputs: []float64{0.6, 0.6, 0.6}}
	sub := sampleSubmission()
	sub.Identity.FirstName = "R2D2"

	report, err := newTestPipeline(identityScaler{}, classifier, nil).Run(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, "Not provided", report.Patient.FirstName)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, WarningInvalidName, report.Warnings[0].Code)
	assert.Equal(t, 1, classifier.calls)
	assert.Equal(t, []Condition{Vertigo, Migraine, PPPD}, report.Likely)
	assert.Equal(t, "Vertigo, Migraine, PPPD", report.Summary)
}

func TestPipelineIsIdempotent(t *testing.T) {
	classifier := &recordingClassifier{outputs: []float64{0.55, 0.3, 0.9}}
	p := newTestPipeline(identityScaler{}, classifier, nil)

	first, err := p.Run(context.Background(), sampleSubmission())
	require.NoError(t, err)
	second, err := p.Run(context.Background(), sampleSubmission())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	first.Likely[0] = Migraine
	first.Scores[0].Percent = 0
	assert.Equal(t, Vertigo, second.Likely[0])
	assert.InDelta(t, 55.0, second.Scores[0].Percent, 1e-9)
}

func TestPipelineScalerErrorFallsBackToRawVector(t *testing.T) {
	classifier := &recordingClassifier{outputs: []float64{0.1, 0.2, 0.3}}
	observer := &recordingObserver{}
	p := newTestPipeline(failingScaler{err: errors.New("bad scale vector")}, classifier, observer)

	report, err := p.Run(context.Background(), sampleSubmission())
	require.NoError(t, err)

	assert.Equal(t, []float64{35, 0, 5, 6, 7, 0.5, 0.2, 0.8, 0.6, 0.3, 0.1, 0.4, 0.2}, classifier.lastSample())
	assert.False(t, report.Scaled)
	assert.True(t, report.Degraded())
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, WarningUnscaled, report.Warnings[0].Code)
	assert.Len(t, observer.fallbacks, 1)
	assert.Equal(t, NoStrongIndication, report.Summary)
	assert.Empty(t, report.Likely)
}

func TestPipelinePanickingScalerFallsBack(t *testing.T) {
	classifier := &recordingClassifier{outputs: []float64{0.1, 0.2, 0.3}}
	report, err := newTestPipeline(panickingScaler{}, classifier, nil).Run(context.Background(), sampleSubmission())
	require.NoError(t, err)
	assert.False(t, report.Scaled)
	assert.Equal(t, 35.0, classifier.lastSample()[FeatureAge])
}

func TestPipelineUsesScaledVector(t *testing.T) {
	classifier := &recordingClassifier{outputs: []float64{0.1, 0.2, 0.3}}
	_, err := newTestPipeline(doublingScaler{}, classifier, nil).Run(context.Background(), sampleSubmission())
	require.NoError(t, err)
	assert.Equal(t, 70.0, classifier.lastSample()[FeatureAge])
}

func TestPipelinePredictionFailureIsFatal(t *testing.T) {
	classifier := &recordingClassifier{err: errBrokenModel}
	observer := &recordingObserver{}

	report, err := newTestPipeline(identityScaler{}, classifier, observer).Run(context.Background(), sampleSubmission())
	require.Error(t, err)
	assert.True(t, IsPredictionError(err))
	assert.ErrorIs(t, err, errBrokenModel)
	assert.Equal(t, Report{}, report)
	assert.Len(t, observer.failures, 1)
}

func TestPipelineRejectsUnknownGender(t *testing.T) {
	classifier := &recordingClassifier{outputs: []float64{0.1, 0.2, 0.3}}
	sub := sampleSubmission()
	sub.Identity.Gender = "unknown"

	_, err := newTestPipeline(identityScaler{}, classifier, nil).Run(context.Background(), sub)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Zero(t, classifier.calls)
}

func TestPipelineHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	classifier := &recordingClassifier{outputs: []float64{0.1, 0.2, 0.3}}

	_, err := newTestPipeline(identityScaler{}, classifier, nil).Run(ctx, sampleSubmission())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, classifier.calls)
}

func TestPipelineReportsWarningsToObserver(t *testing.T) {
	observer := &recordingObserver{}
	sub := sampleSubmission()
	sub.Identity.Surname = "D0e"
	sub.Symptoms.Intensity = floatPtr(11)

	_, err := newTestPipeline(identityScaler{}, &recordingClassifier{outputs: []float64{0.1, 0.2, 0.3}}, observer).Run(context.Background(), sub)
	require.NoError(t, err)
	require.Len(t, observer.warnings, 2)
	assert.Equal(t, "surname", observer.warnings[0].Field)
	assert.Equal(t, "intensity", observer.warnings[1].Field)
}

func TestPipelineConcurrentRuns(t *testing.T) {
	classifier := &recordingClassifier{outputs: []float64{0.8, 0.1, 0.5}}
	p := newTestPipeline(doublingScaler{}, classifier, &recordingObserver{})
	want, err := p.Run(context.Background(), sampleSubmission())
	require.NoError(t, err)

	var wg sync.WaitGroup
	reports := make([]Report, 16)
	errs := make([]error, 16)
	for i := range reports {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i], errs[i] = p.Run(context.Background(), sampleSubmission())
		}(i)
	}
	wg.Wait()

	for i := range reports {
		require.NoError(t, errs[i])
		assert.Equal(t, want, reports[i])
	}
}
