package screening

import (
	"context"
	"time"

	"github.com/dizzycheck/platform/pkg/common/logger"
	"github.com/dizzycheck/platform/pkg/common/models"
	"github.com/google/uuid"
)

const eventSource = "screening-service"

// Publisher sends de-identified screening outcomes downstream.
type Publisher interface {
	PublishEvent(ctx context.Context, eventType string, source string, data map[string]interface{}) error
}

// Screening wraps a Report with the identifiers of one service call.
type Screening struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	ModelVersion string    `json:"model_version"`
	LatencyMs    float64   `json:"latency_ms"`
	Report       Report    `json:"report"`
}

type Service struct {
	pipeline     *Pipeline
	publisher    Publisher
	observer     Observer
	modelVersion string
	now          func() time.Time
}

// NewService accepts a nil publisher, in which case outcomes are only logged.
func NewService(pipeline *Pipeline, publisher Publisher, observer Observer, modelVersion string) *Service {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Service{
		pipeline:     pipeline,
		publisher:    publisher,
		observer:     observer,
		modelVersion: modelVersion,
		now:          time.Now,
	}
}

func (s *Service) Screen(ctx context.Context, sub Submission) (*Screening, error) {
	start := s.now()
	id := uuid.New().String()

	report, err := s.pipeline.Run(ctx, sub)
	elapsed := s.now().Sub(start)
	if err != nil {
		if IsPredictionError(err) {
			s.publish(ctx, models.EventScreeningFailed, models.ScreeningOutcome{
				ScreeningID:   id,
				SchemaVersion: SchemaVersion,
				ModelVersion:  s.modelVersion,
				Failed:        true,
				Error:         err.Error(),
				LatencyMs:     millis(elapsed),
				CompletedAt:   s.now().UTC(),
			})
		}
		return nil, err
	}

	s.observer.Completed(report, elapsed)

	screening := &Screening{
		ID:           id,
		CreatedAt:    start.UTC(),
		ModelVersion: s.modelVersion,
		LatencyMs:    millis(elapsed),
		Report:       report,
	}

	s.publish(ctx, models.EventScreeningCompleted, outcomeFor(screening))

	logger.Log.WithFields(map[string]interface{}{
		"screening_id": id,
		"likely":       len(report.Likely),
		"scaled":       report.Scaled,
		"warnings":     len(report.Warnings),
		"latency_ms":   elapsed.Milliseconds(),
	}).Info("Screening completed")

	return screening, nil
}

func (s *Service) publish(ctx context.Context, eventType string, outcome models.ScreeningOutcome) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, eventType, eventSource, outcome.ToEventData()); err != nil {
		logger.Log.WithError(err).WithField("screening_id", outcome.ScreeningID).Warn("failed to publish screening outcome")
	}
}

// outcomeFor strips identity from a screening.
func outcomeFor(s *Screening) models.ScreeningOutcome {
	probabilities := make(map[string]float64, len(s.Report.Scores))
	for _, score := range s.Report.Scores {
		probabilities[string(score.Condition)] = score.Probability
	}
	likely := make([]string, 0, len(s.Report.Likely))
	for _, c := range s.Report.Likely {
		likely = append(likely, string(c))
	}
	return models.ScreeningOutcome{
		ScreeningID:   s.ID,
		SchemaVersion: s.Report.SchemaVersion,
		ModelVersion:  s.ModelVersion,
		Probabilities: probabilities,
		Likely:        likely,
		Scaled:        s.Report.Scaled,
		LatencyMs:     s.LatencyMs,
		CompletedAt:   s.CreatedAt.Add(time.Duration(s.LatencyMs * float64(time.Millisecond))),
	}
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
