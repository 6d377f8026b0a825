package audit

import (
	"context"
	"fmt"

	"github.com/dizzycheck/platform/pkg/common/logger"
	"github.com/dizzycheck/platform/pkg/common/models"
	"github.com/dizzycheck/platform/pkg/serving"
)

// Store persists and queries screening logs.
type Store interface {
	Record(ctx context.Context, outcome models.ScreeningOutcome) error
	Recent(ctx context.Context, limit int) ([]serving.ScreeningLog, error)
	Summary(ctx context.Context) (serving.Summary, error)
}

// EventObserver counts consumed events by result.
type EventObserver interface {
	ObserveAuditEvent(result string)
}

type nopEventObserver struct{}

func (nopEventObserver) ObserveAuditEvent(string) {}

type Service struct {
	store    Store
	observer EventObserver
}

func NewService(store Store, observer EventObserver) *Service {
	if observer == nil {
		observer = nopEventObserver{}
	}
	return &Service{store: store, observer: observer}
}

// HandleEvent stores screening outcomes and skips every other event type. A store
// error is returned so the consumer leaves the message uncommitted.
func (s *Service) HandleEvent(ctx context.Context, event models.Event) error {
	switch event.Type {
	case models.EventScreeningCompleted, models.EventScreeningFailed:
	default:
		s.observer.ObserveAuditEvent("skipped")
		return nil
	}

	outcome := models.ScreeningOutcomeFromEvent(event.Data)
	if outcome.ScreeningID == "" {
		s.observer.ObserveAuditEvent("skipped")
		logger.Log.WithField("event_id", event.ID).Warn("screening event without screening id")
		return nil
	}
	if outcome.CompletedAt.IsZero() {
		outcome.CompletedAt = event.Timestamp
	}

	if err := s.store.Record(ctx, outcome); err != nil {
		s.observer.ObserveAuditEvent("failed")
		return fmt.Errorf("record screening %s: %w", outcome.ScreeningID, err)
	}
	s.observer.ObserveAuditEvent("stored")

	logger.Log.WithFields(map[string]interface{}{
		"event_id":     event.ID,
		"screening_id": outcome.ScreeningID,
		"failed":       outcome.Failed,
	}).Debug("Screening recorded")
	return nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]serving.ScreeningLog, error) {
	return s.store.Recent(ctx, limit)
}

func (s *Service) Summary(ctx context.Context) (serving.Summary, error) {
	return s.store.Summary(ctx)
}
