package tracking

import (
	"fmt"
	"time"

	"github.com/dizzycheck/platform/pkg/screening"
	"github.com/getsentry/sentry-go"
)

// Init configures the global Sentry client. An empty dsn leaves reporting disabled.
func Init(dsn, environment, release string) (bool, error) {
	if dsn == "" {
		return false, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          "dizzycheck@" + release,
		TracesSampleRate: 0.2,
		SendDefaultPII:   false,
	})
	if err != nil {
		return false, fmt.Errorf("sentry initialization failed: %w", err)
	}
	return true, nil
}

// Flush waits for buffered events before the process exits.
func Flush() {
	sentry.Flush(2 * time.Second)
}

// Reporter forwards scaler fallbacks and prediction failures to Sentry. Events carry
// only the error and the schema version.
type Reporter struct {
	screening.NopObserver
	hub *sentry.Hub
}

// NewReporter uses the current hub when hub is nil.
func NewReporter(hub *sentry.Hub) *Reporter {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &Reporter{hub: hub}
}

func (r *Reporter) NormalizationFallback(err *screening.NormalizationError) {
	r.capture(err, sentry.LevelWarning, "normalization")
}

func (r *Reporter) PredictionFailed(err error) {
	r.capture(err, sentry.LevelError, "prediction")
}

func (r *Reporter) capture(err error, level sentry.Level, stage string) {
	if r.hub == nil || err == nil {
		return
	}
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		scope.SetTag("stage", stage)
		scope.SetTag("schema_version", screening.SchemaVersion)
		r.hub.CaptureException(err)
	})
}
