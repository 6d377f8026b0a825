package tracking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dizzycheck/platform/pkg/screening"
	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryTransport struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (t *memoryTransport) Configure(sentry.ClientOptions) {}

func (t *memoryTransport) SendEvent(event *sentry.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
}

func (t *memoryTransport) Flush(time.Duration) bool { return true }

func (t *memoryTransport) FlushWithContext(context.Context) bool { return true }

func (t *memoryTransport) Close() {}

func newTestHub(t *testing.T) (*sentry.Hub, *memoryTransport) {
	transport := &memoryTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:       "https://public@example.com/1",
		Transport: transport,
	})
	require.NoError(t, err)
	return sentry.NewHub(client, sentry.NewScope()), transport
}

func TestInitWithoutDSN(t *testing.T) {
	enabled, err := Init("", "test", "dev")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestReporterCapturesFailures(t *testing.T) {
	hub, transport := newTestHub(t)
	r := NewReporter(hub)

	r.NormalizationFallback(&screening.NormalizationError{Cause: errors.New("scale vector corrupt")})
	r.PredictionFailed(errors.New("model failed"))
	r.Warned(screening.Warning{Field: "age"})

	require.Len(t, transport.events, 2)
	assert.Equal(t, sentry.LevelWarning, transport.events[0].Level)
	assert.Equal(t, "normalization", transport.events[0].Tags["stage"])
	assert.Equal(t, sentry.LevelError, transport.events[1].Level)
	assert.Equal(t, screening.SchemaVersion, transport.events[1].Tags["schema_version"])
}
