package audit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dizzycheck/platform/pkg/common/models"
	"github.com/dizzycheck/platform/pkg/serving"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu       sync.Mutex
	outcomes []models.ScreeningOutcome
	err      error
}

func (m *memoryStore) Record(_ context.Context, o models.ScreeningOutcome) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, o)
	return nil
}

func (m *memoryStore) Recent(_ context.Context, limit int) ([]serving.ScreeningLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var logs []serving.ScreeningLog
	for i := len(m.outcomes) - 1; i >= 0 && len(logs) < limit; i-- {
		logs = append(logs, serving.NewScreeningLog(m.outcomes[i]))
	}
	return logs, nil
}

func (m *memoryStore) Summary(context.Context) (serving.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := serving.Summary{Total: int64(len(m.outcomes)), Likely: map[string]int64{}}
	for _, o := range m.outcomes {
		if o.Failed {
			s.Failed++
		}
		for _, name := range o.Likely {
			s.Likely[name]++
		}
	}
	return s, nil
}

type countingObserver struct {
	results []string
}

func (c *countingObserver) ObserveAuditEvent(result string) {
	c.results = append(c.results, result)
}

func completedEvent(likely ...string) models.Event {
	outcome := models.ScreeningOutcome{
		ScreeningID:   uuid.New().String(),
		SchemaVersion: "dizzycheck-v1",
		Probabilities: map[string]float64{"Vertigo": 0.6},
		Likely:        likely,
		Scaled:        true,
	}
	return models.Event{ID: uuid.New().String(), Type: models.EventScreeningCompleted, Data: outcome.ToEventData(), Timestamp: time.Now().UTC()}
}

func TestHandleEventStoresOutcome(t *testing.T) {
	store := &memoryStore{}
	obs := &countingObserver{}
	svc := NewService(store, obs)

	require.NoError(t, svc.HandleEvent(context.Background(), completedEvent("Vertigo")))
	require.Len(t, store.outcomes, 1)
	assert.Equal(t, []string{"Vertigo"}, store.outcomes[0].Likely)
	assert.Equal(t, []string{"stored"}, obs.results)
}

func TestHandleEventRoundTripsThroughJSON(t *testing.T) {
	raw, err := json.Marshal(completedEvent("Vertigo", "PPPD"))
	require.NoError(t, err)
	var event models.Event
	require.NoError(t, json.Unmarshal(raw, &event))

	store := &memoryStore{}
	require.NoError(t, NewService(store, nil).HandleEvent(context.Background(), event))
	assert.Equal(t, []string{"Vertigo", "PPPD"}, store.outcomes[0].Likely)
	assert.InDelta(t, 0.6, store.outcomes[0].Probabilities["Vertigo"], 1e-9)
}

func TestHandleEventSkipsUnknownTypes(t *testing.T) {
	store := &memoryStore{}
	obs := &countingObserver{}
	err := NewService(store, obs).HandleEvent(context.Background(), models.Event{Type: "something.else"})
	require.NoError(t, err)
	assert.Empty(t, store.outcomes)
	assert.Equal(t, []string{"skipped"}, obs.results)
}

func TestHandleEventReturnsStoreErrors(t *testing.T) {
	store := &memoryStore{err: errors.New("db down")}
	err := NewService(store, nil).HandleEvent(context.Background(), completedEvent())
	assert.Error(t, err)
}

func TestAuditEndpoints(t *testing.T) {
	store := &memoryStore{}
	svc := NewService(store, nil)
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.HandleEvent(context.Background(), completedEvent("Migraine")))
	}
	router := mux.NewRouter()
	NewHTTPHandler(svc).Register(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/screenings?limit=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var recent struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recent))
	assert.Equal(t, 2, recent.Count)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/summary", nil))
	var summary serving.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, int64(3), summary.Total)
	assert.Equal(t, int64(3), summary.Likely["Migraine"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audit/screenings?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
