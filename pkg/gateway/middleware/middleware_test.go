package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

type fakeObserver struct {
	mu     sync.Mutex
	paths  []string
	status []int
}

func (f *fakeObserver) ObserveRequest(_ string, path string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	f.status = append(f.status, status)
}

func TestLoggingSetsRequestID(t *testing.T) {
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(RequestIDHeader) == "" {
			t.Fatal("expected request id on inbound request")
		}
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Fatal("expected request id on response")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc" {
		t.Fatalf("expected propagated id abc, got %q", got)
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := CORS(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { t.Fatal("preflight reached handler") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestInstrumentUsesRouteTemplate(t *testing.T) {
	obs := &fakeObserver{}
	router := mux.NewRouter()
	router.Use(Instrument(obs))
	router.HandleFunc("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	if len(obs.paths) != 1 || obs.paths[0] != "/items/{id}" || obs.status[0] != http.StatusAccepted {
		t.Fatalf("unexpected observations %v %v", obs.paths, obs.status)
	}
}

type memoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (m *memoryCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	m.counts[key]++
	return m.counts[key], nil
}

func TestWindowLimiter(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewWindowLimiter(&memoryCounter{}, 2, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if ok, _ := l.Allow(context.Background(), "10.0.0.1"); !ok {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if ok, _ := l.Allow(context.Background(), "10.0.0.1"); ok {
		t.Fatal("third request in window should be rejected")
	}
	if ok, _ := l.Allow(context.Background(), "10.0.0.2"); !ok {
		t.Fatal("other clients have their own window")
	}

	now = now.Add(time.Minute)
	if ok, _ := l.Allow(context.Background(), "10.0.0.1"); !ok {
		t.Fatal("next window should reset the count")
	}
}

func TestLocalLimiterRefills(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewLocalLimiter(1, 1)
	l.now = func() time.Time { return now }

	if ok, _ := l.Allow(context.Background(), "a"); !ok {
		t.Fatal("first request should be allowed")
	}
	if ok, _ := l.Allow(context.Background(), "a"); ok {
		t.Fatal("bucket should be empty")
	}
	now = now.Add(time.Second)
	if ok, _ := l.Allow(context.Background(), "a"); !ok {
		t.Fatal("bucket should refill after one second")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	l := NewLocalLimiter(0, 1)
	h := RateLimit(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req.RemoteAddr = "192.0.2.1:5678"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for same host, got %d", rec.Code)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	l := NewWindowLimiter(&memoryCounter{err: errors.New("redis down")}, 1, time.Minute)
	h := RateLimit(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected request through when limiter fails, got %d", rec.Code)
	}
}
