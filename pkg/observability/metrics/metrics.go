package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dizzycheck/platform/pkg/screening"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dizzycheck"

// Recorder exports pipeline and HTTP metrics. It implements screening.Observer.
type Recorder struct {
	screenings       *prometheus.CounterVec
	fallbacks        prometheus.Counter
	warnings         *prometheus.CounterVec
	likely           *prometheus.CounterVec
	pipelineDuration prometheus.Histogram
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	auditEvents      *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers every collector with reg. A nil reg uses the default registry.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		screenings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "screenings_total",
			Help:      "Screenings processed, by outcome.",
		}, []string{"outcome"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "normalizer_fallbacks_total",
			Help:      "Screenings predicted on unscaled features after a scaler failure.",
		}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Input warnings attached to reports.",
		}, []string{"field", "code"}),
		likely: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "likely_conditions_total",
			Help:      "Conditions at or above the likely threshold.",
		}, []string{"condition"}),
		pipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Time spent running one screening through the pipeline.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}, []string{"method", "path"}),
		auditEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_events_total",
			Help:      "Screening events consumed by the audit service, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		r.screenings,
		r.fallbacks,
		r.warnings,
		r.likely,
		r.pipelineDuration,
		r.requestsTotal,
		r.requestDuration,
		r.auditEvents,
	)
	if g, ok := reg.(prometheus.Gatherer); ok {
		r.gatherer = g
	} else {
		r.gatherer = prometheus.DefaultGatherer
	}
	return r
}

func (r *Recorder) Warned(w screening.Warning) {
	r.warnings.WithLabelValues(w.Field, w.Code).Inc()
}

func (r *Recorder) NormalizationFallback(*screening.NormalizationError) {
	r.fallbacks.Inc()
}

func (r *Recorder) PredictionFailed(error) {
	r.screenings.WithLabelValues("failed").Inc()
}

func (r *Recorder) Completed(report screening.Report, elapsed time.Duration) {
	outcome := "ok"
	if report.Degraded() {
		outcome = "degraded"
	}
	r.screenings.WithLabelValues(outcome).Inc()
	r.pipelineDuration.Observe(elapsed.Seconds())
	for _, c := range report.Likely {
		r.likely.WithLabelValues(string(c)).Inc()
	}
}

// ObserveRequest records one served HTTP request. path should be a route template
// so label cardinality stays bounded.
func (r *Recorder) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	r.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveAuditEvent counts consumed events; result is "stored", "skipped" or "failed".
func (r *Recorder) ObserveAuditEvent(result string) {
	r.auditEvents.WithLabelValues(result).Inc()
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
