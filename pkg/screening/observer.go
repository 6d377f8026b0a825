package screening

import "time"

// Observer receives pipeline events for metrics and error tracking. Implementations
// must be safe for concurrent use.
type Observer interface {
	Warned(w Warning)
	NormalizationFallback(err *NormalizationError)
	PredictionFailed(err error)
	Completed(report Report, elapsed time.Duration)
}

// NopObserver ignores every event. Embed it to implement a subset of Observer.
type NopObserver struct{}

func (NopObserver) Warned(Warning) {}
func (NopObserver) NormalizationFallback(*NormalizationError) {}
func (NopObserver) PredictionFailed(error) {}
func (NopObserver) Completed(Report, time.Duration) {}

// Observers fans every event out in order.
type Observers []Observer

func (o Observers) Warned(w Warning) {
	for _, obs := range o {
		obs.Warned(w)
	}
}

func (o Observers) NormalizationFallback(err *NormalizationError) {
	for _, obs := range o {
		obs.NormalizationFallback(err)
	}
}

func (o Observers) PredictionFailed(err error) {
	for _, obs := range o {
		obs.PredictionFailed(err)
	}
}

func (o Observers) Completed(report Report, elapsed time.Duration) {
	for _, obs := range o {
		obs.Completed(report, elapsed)
	}
}
