package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	FunctionCalls       *prometheus.CounterVec
	ModelLatency        *prometheus.HistogramVec
	AssistantIterations prometheus.Histogram
	BookingsCreated     *prometheus.CounterVec
	Notifications       *prometheus.CounterVec
}

// NewMetrics registers the service metrics on reg (the default registerer when nil).
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		FunctionCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "function_calls_total",
			Help:      "Model-issued function calls by name and outcome",
		}, []string{"name", "outcome"}),
		ModelLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_latency_seconds",
			Help:      "Latency of Gemini requests",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"model", "status"}),
		AssistantIterations: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assistant_iterations",
			Help:      "Model round trips needed per booking-chat turn",
			Buckets:   []float64{1, 2, 3, 4, 5, 8},
		}),
		BookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Bookings persisted, by channel",
		}, []string{"channel"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification attempts by target and outcome",
		}, []string{"target", "outcome"}),
	}
}

func (m *Metrics) ObserveFunctionCall(name, outcome string) {
	if m == nil {
		return
	}
	m.FunctionCalls.WithLabelValues(name, outcome).Inc()
}

func (m *Metrics) ObserveModelLatency(model string, started time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ModelLatency.WithLabelValues(model, status).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveIterations(n int) {
	if m == nil {
		return
	}
	m.AssistantIterations.Observe(float64(n))
}

func (m *Metrics) BookingCreated(channel string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(channel).Inc()
}

func (m *Metrics) NotificationSent(target string, err error) {
	if m == nil {
		return
	}
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	m.Notifications.WithLabelValues(target, outcome).Inc()
}
