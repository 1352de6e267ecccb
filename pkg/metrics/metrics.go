package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reservation transitions tracked by the transitions counter
const (
	TransitionCreated   = "created"
	TransitionConfirmed = "confirmed"
	TransitionCancelled = "cancelled"
	TransitionExpired   = "expired"
	TransitionPromoted  = "promoted"
)

// Metrics собирает метрики бронирований на собственном registry
type Metrics struct {
	registry *prometheus.Registry

	transitions    *prometheus.CounterVec
	waitlistJoins  *prometheus.CounterVec
	rejected       *prometheus.CounterVec
	availableSlots *prometheus.GaugeVec
	waitlistLength *prometheus.GaugeVec
	sweepDuration  prometheus.Histogram
}

// New регистрирует метрики с префиксом serviceName
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reservation_transitions_total",
			Help:      "Reservation lifecycle transitions by experience kind.",
		}, []string{"kind", "transition"}),
		waitlistJoins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "waitlist_joins_total",
			Help:      "Waitlist requests registered by experience kind.",
		}, []string{"kind"}),
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reservations_rejected_total",
			Help:      "Reservation attempts refused, by reason.",
		}, []string{"reason"}),
		availableSlots: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "experience_available_slots",
			Help:      "Available slots per experience at the last change.",
		}, []string{"experience_id"}),
		waitlistLength: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "experience_waitlist_length",
			Help:      "Waitlist requests per experience at the last change.",
		}, []string{"experience_id"}),
		sweepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "expiry_sweep_duration_seconds",
			Help:      "Duration of a full expiry sweep.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает registry, на котором зарегистрированы метрики
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Nil-безопасные методы: сервисы могут работать с выключенными метриками

func (m *Metrics) RecordTransition(kind, transition string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(kind, transition).Inc()
}

func (m *Metrics) RecordWaitlistJoin(kind string) {
	if m == nil {
		return
	}
	m.waitlistJoins.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordRejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) SetAvailability(experienceID string, availableSlots, waitlistLength int) {
	if m == nil {
		return
	}
	m.availableSlots.WithLabelValues(experienceID).Set(float64(availableSlots))
	m.waitlistLength.WithLabelValues(experienceID).Set(float64(waitlistLength))
}

func (m *Metrics) ObserveSweep(seconds float64) {
	if m == nil {
		return
	}
	m.sweepDuration.Observe(seconds)
}
