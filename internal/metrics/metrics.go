package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "readiness"

// Metrics exposes Prometheus collectors for assessment activity
type Metrics struct {
	sessionsStarted   *prometheus.CounterVec
	sessionsCompleted *prometheus.CounterVec
	sessionsAbandoned *prometheus.CounterVec
	responsesRejected *prometheus.CounterVec
	personas          *prometheus.CounterVec
	submitDuration    *prometheus.HistogramVec
	activeSockets     prometheus.Gauge
}

// MustNewMetrics registers the collectors with reg. Collectors that are already
// registered are reused; any other registration error panics.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "sessions", Name: "started_total",
			Help: "Assessment sessions started, by assessment type.",
		}, []string{"type"}),
		sessionsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "sessions", Name: "completed_total",
			Help: "Assessment sessions completed, by assessment type.",
		}, []string{"type"}),
		sessionsAbandoned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "sessions", Name: "abandoned_total",
			Help: "Assessment sessions abandoned, by assessment type.",
		}, []string{"type"}),
		responsesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "responses", Name: "rejected_total",
			Help: "Submitted responses rejected, by assessment type and reason.",
		}, []string{"type", "reason"}),
		personas: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "results", Name: "persona_total",
			Help: "Persona predictions of completed sessions.",
		}, []string{"type", "persona"}),
		submitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "responses", Name: "submit_duration_seconds",
			Help:    "Time spent handling one response submission.",
			Buckets: prometheus.DefBuckets,
		}, []string{"type", "status"}),
		activeSockets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "ws", Name: "connections_active",
			Help: "Open websocket connections.",
		}),
	}

	m.sessionsStarted = registerCounter(reg, m.sessionsStarted)
	m.sessionsCompleted = registerCounter(reg, m.sessionsCompleted)
	m.sessionsAbandoned = registerCounter(reg, m.sessionsAbandoned)
	m.responsesRejected = registerCounter(reg, m.responsesRejected)
	m.personas = registerCounter(reg, m.personas)
	if err := reg.Register(m.submitDuration); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			panic(err)
		}
		m.submitDuration = already.ExistingCollector.(*prometheus.HistogramVec)
	}
	if err := reg.Register(m.activeSockets); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			panic(err)
		}
		m.activeSockets = already.ExistingCollector.(prometheus.Gauge)
	}
	return m
}

func registerCounter(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return already.ExistingCollector.(*prometheus.CounterVec)
		}
		panic(err)
	}
	return c
}

func (m *Metrics) SessionStarted(assessmentType string) {
	if m == nil {
		return
	}
	m.sessionsStarted.WithLabelValues(assessmentType).Inc()
}

// SessionCompleted counts a completion and the persona it produced
func (m *Metrics) SessionCompleted(assessmentType, persona string) {
	if m == nil {
		return
	}
	m.sessionsCompleted.WithLabelValues(assessmentType).Inc()
	m.personas.WithLabelValues(assessmentType, persona).Inc()
}

func (m *Metrics) SessionAbandoned(assessmentType string) {
	if m == nil {
		return
	}
	m.sessionsAbandoned.WithLabelValues(assessmentType).Inc()
}

func (m *Metrics) ResponseRejected(assessmentType, reason string) {
	if m == nil {
		return
	}
	m.responsesRejected.WithLabelValues(assessmentType, reason).Inc()
}

// ObserveSubmit records how long a submission took with the given status label
func (m *Metrics) ObserveSubmit(assessmentType, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.submitDuration.WithLabelValues(assessmentType, status).Observe(d.Seconds())
}

func (m *Metrics) SocketOpened() {
	if m == nil {
		return
	}
	m.activeSockets.Inc()
}

func (m *Metrics) SocketClosed() {
	if m == nil {
		return
	}
	m.activeSockets.Dec()
}
