package metrics

import "github.com/prometheus/client_golang/prometheus"

type Counter interface {
	Inc(labels ...string)
}

type Counters struct {
	LogsCreated Counter

	AuthAttempts Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func NewPrometheusCounter(name, help string, labels []string) *PrometheusCounter {
	c := &PrometheusCounter{
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: name,
			Help: help,
		}, labels),
	}
	prometheus.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func New() *Counters {
	return &Counters{
		LogsCreated: NewPrometheusCounter(
			"logs_created_total",
			"Number of log records persisted",
			[]string{"channel", "level"},
		),
		AuthAttempts: NewPrometheusCounter(
			"auth_attempts_total",
			"Number of authentication attempts",
			[]string{"operation", "status"},
		),
	}
}

// NewTestCounters registers on a private registry so tests can run in
// parallel without duplicate registration panics.
func NewTestCounters() *Counters {
	reg := prometheus.NewRegistry()

	logsCreated := &PrometheusCounter{
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logs_created_total",
			Help: "Number of log records persisted",
		}, []string{"channel", "level"}),
	}

	authAttempts := &PrometheusCounter{
		prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Number of authentication attempts",
		}, []string{"operation", "status"}),
	}

	reg.MustRegister(logsCreated.counter)
	reg.MustRegister(authAttempts.counter)

	return &Counters{
		LogsCreated:  logsCreated,
		AuthAttempts: authAttempts,
	}
}
