package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder counts service operations by name and outcome.
type Recorder struct {
	operations *prometheus.CounterVec
	expired    prometheus.Counter
}

func NewRecorder(registerer prometheus.Registerer) *Recorder {
	r := &Recorder{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "store_subscriptions",
				Subsystem: "service",
				Name:      "operations_total",
				Help:      "Total number of subscription operations by outcome.",
			},
			[]string{"operation", "outcome"},
		),
		expired: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "store_subscriptions",
				Subsystem: "jobs",
				Name:      "expired_total",
				Help:      "Total number of subscriptions expired by the expiration job.",
			},
		),
	}
	if registerer != nil {
		registerer.MustRegister(r.operations, r.expired)
	}
	return r
}

func (r *Recorder) ObserveOperation(operation string, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	r.operations.WithLabelValues(operation, outcome).Inc()
}

func (r *Recorder) AddExpired(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.expired.Add(float64(n))
}
