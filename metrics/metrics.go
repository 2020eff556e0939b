package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the core operations.
type Metrics struct {
	CheckinsTotal    *prometheus.CounterVec // result: ok, already_checked_in, error
	CheckoutsTotal   *prometheus.CounterVec // result: ok, no_open_session, already_checked_out, error
	LeaveDecisions   *prometheus.CounterVec // decision: Approved, Rejected
	PayrollRuns      *prometheus.CounterVec // result: ok, rejected, error
	RequestDurations *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		CheckinsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "dayflow_checkins_total",
			Help: "Total check-in attempts by result",
		}, []string{"result"}),
		CheckoutsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "dayflow_checkouts_total",
			Help: "Total check-out attempts by result",
		}, []string{"result"}),
		LeaveDecisions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "dayflow_leave_decisions_total",
			Help: "Leave decisions applied by HR",
		}, []string{"decision"}),
		PayrollRuns: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "dayflow_payroll_runs_total",
			Help: "Payroll disbursement attempts by result",
		}, []string{"result"}),
		RequestDurations: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dayflow_request_duration_seconds",
			Help:    "Duration of API requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}
