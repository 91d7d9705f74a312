package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Workflow metrics
	RoomAssignments  *prometheus.CounterVec
	AdmissionChanges *prometheus.CounterVec

	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	Transactions       *prometheus.CounterVec

	// Cache metrics
	CacheRequests *prometheus.CounterVec
}

// NewMetrics creates all application metrics and registers them with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RoomAssignments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "room_assignments_total",
			Help:      "Total number of room assignment operations by outcome",
		}, []string{"operation", "result"}),
		AdmissionChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "admission_status_changes_total",
			Help:      "Total number of admission status transitions",
		}, []string{"from", "to"}),

		// Database metrics
		DatabaseOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		Transactions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "transactions_total",
			Help:      "Total number of database transactions by outcome",
		}, []string{"outcome"}),

		CacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Total number of cache lookups",
		}, []string{"result"}),
	}
}

// The helpers below are safe on a nil *Metrics so tests can skip metrics.

func (m *Metrics) ObserveAssignment(operation, result string) {
	if m == nil {
		return
	}
	m.RoomAssignments.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) ObserveAdmissionChange(from, to string) {
	if m == nil {
		return
	}
	m.AdmissionChanges.WithLabelValues(from, to).Inc()
}

func (m *Metrics) ObserveDBOperation(operation string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.DatabaseOperations.WithLabelValues(operation, status).Inc()
}

func (m *Metrics) ObserveTransaction(committed bool) {
	if m == nil {
		return
	}
	outcome := "commit"
	if !committed {
		outcome = "rollback"
	}
	m.Transactions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequests.WithLabelValues(result).Inc()
}
