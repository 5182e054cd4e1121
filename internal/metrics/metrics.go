// Package metrics holds Prometheus instruments that are used across the
// gateway.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// FieldNone is the field label for records that pass validation.
const FieldNone = "none"

// Insert outcome labels.
const (
	OutcomeOK         = "ok"
	OutcomeConnection = "connection_error"
	OutcomeExecution  = "execution_error"
	OutcomeNoRows     = "no_rows"
	OutcomeBinding    = "binding_error"
)

var (
	ValidationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employee_validation_total",
			Help: "Employee records validated, by result (pass or fail) and failing field.",
		}, []string{"result", "field"})

	InsertTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "employee_insert_total",
			Help: "Stored-procedure inserts, by outcome.",
		}, []string{"outcome"})

	PoolOpenTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "db_pool_open_total",
			Help: "Cumulative number of database pools successfully established.",
		})

	PoolOpenErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "db_pool_open_errors_total",
			Help: "Cumulative number of failed pool establishment attempts.",
		})
)

func init() {
	prometheus.MustRegister(
		ValidationTotal,
		InsertTotal,
		PoolOpenTotal,
		PoolOpenErrorsTotal,
	)
}
