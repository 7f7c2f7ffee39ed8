package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CollaboratorRequestsTotal counts calls to the wallet and upload services by outcome.
	CollaboratorRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stations_collaborator_requests_total",
			Help: "Total number of requests sent to sibling services",
		},
		[]string{"service", "route", "result"},
	)

	CollaboratorBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stations_collaborator_breaker_state",
			Help: "Circuit breaker state per sibling service (0=closed, 1=half-open, 2=open)",
		},
		[]string{"service"},
	)

	AuthenticityChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stations_authenticity_checks_total",
			Help: "Total number of authenticity validations by result code",
		},
		[]string{"result"},
	)

	GraphqlOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stations_graphql_operations_total",
			Help: "Total number of executed GraphQL requests",
		},
		[]string{"status"},
	)
)
