package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var backendRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "exactfit_backend_requests_total",
		Help: "Calls to the Exact Fit REST backend by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

func observe(endpoint string, err error) {
	outcome := "ok"
	if apiErr, ok := AsError(err); ok {
		outcome = string(apiErr.Kind)
	} else if err != nil {
		outcome = "error"
	}
	backendRequests.WithLabelValues(endpoint, outcome).Inc()
}
