package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var apiRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "schoolctl",
		Name:      "api_requests_total",
		Help:      "Registry API requests issued, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

func observeRequest(endpoint string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	apiRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}
