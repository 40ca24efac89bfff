package restbase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restbase_client",
			Name:      "requests_total",
			Help:      "Requests issued by the clients, by method and status code.",
		},
		[]string{"method", "code"},
	)

	authRedirectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "restbase_client",
			Name:      "auth_redirects_total",
			Help:      "Navigations triggered by 401 and 403 responses.",
		},
		[]string{"route"},
	)
)
