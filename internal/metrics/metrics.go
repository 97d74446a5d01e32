package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lunabridge_webhook_events_total",
			Help: "Total number of webhook events received, by outcome",
		},
		[]string{"outcome"},
	)

	CRMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lunabridge_crm_requests_total",
			Help: "Total number of outbound CRM requests, by operation and status",
		},
		[]string{"operation", "status"},
	)

	CRMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "lunabridge_crm_request_duration_seconds",
			Help: "Duration of outbound CRM requests in seconds",
		},
		[]string{"operation"},
	)
)
