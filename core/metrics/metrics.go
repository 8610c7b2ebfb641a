// Package metrics exposes Prometheus counters for the webhook pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsTotal counts processed inbound events by outcome
	// (ok, duplicate, ignored, store_error).
	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lodgebot",
		Name:      "events_total",
		Help:      "Inbound conversation events by outcome.",
	}, []string{"outcome"})

	// SendsTotal counts outbound gateway calls by form and result.
	SendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lodgebot",
		Name:      "sends_total",
		Help:      "Outbound messages by form and result.",
	}, []string{"form", "result"})

	// WebhookRequestsTotal counts webhook HTTP requests by method and code.
	WebhookRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lodgebot",
		Name:      "webhook_requests_total",
		Help:      "Webhook HTTP requests by method and status code.",
	}, []string{"method", "code"})

	// ListingsConfirmedTotal counts confirmed listings.
	ListingsConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lodgebot",
		Name:      "listings_confirmed_total",
		Help:      "Listings confirmed by landlords.",
	})
)
