// Package metrics registers the server's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts requests by method, route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mongolatlas_http_requests_total",
		Help: "HTTP requests processed, by method, route and status.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mongolatlas_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// ChatSends counts chat sends by outcome.
	ChatSends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mongolatlas_chat_sends_total",
		Help: "Chat messages forwarded to the hosted model, by outcome.",
	}, []string{"outcome"})

	// ImageGenerations counts image generations by outcome.
	ImageGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mongolatlas_image_generations_total",
		Help: "Image generation requests, by outcome.",
	}, []string{"outcome"})

	// TimelineConnections tracks open timeline websocket connections.
	TimelineConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mongolatlas_timeline_connections",
		Help: "Open timeline websocket connections.",
	})
)
