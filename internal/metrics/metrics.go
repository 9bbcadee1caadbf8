package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_builder_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaign_builder_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Draft metrics
	DraftsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campaign_builder_drafts_created_total",
			Help: "Total campaign drafts opened",
		},
	)

	DraftsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_builder_drafts_submitted_total",
			Help: "Total drafts handed off for sending",
		},
		[]string{"status"}, // "scheduled" or "sent"
	)

	// Generation metrics
	Generations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_builder_generations_total",
			Help: "Content generation requests by outcome",
		},
		[]string{"outcome"}, // applied, failed, discarded, rejected
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "campaign_builder_generation_duration_seconds",
			Help:    "Content generator latency",
			Buckets: []float64{.1, .5, 1, 2, 3, 5, 10, 30},
		},
	)

	// Worker metrics
	Deliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_builder_deliveries_total",
			Help: "Per contact, per channel sends by status",
		},
		[]string{"channel", "status"},
	)
)
