// Package metrics holds the Prometheus instruments shared by the modal
// controller, the webhook client and the HTTP host.  All collectors are
// registered with the global registry, so importing this package is enough
// to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveVisitors = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "leadmodal_active_visitors",
			Help: "Number of visitor sessions currently held in memory.",
		})

	VisitorEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leadmodal_visitor_evict_total",
			Help: "Cumulative number of visitor sessions evicted from the cache.",
		})

	ModalOpenTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadmodal_open_total",
			Help: "Modal opens by form type.",
		}, []string{"form_type"})

	AntispamBlockTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadmodal_antispam_block_total",
			Help: "Submissions stopped by the anti-spam gate, by reason.",
		}, []string{"reason"})

	WebhookOutcomeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadmodal_webhook_outcome_total",
			Help: "Webhook submissions by interpreted outcome.",
		}, []string{"outcome"})

	WebhookLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leadmodal_webhook_duration_seconds",
			Help:    "Wall time of one webhook POST, including body read.",
			Buckets: prometheus.DefBuckets,
		})
)

func init() {
	prometheus.MustRegister(
		ActiveVisitors,
		VisitorEvictTotal,
		ModalOpenTotal,
		AntispamBlockTotal,
		WebhookOutcomeTotal,
		WebhookLatency,
	)
}
