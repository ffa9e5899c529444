package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ContentReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folioworks", Name: "content_reads_total", Help: "Section render-model reads by section key."},
		[]string{"section"},
	)
	ContentSaves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folioworks", Name: "content_saves_total", Help: "Section document saves by section key and outcome."},
		[]string{"section", "outcome"},
	)
	MessagesReceived = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "folioworks", Name: "messages_received_total", Help: "Accepted contact-form submissions."},
	)
	Uploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folioworks", Name: "uploads_total", Help: "Asset uploads by outcome."},
		[]string{"outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folioworks", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "folioworks", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(ContentReads)
	reg.MustRegister(ContentSaves)
	reg.MustRegister(MessagesReceived)
	reg.MustRegister(Uploads)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
