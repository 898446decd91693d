package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Sessions
	SignInsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sign_ins_total",
			Help: "Sign-in attempts by result",
		},
		[]string{"result"}, // success|failure
	)
	AccessDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "access_denied_total",
			Help: "Requests redirected by an authorization gate",
		},
	)

	// Social graph & posts
	RelationshipsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relationships_total",
			Help: "Follow graph changes",
		},
		[]string{"op"}, // follow|unfollow
	)
	MicropostsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "microposts_total",
			Help: "Micropost changes",
		},
		[]string{"op"}, // create|destroy
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	initOnce sync.Once
)

// /metrics endpoint handler
var Handler = promhttp.Handler

// Init registers the collectors with the default registry; safe to call more
// than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			RequestLatency,
			SignInsTotal,
			AccessDeniedTotal,
			RelationshipsTotal,
			MicropostsTotal,
			WorkerQueueDepth,
		)
	})
}
