package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "danang_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})

	// CacheHits counts cache lookups by key prefix and outcome.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "danang_cache_lookups_total",
		Help: "Total number of cache lookups by outcome",
	}, []string{"prefix", "outcome"})

	// MediaProcessed counts processed uploads by bucket and result.
	MediaProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "danang_media_processed_total",
		Help: "Total number of media uploads processed",
	}, []string{"bucket", "result"})

	// MediaProcessingSeconds tracks how long thumbnail generation takes.
	MediaProcessingSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "danang_media_processing_seconds",
		Help:    "Time spent generating thumbnails for an upload",
		Buckets: prometheus.DefBuckets,
	})

	// WebsocketConnections tracks currently connected event stream clients.
	WebsocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "danang_websocket_connections",
		Help: "Number of currently connected websocket clients",
	})

	// WebsocketDrops counts outbound messages dropped because a client
	// buffer was full or its channel already closed.
	WebsocketDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "danang_websocket_drops_total",
		Help: "Total number of websocket messages dropped",
	}, []string{"reason"})

	// WebsocketEvents counts events broadcast to clients by event type.
	WebsocketEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "danang_websocket_events_total",
		Help: "Total number of events broadcast over websockets",
	}, []string{"event"})
)
