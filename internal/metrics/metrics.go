package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector of the service. Methods are safe on a nil
// receiver so components can run without metrics.
type Registry struct {
	reg *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	BidsTotal           *prometheus.CounterVec
	BidRejectionsTotal  *prometheus.CounterVec
	BidCommitDuration   prometheus.Histogram
	LockWaitDuration    prometheus.Histogram
	SweepsTotal         *prometheus.CounterVec
	AuctionsCompleted   prometheus.Counter
	WonNotifications    prometheus.Counter
	RealtimeClients     prometheus.Gauge
	RealtimeDropped     prometheus.Counter
}

// NewRegistry creates the collectors on a dedicated prometheus registry
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "path"},
		),
		BidsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_bids_total",
				Help: "Bid submissions by outcome",
			},
			[]string{"result"},
		),
		BidRejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_bid_rejections_total",
				Help: "Rejected bids by reason",
			},
			[]string{"reason"},
		),
		BidCommitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "auction_bid_commit_duration_seconds",
			Help:    "Time spent inside the per-auction critical section",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		LockWaitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "auction_lock_wait_duration_seconds",
			Help:    "Time spent waiting for the per-auction critical section",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5},
		}),
		SweepsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auction_sweeps_total",
				Help: "Lifecycle sweeps by result",
			},
			[]string{"result"},
		),
		AuctionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auction_completed_total",
			Help: "Auctions moved to COMPLETED by the sweep",
		}),
		WonNotifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auction_won_notifications_total",
			Help: "Won notifications created by the sweep",
		}),
		RealtimeClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "realtime_connected_clients",
			Help: "Currently connected websocket clients",
		}),
		RealtimeDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "realtime_dropped_events_total",
			Help: "Realtime events dropped as stale or for slow clients",
		}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.HTTPRequestsTotal,
		r.HTTPRequestDuration,
		r.BidsTotal,
		r.BidRejectionsTotal,
		r.BidCommitDuration,
		r.LockWaitDuration,
		r.SweepsTotal,
		r.AuctionsCompleted,
		r.WonNotifications,
		r.RealtimeClients,
		r.RealtimeDropped,
	)
	return r
}

// Handler serves the registry in the prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer exposes the underlying registry, mostly for tests
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// GinMiddleware records count and latency of every HTTP request
func GinMiddleware(r *Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if r == nil {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())
		r.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		r.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// TrackBid counts one bid submission outcome
func (r *Registry) TrackBid(result string) {
	if r == nil {
		return
	}
	r.BidsTotal.WithLabelValues(result).Inc()
}

// TrackRejection counts one rejected bid by reason
func (r *Registry) TrackRejection(reason string) {
	if r == nil {
		return
	}
	r.BidsTotal.WithLabelValues("rejected").Inc()
	r.BidRejectionsTotal.WithLabelValues(reason).Inc()
}

// ObserveLockWait records how long a submission waited for its auction
func (r *Registry) ObserveLockWait(d time.Duration) {
	if r == nil {
		return
	}
	r.LockWaitDuration.Observe(d.Seconds())
}

// ObserveCommit records how long a submission held its auction
func (r *Registry) ObserveCommit(d time.Duration) {
	if r == nil {
		return
	}
	r.BidCommitDuration.Observe(d.Seconds())
}

// TrackSweep counts one sweep and what it did
func (r *Registry) TrackSweep(err error, completed, won int) {
	if r == nil {
		return
	}
	if err != nil {
		r.SweepsTotal.WithLabelValues("error").Inc()
	} else {
		r.SweepsTotal.WithLabelValues("ok").Inc()
	}
	r.AuctionsCompleted.Add(float64(completed))
	r.WonNotifications.Add(float64(won))
}

// ClientConnected adjusts the connected clients gauge by delta
func (r *Registry) ClientConnected(delta int) {
	if r == nil {
		return
	}
	r.RealtimeClients.Add(float64(delta))
}

// EventDropped counts one realtime event that was not delivered
func (r *Registry) EventDropped() {
	if r == nil {
		return
	}
	r.RealtimeDropped.Inc()
}
