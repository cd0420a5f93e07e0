// monitor/monitor.go
package monitor

import (
	"expvar"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	ActiveRooms    prometheus.Gauge
	RoomsCreated   prometheus.Counter
	RoomsEvicted   prometheus.Counter
	PlayersJoined  prometheus.Counter
	RolesDealt     prometheus.Counter
	RequestCount   prometheus.Counter
	RequestLatency prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of registered game rooms",
		}),
		RoomsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_created_total",
			Help:      "Total number of rooms created",
		}),
		RoomsEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_evicted_total",
			Help:      "Total number of idle rooms evicted",
		}),
		PlayersJoined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "players_joined_total",
			Help:      "Total number of successful joins",
		}),
		RolesDealt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roles_dealt_total",
			Help:      "Total number of role assignment rounds",
		}),
		RequestCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled",
		}),
		RequestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_latency_seconds",
			Help:      "HTTP request handling latency",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
	}

	prometheus.MustRegister(
		m.ActiveRooms,
		m.RoomsCreated,
		m.RoomsEvicted,
		m.PlayersJoined,
		m.RolesDealt,
		m.RequestCount,
		m.RequestLatency,
	)

	return m
}

type Monitor struct {
	metrics   *Metrics
	startTime time.Time
}

func NewMonitor(namespace string) *Monitor {
	return &Monitor{
		metrics:   NewMetrics(namespace),
		startTime: time.Now(),
	}
}

func (m *Monitor) StartServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	// 额外的expvar指标
	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(m.startTime).Seconds()
	}))
	mux.Handle("/debug/vars", expvar.Handler())

	go http.ListenAndServe(addr, mux)
}

func (m *Monitor) RoomCreated(activeRooms int) {
	m.metrics.RoomsCreated.Inc()
	m.metrics.ActiveRooms.Set(float64(activeRooms))
}

func (m *Monitor) RoomEvicted(activeRooms int) {
	m.metrics.RoomsEvicted.Inc()
	m.metrics.ActiveRooms.Set(float64(activeRooms))
}

func (m *Monitor) PlayerJoined() {
	m.metrics.PlayersJoined.Inc()
}

func (m *Monitor) RolesDealt() {
	m.metrics.RolesDealt.Inc()
}

func (m *Monitor) ObserveRequest(duration time.Duration) {
	m.metrics.RequestCount.Inc()
	m.metrics.RequestLatency.Observe(duration.Seconds())
}
