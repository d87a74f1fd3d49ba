package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	routes        *prometheus.CounterVec
	nodesExplored *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadnav_http_requests_total",
			Help: "number of http requests by method, route and status code",
		}, []string{"method", "route", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roadnav_http_request_duration_seconds",
			Help:    "http request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		routes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "roadnav_route_queries_total",
			Help: "route queries by algorithm, outcome and cache hit",
		}, []string{"algorithm", "found", "cached"}),
		nodesExplored: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "roadnav_route_nodes_explored",
			Help:    "nodes closed by one route search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"algorithm"}),
	}
	reg.MustRegister(m.requests, m.latency, m.routes, m.nodesExplored)
	return m
}

func (m *Metrics) ObserveRoute(algo string, found, cached bool, nodesExplored int) {
	m.routes.WithLabelValues(algo, strconv.FormatBool(found), strconv.FormatBool(cached)).Inc()
	if !cached {
		m.nodesExplored.WithLabelValues(algo).Observe(float64(nodesExplored))
	}
}

// PromeHttpMiddleware records count and latency of every request under its chi route pattern.
func PromeHttpMiddleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			m.latency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
