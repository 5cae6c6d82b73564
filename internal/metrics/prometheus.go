package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "studyspot"

// PrometheusRecorder exports metrics through its own Prometheus registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	signups         *prometheus.CounterVec
	logins          *prometheus.CounterVec
	listingsCreated prometheus.Counter
	listingsUpdated prometheus.Counter
	listingsDeleted prometheus.Counter
	listingsFetched prometheus.Histogram
	listingsKept    prometheus.Histogram
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewPrometheus creates a recorder with Go runtime and process collectors registered.
func NewPrometheus() *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	sizeBuckets := []float64{0, 1, 5, 10, 25, 50, 100, 200}

	r := &PrometheusRecorder{
		registry: reg,
		signups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Signup attempts by outcome.",
		}, []string{"outcome"}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		listingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_created_total",
			Help:      "Listings created.",
		}),
		listingsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_updated_total",
			Help:      "Listings updated.",
		}),
		listingsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_deleted_total",
			Help:      "Listings deleted.",
		}),
		listingsFetched: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "listing_query_fetched",
			Help:      "Listings returned by the store per query.",
			Buckets:   sizeBuckets,
		}),
		listingsKept: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "listing_query_returned",
			Help:      "Listings left after the hours filter per query.",
			Buckets:   sizeBuckets,
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Registry returns the registry backing /metrics.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// IncSignup counts a signup attempt by outcome.
func (r *PrometheusRecorder) IncSignup(outcome string) {
	r.signups.WithLabelValues(outcome).Inc()
}

// IncLogin counts a login attempt by outcome.
func (r *PrometheusRecorder) IncLogin(outcome string) {
	r.logins.WithLabelValues(outcome).Inc()
}

// IncListingCreated increments listing created counter.
func (r *PrometheusRecorder) IncListingCreated() { r.listingsCreated.Inc() }

// IncListingUpdated increments listing updated counter.
func (r *PrometheusRecorder) IncListingUpdated() { r.listingsUpdated.Inc() }

// IncListingDeleted increments listing deleted counter.
func (r *PrometheusRecorder) IncListingDeleted() { r.listingsDeleted.Inc() }

// ObserveListingQuery records listing query result sizes.
func (r *PrometheusRecorder) ObserveListingQuery(fetched, returned int) {
	r.listingsFetched.Observe(float64(fetched))
	r.listingsKept.Observe(float64(returned))
}

// ObserveHTTPRequest records one served request.
func (r *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	r.httpRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func statusLabel(status int) string {
	return strconv.Itoa(status)
}
