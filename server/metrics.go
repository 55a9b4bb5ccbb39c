package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics of the API.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Routes   prometheus.Histogram // Routes is the number of routes per built transaction.

	gatherer prometheus.Gatherer
}

// NewMetrics registers the API metrics with a fresh registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "sui_swap_api"
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of API requests",
		}, []string{"endpoint", "status"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		Routes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "builder",
			Name:      "routes_per_transaction",
			Help:      "Number of routes compiled into a transaction",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 16},
		}),
		gatherer: reg,
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Instrument returns an endpoint middleware counting and timing requests.
func (m *Metrics) Instrument(name string) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				status := "ok"
				if err != nil {
					status = "error"
				}
				m.Requests.WithLabelValues(name, status).Inc()
				m.Duration.WithLabelValues(name).Observe(time.Since(begin).Seconds())
			}(time.Now())

			response, err = next(ctx, request)
			if res, ok := response.(BuildTxResponse); ok && err == nil {
				m.Routes.Observe(float64(res.Routes))
			}
			return response, err
		}
	}
}
