package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	InvoicesGeneratedTotal prometheus.Counter
	InvoiceUploadFailures  prometheus.Counter
	CarrierLookupsTotal    *prometheus.CounterVec
	WorkflowStartsTotal    *prometheus.CounterVec
}

func NewCollector(serviceName string) *Collector {
	return &Collector{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		InvoicesGeneratedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "fulfillment",
			Name:      "invoices_generated_total",
			Help:      "Total invoices rendered and uploaded.",
		}),

		InvoiceUploadFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "fulfillment",
			Name:      "invoice_upload_failures_total",
			Help:      "Invoice uploads that failed. Alert if growing.",
		}),

		CarrierLookupsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "fulfillment",
			Name:      "carrier_lookups_total",
			Help:      "Carrier recognitions by resolved carrier.",
		}, []string{"carrier"}),

		WorkflowStartsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "fulfillment",
			Name:      "workflow_starts_total",
			Help:      "Step Functions executions started by outcome.",
		}, []string{"outcome"}),
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
