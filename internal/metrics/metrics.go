// Package metrics exposes Prometheus collectors for downloads and the
// equipment API.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Names of the status-labeled counters.
const (
	PagesTotal        = "giteki_pages_total"
	DownloadsTotal    = "giteki_downloads_total"
	ImportedRowsTotal = "giteki_imported_rows_total"
)

// Metrics owns a registry and the collectors registered on it.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry            *prometheus.Registry
	pagesTotal          *prometheus.CounterVec
	downloadsTotal      *prometheus.CounterVec
	importedRowsTotal   *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates a Metrics with its own registry, including the Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		pagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: PagesTotal,
				Help: "Total number of list pages fetched, labeled by status.",
			},
			[]string{"status"},
		),
		downloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: DownloadsTotal,
				Help: "Total number of spreadsheets handled, labeled by status.",
			},
			[]string{"status"},
		),
		importedRowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: ImportedRowsTotal,
				Help: "Total number of spreadsheet rows handled by the loader, labeled by status.",
			},
			[]string{"status"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "giteki_http_requests_total",
				Help: "Total number of HTTP requests, labeled by method, route and code.",
			},
			[]string{"method", "route", "code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "giteki_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
			},
			[]string{"method", "route"},
		),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.pagesTotal,
		m.downloadsTotal,
		m.importedRowsTotal,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StatusTotals gathers the counter named name and returns its value per
// status label. Statuses never observed are absent from the map.
func (m *Metrics) StatusTotals(name string) (map[string]float64, error) {
	totals := make(map[string]float64)
	if m == nil {
		return totals, nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "status" {
					totals[label.GetValue()] += metric.GetCounter().GetValue()
				}
			}
		}
	}
	return totals, nil
}

// ObservePage counts a list page fetch.
func (m *Metrics) ObservePage(status string) {
	if m == nil {
		return
	}
	m.pagesTotal.WithLabelValues(status).Inc()
}

// ObserveDownload counts a spreadsheet download attempt.
func (m *Metrics) ObserveDownload(status string) {
	if m == nil {
		return
	}
	m.downloadsTotal.WithLabelValues(status).Inc()
}

// ObserveImportedRows counts n loader rows with the given status.
func (m *Metrics) ObserveImportedRows(status string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.importedRowsTotal.WithLabelValues(status).Add(float64(n))
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
