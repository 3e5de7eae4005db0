// Package metrics holds the Prometheus collectors for the reporting
// pipeline. There is no HTTP endpoint; the registry is written to a
// textfile on exit when configured.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the application registry.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// AggregationsTotal counts report builds by kind (daily, monthly).
var AggregationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "report",
	Name:      "aggregations_total",
	Help:      "Number of report aggregations by kind",
}, []string{"kind"})

// AggregationDurationSeconds tracks time to build a report.
var AggregationDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "report",
	Name:      "aggregation_duration_seconds",
	Help:      "Time taken to aggregate a report",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
}, []string{"kind"})

// RecordsScannedTotal counts absence records read by aggregations.
var RecordsScannedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "report",
	Name:      "records_scanned_total",
	Help:      "Absence records scanned by aggregations",
})

// StoreChangesTotal counts store mutations by operation.
var StoreChangesTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "store",
	Name:      "changes_total",
	Help:      "Store mutations by operation",
}, []string{"op"})

// ExportsTotal counts exports by format.
var ExportsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "export",
	Name:      "files_total",
	Help:      "Files exported by format",
}, []string{"format"})

// ChartRendersTotal counts charts drawn onto an SVG surface by chart kind.
var ChartRendersTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "export",
	Name:      "chart_renders_total",
	Help:      "Charts rendered to SVG by kind",
}, []string{"chart"})

// WriteTextfile dumps the registry in the text exposition format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
