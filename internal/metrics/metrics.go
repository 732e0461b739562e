// Package metrics records run statistics in Prometheus format.
// Batch runs have no scrape endpoint, so the registry is written to a
// node_exporter textfile instead:
//   - healthsites_rows_loaded_total
//   - healthsites_rows_skipped_total
//   - healthsites_facilities_emitted_total{type}
//   - healthsites_run_duration_seconds
//   - healthsites_last_success_timestamp_seconds
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder owns a private registry for one run.
type Recorder struct {
	registry *prometheus.Registry

	RowsLoaded        prometheus.Counter
	RowsSkipped       prometheus.Counter
	FacilitiesEmitted *prometheus.CounterVec
	RunDuration       prometheus.Gauge
	LastSuccess       prometheus.Gauge
}

// NewRecorder creates and registers the run metrics.
func NewRecorder() *Recorder {
	r := &Recorder{
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "healthsites_rows_loaded_total",
			Help: "Rows read from the source table",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "healthsites_rows_skipped_total",
			Help: "Rows dropped for having no facility type",
		}),
		FacilitiesEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "healthsites_facilities_emitted_total",
				Help: "Facilities written, by facility type",
			},
			[]string{"type"},
		),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "healthsites_run_duration_seconds",
			Help: "Wall time of the last run",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "healthsites_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run",
		}),
	}

	r.registry = prometheus.NewRegistry()
	r.registry.MustRegister(r.RowsLoaded, r.RowsSkipped, r.FacilitiesEmitted, r.RunDuration, r.LastSuccess)

	return r
}

// Observe records the outcome of a successful run.
func (r *Recorder) Observe(loaded, skipped int, byType map[string]int, elapsed time.Duration, now time.Time) {
	r.RowsLoaded.Add(float64(loaded))
	r.RowsSkipped.Add(float64(skipped))

	for t, n := range byType {
		r.FacilitiesEmitted.WithLabelValues(t).Add(float64(n))
	}

	r.RunDuration.Set(elapsed.Seconds())
	r.LastSuccess.Set(float64(now.Unix()))
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the registry atomically to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}

	return nil
}
