package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rotisserie/eris"
)

const namespace = "rads2ioda"

// Metrics holds the counters and histograms of a conversion run.
type Metrics struct {
	FilesConverted     prometheus.Counter
	FilesSkipped       prometheus.Counter
	FilesFailed        prometheus.Counter
	Locations          prometheus.Counter
	ConversionDuration prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates the metrics on a registry of their own.
func NewMetrics() *Metrics {
	m := &Metrics{
		FilesConverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_converted_total",
			Help:      "RADS files converted to IODA.",
		}),
		FilesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_skipped_total",
			Help:      "Batch candidates absent from the input directory.",
		}),
		FilesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_failed_total",
			Help:      "Files whose conversion failed.",
		}),
		Locations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "locations_total",
			Help:      "Observation locations written.",
		}),
		ConversionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Read, assemble and write time of one file.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.FilesConverted,
		m.FilesSkipped,
		m.FilesFailed,
		m.Locations,
		m.ConversionDuration,
	)

	return m
}

// WriteTextfile writes the metrics in the text exposition format, for the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return eris.Wrapf(err, "observability: write metrics to %s", path)
	}
	return nil
}
