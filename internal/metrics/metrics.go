// Package metrics exports the run metrics of a batch run in the Prometheus text
// format, for collection through the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pfrederiksen/ufcstats/internal/logger"
)

const namespace = "ufcstats"

// NewRegistry builds a registry holding the values of snap together with the
// outcome and completion time of the run.
func NewRegistry(snap logger.Snapshot, finished time.Time, success bool) *prometheus.Registry {
	counts := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_count",
		Help:      "Counter values recorded during the last run",
	}, []string{"metric"})
	gauges := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_gauge",
		Help:      "Gauge values recorded during the last run",
	}, []string{"metric"})
	timingCount := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_timing_count",
		Help:      "Number of timed operations during the last run",
	}, []string{"metric"})
	timingTotal := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_timing_seconds_total",
		Help:      "Time spent in timed operations during the last run",
	}, []string{"metric"})
	timingMax := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_timing_seconds_max",
		Help:      "Slowest timed operation during the last run",
	}, []string{"metric"})
	lastRun := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp at which the last run finished",
	})
	lastSuccess := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_success",
		Help:      "1 if the last run completed without a fatal error",
	})

	for name, v := range snap.Counters {
		counts.WithLabelValues(name).Set(float64(v))
	}
	for name, v := range snap.Gauges {
		gauges.WithLabelValues(name).Set(v)
	}
	for name, t := range snap.Timings {
		timingCount.WithLabelValues(name).Set(float64(t.Count))
		timingTotal.WithLabelValues(name).Set(t.TotalSeconds)
		timingMax.WithLabelValues(name).Set(t.MaxSeconds)
	}
	lastRun.Set(float64(finished.Unix()))
	if success {
		lastSuccess.Set(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(counts, gauges, timingCount, timingTotal, timingMax, lastRun, lastSuccess)
	return reg
}

// WriteTextfile writes the metrics to path. The file is replaced atomically.
func WriteTextfile(path string, snap logger.Snapshot, finished time.Time, success bool) error {
	if err := prometheus.WriteToTextfile(path, NewRegistry(snap, finished, success)); err != nil {
		return fmt.Errorf("writing metrics file: %w", err)
	}
	return nil
}
