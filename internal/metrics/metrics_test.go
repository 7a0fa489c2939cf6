package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/ufcstats/internal/logger"
)

func sampleSnapshot() logger.Snapshot {
	return logger.Snapshot{
		Counters: map[string]int64{"events.fetched": 3, "fights.skipped": 1},
		Gauges:   map[string]float64{"events.found": 4},
		Timings: map[string]logger.TimingSummary{
			"fetch.event": {Count: 3, TotalSeconds: 1.5, MaxSeconds: 0.75},
		},
	}
}

func TestNewRegistry(t *testing.T) {
	finished := time.Unix(1713045600, 0)
	reg := NewRegistry(sampleSnapshot(), finished, true)

	families, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "{" + lp.GetValue() + "}"
			}
			values[key] = m.GetGauge().GetValue()
		}
	}

	require.Equal(t, 3.0, values["ufcstats_run_count{events.fetched}"])
	require.Equal(t, 1.0, values["ufcstats_run_count{fights.skipped}"])
	require.Equal(t, 4.0, values["ufcstats_run_gauge{events.found}"])
	require.Equal(t, 3.0, values["ufcstats_run_timing_count{fetch.event}"])
	require.Equal(t, 1.5, values["ufcstats_run_timing_seconds_total{fetch.event}"])
	require.Equal(t, 0.75, values["ufcstats_run_timing_seconds_max{fetch.event}"])
	require.Equal(t, 1713045600.0, values["ufcstats_last_run_timestamp_seconds"])
	require.Equal(t, 1.0, values["ufcstats_last_run_success"])
}

func TestNewRegistry_Failure(t *testing.T) {
	reg := NewRegistry(logger.Snapshot{}, time.Now(), false)

	families, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range families {
		if mf.GetName() == "ufcstats_last_run_success" {
			found = true
			require.Equal(t, 0.0, mf.GetMetric()[0].GetGauge().GetValue())
		}
	}
	require.True(t, found)
}

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ufcstats.prom")

	require.NoError(t, WriteTextfile(path, sampleSnapshot(), time.Unix(1713045600, 0), true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	require.Contains(t, content, "# TYPE ufcstats_run_count gauge")
	require.Contains(t, content, `ufcstats_run_count{metric="events.fetched"} 3`)
	require.Contains(t, content, "ufcstats_last_run_success 1")
	require.True(t, strings.HasSuffix(content, "\n"))
}

func TestWriteTextfile_BadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"), sampleSnapshot(), time.Now(), true)
	require.Error(t, err)
}
