package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", "json")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "nlocs", 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"nlocs":3`)
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "debug", "text")
	require.NoError(t, err)

	logger.Debug("converted", "file", "3a_2016032.nc")
	assert.Contains(t, buf.String(), "file=3a_2016032.nc")
}

func TestNewLoggerInvalid(t *testing.T) {
	_, err := NewLogger(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)

	_, err = NewLogger(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

func TestMetricsFreshRegistry(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.FilesConverted.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.FilesConverted))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.FilesConverted))
}

func TestMetricsWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.FilesSkipped.Add(2)
	m.Locations.Add(3)

	path := filepath.Join(t.TempDir(), "rads2ioda.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rads2ioda_files_skipped_total 2")
	assert.Contains(t, string(data), "rads2ioda_locations_total 3")
}
