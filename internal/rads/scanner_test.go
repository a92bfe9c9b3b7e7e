package rads

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixtureVar struct {
	name  string
	vals  any
	dims  []string
	attrs map[string]any
	keys  []string
}

func writeFixture(t *testing.T, vars ...fixtureVar) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "3a_2016032.nc")
	cw, err := cdf.OpenWriter(path)
	require.NoError(t, err)
	for _, v := range vars {
		attrs, err := util.NewOrderedMap(v.keys, v.attrs)
		require.NoError(t, err)
		dims := v.dims
		if dims == nil {
			dims = []string{TimeDim}
		}
		require.NoError(t, cw.AddVar(v.name, api.Variable{
			Values:     v.vals,
			Dimensions: dims,
			Attributes: attrs,
		}))
	}
	require.NoError(t, cw.Close())
	return path
}

func slaVar(vals []float64) fixtureVar {
	return fixtureVar{
		name:  SLAVar,
		vals:  vals,
		keys:  []string{"units", "_FillValue"},
		attrs: map[string]any{"units": "m", "_FillValue": float64(-999)},
	}
}

func standardFixture(t *testing.T) string {
	return writeFixture(t,
		fixtureVar{name: LatVar, vals: []float64{10.5, -20.25, 45}},
		fixtureVar{name: LonVar, vals: []float64{100, 200.5, 359.75}},
		fixtureVar{name: TimeVar, vals: []float64{40587, 40588, 57419.5}},
		slaVar([]float64{0.12, -0.3, -999}),
	)
}

func read(path string) (*Record, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewReader(logger, NewTimeBase()).Read(path)
}

func TestRead(t *testing.T) {
	path := standardFixture(t)

	rec, err := read(path)
	require.NoError(t, err)

	assert.Equal(t, 3, rec.NLocs)
	assert.Equal(t, []float64{10.5, -20.25, 45}, rec.Latitude)
	assert.Equal(t, []float64{100, 200.5, 359.75}, rec.Longitude)
	assert.Equal(t, []int64{0, 86400, 1454328000}, rec.DateTime)
	assert.Equal(t, []float64{0.12, -0.3, -999}, rec.SLA)
	assert.Equal(t, "m", rec.Units)
	assert.Equal(t, float64(-999), rec.FillValue)
}

func TestScannerSummary(t *testing.T) {
	path := standardFixture(t)

	s, err := Open(path, NewTimeBase())
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 3, s.NLocs())
	assert.Contains(t, s.Summary(), path)
}

func TestReadPackedCoordinates(t *testing.T) {
	packed := map[string]any{"scale_factor": 1e-6, "_FillValue": int32(2147483647)}
	keys := []string{"scale_factor", "_FillValue"}
	path := writeFixture(t,
		fixtureVar{name: LatVar, vals: []int32{32500000, -1250000}, keys: keys, attrs: packed},
		fixtureVar{name: LonVar, vals: []int32{180000000, 2147483647}, keys: keys, attrs: packed},
		fixtureVar{name: TimeVar, vals: []float64{40587, 40587}},
		slaVar([]float64{1, 2}),
	)

	rec, err := read(path)
	require.NoError(t, err)

	assert.InDelta(t, 32.5, rec.Latitude[0], 1e-9)
	assert.InDelta(t, -1.25, rec.Latitude[1], 1e-9)
	assert.InDelta(t, 180, rec.Longitude[0], 1e-9)
	assert.Equal(t, float64(2147483647), rec.Longitude[1], "fill values are not unpacked")
}

func TestReadMissingFile(t *testing.T) {
	_, err := read(filepath.Join(t.TempDir(), "nope.nc"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformed)
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name string
		vars []fixtureVar
	}{
		{
			name: "missing time variable",
			vars: []fixtureVar{
				{name: LatVar, vals: []float64{1}},
				{name: LonVar, vals: []float64{1}},
				slaVar([]float64{1}),
			},
		},
		{
			name: "time on wrong dimension",
			vars: []fixtureVar{
				{name: LatVar, vals: []float64{1}},
				{name: LonVar, vals: []float64{1}},
				{name: TimeVar, vals: []float64{40587}, dims: []string{"record"}},
				slaVar([]float64{1}),
			},
		},
		{
			name: "missing latitude",
			vars: []fixtureVar{
				{name: LonVar, vals: []float64{1}},
				{name: TimeVar, vals: []float64{40587}},
				slaVar([]float64{1}),
			},
		},
		{
			name: "missing sla",
			vars: []fixtureVar{
				{name: LatVar, vals: []float64{1}},
				{name: LonVar, vals: []float64{1}},
				{name: TimeVar, vals: []float64{40587}},
			},
		},
		{
			name: "missing units",
			vars: []fixtureVar{
				{name: LatVar, vals: []float64{1}},
				{name: LonVar, vals: []float64{1}},
				{name: TimeVar, vals: []float64{40587}},
				{
					name:  SLAVar,
					vals:  []float64{1},
					keys:  []string{"_FillValue"},
					attrs: map[string]any{"_FillValue": float64(-999)},
				},
			},
		},
		{
			name: "missing fill value",
			vars: []fixtureVar{
				{name: LatVar, vals: []float64{1}},
				{name: LonVar, vals: []float64{1}},
				{name: TimeVar, vals: []float64{40587}},
				{
					name:  SLAVar,
					vals:  []float64{1},
					keys:  []string{"units"},
					attrs: map[string]any{"units": "m"},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, tt.vars...)
			_, err := read(path)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestReaderLogsSummary(t *testing.T) {
	path := standardFixture(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rec, err := NewReader(logger, NewTimeBase()).Read(path)
	require.NoError(t, err)

	assert.Equal(t, 3, rec.NLocs)
	assert.Contains(t, buf.String(), "RADS summary")
	assert.Contains(t, buf.String(), "nlocs=3")
}
