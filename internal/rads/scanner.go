package rads

import (
	"log/slog"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/rotisserie/eris"
)

// Names used by RADS pass files.
const (
	TimeDim = "time"
	LatVar  = "lat"
	LonVar  = "lon"
	TimeVar = "time_mjd"
	SLAVar  = "sla"
)

// ErrMalformed is wrapped by every error caused by a file that opens but does
// not have the expected structure.
var ErrMalformed = eris.New("rads: malformed file")

// Scanner reads the along-track columns of a single RADS file.
type Scanner struct {
	path  string
	nc    api.Group
	tb    TimeBase
	nlocs int
}

// Open opens a RADS file for reading and sizes it from the time dimension.
func Open(path string, tb TimeBase) (*Scanner, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "rads: open %s", path)
	}
	s := &Scanner{path: path, nc: nc, tb: tb}

	vg, err := nc.GetVarGetter(TimeVar)
	if err != nil {
		nc.Close()
		return nil, eris.Wrapf(ErrMalformed, "%s: variable %q: %v", path, TimeVar, err)
	}
	dims := vg.Dimensions()
	if len(dims) != 1 || dims[0] != TimeDim {
		nc.Close()
		return nil, eris.Wrapf(ErrMalformed, "%s: variable %q has dimensions %v, want [%s]", path, TimeVar, dims, TimeDim)
	}
	s.nlocs = int(vg.Len())
	return s, nil
}

// Close closes the scanner.
func (s *Scanner) Close() {
	s.nc.Close()
}

// NLocs returns the size of the time dimension.
func (s *Scanner) NLocs() int {
	return s.nlocs
}

// Summary returns the summary information about the file suitable for
// logging.
func (s *Scanner) Summary() []any {
	return []any{
		"file", s.path,
		"dims", []string{TimeDim},
		"vars", []string{LatVar, LonVar, TimeVar, SLAVar},
		"nlocs", s.nlocs,
	}
}

// Record reads every column of the file.
func (s *Scanner) Record() (*Record, error) {
	rec := &Record{NLocs: s.nlocs}
	var err error
	if rec.Latitude, _, err = s.floats(LatVar); err != nil {
		return nil, err
	}
	if rec.Longitude, _, err = s.floats(LonVar); err != nil {
		return nil, err
	}
	days, _, err := s.floats(TimeVar)
	if err != nil {
		return nil, err
	}
	rec.DateTime = make([]int64, len(days))
	for i, d := range days {
		rec.DateTime[i] = s.tb.Seconds(d)
	}

	var attrs api.AttributeMap
	if rec.SLA, attrs, err = s.floats(SLAVar); err != nil {
		return nil, err
	}
	if attrs == nil {
		return nil, s.malformed(SLAVar, "no attributes")
	}
	units, ok := attrs.Get("units")
	if !ok {
		return nil, s.malformed(SLAVar, "missing units attribute")
	}
	if rec.Units, ok = units.(string); !ok {
		return nil, s.malformed(SLAVar, "units attribute is %T, want string", units)
	}
	if rec.FillValue, ok = attrs.Get("_FillValue"); !ok {
		return nil, s.malformed(SLAVar, "missing _FillValue attribute")
	}
	return rec, nil
}

// floats reads a time-dimensioned numeric variable as float64, unpacking CF
// scale_factor/add_offset when present.
func (s *Scanner) floats(name string) ([]float64, api.AttributeMap, error) {
	vg, err := s.nc.GetVarGetter(name)
	if err != nil {
		return nil, nil, s.malformed(name, "%v", err)
	}
	if int(vg.Len()) != s.nlocs {
		return nil, nil, s.malformed(name, "length %d, want %d", vg.Len(), s.nlocs)
	}
	v, err := vg.Values()
	if err != nil {
		return nil, nil, eris.Wrapf(err, "rads: %s: read %q", s.path, name)
	}
	vals, ok := widen(v)
	if !ok {
		return nil, nil, s.malformed(name, "unsupported type %s", vg.GoType())
	}
	attrs := vg.Attributes()
	unpack(vals, attrs)
	return vals, attrs, nil
}

func (s *Scanner) malformed(name, format string, args ...any) error {
	return eris.Wrapf(ErrMalformed, "%s: variable %q: "+format, append([]any{s.path, name}, args...)...)
}

// unpack applies scale_factor and add_offset in place. Elements equal to the
// stored _FillValue are left untouched.
func unpack(vals []float64, attrs api.AttributeMap) {
	scale, hasScale := attrFloat(attrs, "scale_factor")
	offset, hasOffset := attrFloat(attrs, "add_offset")
	if !hasScale && !hasOffset {
		return
	}
	if !hasScale {
		scale = 1
	}
	fill, hasFill := attrFloat(attrs, "_FillValue")
	for i, v := range vals {
		if hasFill && v == fill {
			continue
		}
		vals[i] = v*scale + offset
	}
}

func attrFloat(attrs api.AttributeMap, key string) (float64, bool) {
	if attrs == nil {
		return 0, false
	}
	v, ok := attrs.Get(key)
	if !ok {
		return 0, false
	}
	return scalar(v)
}

// scalar converts a numeric attribute value to float64. Single element
// slices are accepted since attributes are always arrays on disk.
func scalar(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	vals, ok := widen(v)
	if !ok || len(vals) != 1 {
		return 0, false
	}
	return vals[0], true
}

func widen(v any) ([]float64, bool) {
	switch x := v.(type) {
	case []float64:
		return append([]float64(nil), x...), true
	case []float32:
		return convert(x), true
	case []int8:
		return convert(x), true
	case []int16:
		return convert(x), true
	case []int32:
		return convert(x), true
	case []int64:
		return convert(x), true
	case []uint8:
		return convert(x), true
	case []uint16:
		return convert(x), true
	case []uint32:
		return convert(x), true
	case []uint64:
		return convert(x), true
	}
	return nil, false
}

func convert[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32](v []T) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// Reader reads whole RADS files with a fixed time base.
type Reader struct {
	logger *slog.Logger
	tb     TimeBase
}

// NewReader creates a reader converting times with tb.
func NewReader(logger *slog.Logger, tb TimeBase) *Reader {
	return &Reader{logger: logger, tb: tb}
}

// Read opens path, reads its record and closes the file.
func (r *Reader) Read(path string) (*Record, error) {
	s, err := Open(path, r.tb)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	r.logger.Debug("RADS summary", s.Summary()...)
	return s.Record()
}
