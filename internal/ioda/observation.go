package ioda

import (
	"fmt"
	"time"

	"github.com/rtm0/rads2ioda/internal/rads"
)

// IODAVersion is written to the ioda_version global attribute.
const IODAVersion = int32(2)

const description = "Sea Surface Height Anomaly (SSHA) observations from NESDIS"

// ReferenceLayout formats the datetimeReference global attribute.
const ReferenceLayout = "2006-01-02T15:04:05-0700"

// Observation is everything a writer needs to serialize one file.
type Observation struct {
	Keys        []VarKey // write order
	Data        map[VarKey]any
	Dims        map[string]int
	VarDims     map[string][]string
	VarAttrs    *VarAttrs
	GlobalAttrs Attributes
}

// Provenance describes where an observation file comes from.
type Provenance struct {
	Converter   string
	SourceFiles string
	Reference   time.Time
	Location    *time.Location
}

// NLocs returns the size of the location dimension.
func (o *Observation) NLocs() int {
	return o.Dims[LocationDim]
}

// Dimensions returns the dimension names of a variable.
func (o *Observation) Dimensions(key VarKey) []string {
	if dims, ok := o.VarDims[key.Name]; ok {
		return dims
	}
	return []string{LocationDim}
}

func (o *Observation) add(key VarKey, vals any) {
	if _, ok := o.Data[key]; !ok {
		o.Keys = append(o.Keys, key)
	}
	o.Data[key] = vals
}

// Assemble maps a RADS record onto the IODA layout.
func Assemble(rec *rads.Record, p Provenance) *Observation {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	n := rec.NLocs
	obs := &Observation{
		Data:     make(map[VarKey]any),
		Dims:     map[string]int{LocationDim: n},
		VarDims:  map[string][]string{SSHA: {LocationDim}},
		VarAttrs: NewVarAttrs(),
		GlobalAttrs: Attributes{
			{Name: "converter", Value: p.Converter},
			{Name: "ioda_version", Value: IODAVersion},
			{Name: "sourceFiles", Value: p.SourceFiles},
			{Name: "datetimeReference", Value: p.Reference.In(loc).Format(ReferenceLayout)},
			{Name: "description", Value: description},
		},
	}

	for _, f := range LocationKeys {
		key := f.Key()
		obs.VarAttrs.Set(key, "_FillValue", f.Type.FillValue())
		obs.VarAttrs.Set(key, "units", f.Units)
		obs.add(key, metadataColumn(rec, f))
	}

	val := VarKey{Name: SSHA, Group: ObsValue}
	oerr := VarKey{Name: SSHA, Group: ObsError}
	qc := VarKey{Name: SSHA, Group: PreQC}

	obs.VarAttrs.Set(val, "units", rec.Units)
	obs.VarAttrs.Set(oerr, "units", rec.Units)
	obs.VarAttrs.Set(val, "_FillValue", rec.FillValue)
	obs.VarAttrs.Set(oerr, "_FillValue", rec.FillValue)
	obs.VarAttrs.Set(qc, "_FillValue", IntegerFill)

	obs.add(val, cast(rec.SLA, Float))
	obs.add(oerr, make([]float32, n))
	obs.add(qc, make([]int32, n))
	return obs
}

func metadataColumn(rec *rads.Record, f FieldDescriptor) any {
	switch f.Source {
	case rads.LatVar:
		return cast(rec.Latitude, f.Type)
	case rads.LonVar:
		return cast(rec.Longitude, f.Type)
	case rads.TimeVar:
		return append([]int64(nil), rec.DateTime...)
	}
	panic(fmt.Sprintf("ioda: no column for source %q", f.Source))
}

func cast(vals []float64, t DataType) any {
	switch t {
	case Float:
		out := make([]float32, len(vals))
		for i, v := range vals {
			out[i] = float32(v)
		}
		return out
	case Double:
		return append([]float64(nil), vals...)
	case Integer:
		out := make([]int32, len(vals))
		for i, v := range vals {
			out[i] = int32(v)
		}
		return out
	case Long:
		out := make([]int64, len(vals))
		for i, v := range vals {
			out[i] = int64(v)
		}
		return out
	}
	panic(fmt.Sprintf("ioda: cannot cast numbers to %v", t))
}
