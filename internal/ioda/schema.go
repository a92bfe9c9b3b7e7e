// Package ioda assembles observation containers in the IODA layout and hands
// them to a writer.
package ioda

import "fmt"

// DataType tags the storage type of an IODA variable.
type DataType int

const (
	String DataType = iota
	Integer
	Long
	Float
	Double
)

var dataTypeNames = [...]string{"string", "integer", "long", "float", "double"}

func (t DataType) String() string {
	if int(t) < len(dataTypeNames) {
		return dataTypeNames[t]
	}
	return fmt.Sprintf("DataType(%d)", int(t))
}

// NetCDF default fill values.
const (
	StringFill  = "_"
	IntegerFill = int32(-2147483647)
	LongFill    = int64(-9223372036854775806)
	FloatFill   = float32(9.9692099683868690e+36)
	DoubleFill  = float64(9.9692099683868690e+36)
)

// FillValue returns the fill value for t, typed as t is stored.
func (t DataType) FillValue() any {
	switch t {
	case String:
		return StringFill
	case Integer:
		return IntegerFill
	case Long:
		return LongFill
	case Float:
		return FloatFill
	case Double:
		return DoubleFill
	}
	panic(fmt.Sprintf("ioda: no fill value for %v", t))
}

// Group is the IODA group a variable belongs to.
type Group string

const (
	MetaData Group = "MetaData"
	ObsValue Group = "ObsValue"
	ObsError Group = "ObsError"
	PreQC    Group = "PreQC"
)

// VarKey identifies one variable of the container.
type VarKey struct {
	Name  string
	Group Group
}

func (k VarKey) String() string {
	return k.Name + "@" + string(k.Group)
}

// FieldDescriptor describes one per-location metadata field and where it is
// read from.
type FieldDescriptor struct {
	Name   string
	Type   DataType
	Units  string
	Source string
}

// Key returns the MetaData variable key of the field.
func (f FieldDescriptor) Key() VarKey {
	return VarKey{Name: f.Name, Group: MetaData}
}

// LocationDim is the only dimension of a converted file.
const LocationDim = "Location"

// LocationKeys lists the metadata fields in output order.
var LocationKeys = []FieldDescriptor{
	{Name: "latitude", Type: Float, Units: "degrees_north", Source: "lat"},
	{Name: "longitude", Type: Float, Units: "degrees_east", Source: "lon"},
	{Name: "dateTime", Type: Long, Units: "seconds since 1970-01-01T00:00:00Z", Source: "time_mjd"},
}

// SSHA is the observed variable.
const SSHA = "seaSurfaceHeightAnomaly"
