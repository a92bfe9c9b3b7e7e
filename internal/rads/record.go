package rads

// Record holds the columns read from one RADS pass file. All slices have
// NLocs elements.
type Record struct {
	NLocs int

	// Location metadata
	Latitude  []float64
	Longitude []float64
	DateTime  []int64 // seconds since the TimeBase epoch

	// Sea level anomaly, exactly as stored in the file.
	SLA []float64

	// Attributes of the sla variable, copied verbatim.
	Units     string
	FillValue any
}
