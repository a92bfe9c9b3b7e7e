// Package catalog resolves the RADS files a run converts.
package catalog

import (
	"time"

	"github.com/rotisserie/eris"
)

// ErrInvalidDate is wrapped by every date parsing error.
var ErrInvalidDate = eris.New("invalid date")

const (
	fileDateLayout = "2006010215" // YYYYMMDDHH
	calendarLayout = "20060102"   // YYYYMMDD
	ordinalLayout  = "2006002"    // YYYYDDD
)

// ParseFileDate parses the YYYYMMDDHH date of a single-file run.
func ParseFileDate(s string, loc *time.Location) (time.Time, error) {
	if len(s) != len(fileDateLayout) || !digits(s) {
		return time.Time{}, eris.Wrapf(ErrInvalidDate, "%q: want YYYYMMDDHH", s)
	}
	t, err := time.ParseInLocation(fileDateLayout, s, loc)
	if err != nil {
		return time.Time{}, eris.Wrapf(ErrInvalidDate, "%q: %v", s, err)
	}
	return t, nil
}

// ParseDay parses a batch bound given either as YYYYMMDD or as YYYYDDD. The
// form is chosen by length alone.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	var layout string
	switch len(s) {
	case len(calendarLayout):
		layout = calendarLayout
	case len(ordinalLayout):
		layout = ordinalLayout
	default:
		return time.Time{}, eris.Wrapf(ErrInvalidDate, "%q: want YYYYMMDD or YYYYDDD", s)
	}
	if !digits(s) {
		return time.Time{}, eris.Wrapf(ErrInvalidDate, "%q: not a number", s)
	}
	t, err := time.ParseInLocation(layout, s, loc)
	if err != nil {
		return time.Time{}, eris.Wrapf(ErrInvalidDate, "%q: %v", s, err)
	}
	return t, nil
}

// YearDay formats t as YYYYDDD.
func YearDay(t time.Time) string {
	return t.Format(ordinalLayout)
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
