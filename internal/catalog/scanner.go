package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// DefaultSatellites are the RADS mission codes converted in batch mode.
var DefaultSatellites = []string{"3a", "3b", "j3"}

// NominalHour is the hour of day assigned to every file of a batch run.
const NominalHour = 12

// Candidate is one file to convert.
type Candidate struct {
	Satellite string
	Path      string
	Date      time.Time
}

// OutputName returns the IODA file name for the candidate.
func (c Candidate) OutputName() string {
	if c.Satellite == "" {
		return fmt.Sprintf("rads_sla_%s.nc", c.Date.Format(fileDateLayout))
	}
	return fmt.Sprintf("rads_sla_%s_%s.nc", c.Satellite, c.Date.Format(fileDateLayout))
}

// Source is a lazy sequence of candidates.
type Source interface {
	Scan() bool
	Candidate() Candidate
	Skipped() int
}

// SingleSource yields one explicit file. Its existence is not checked.
type SingleSource struct {
	c    Candidate
	done bool
}

// Single returns a source for one explicit file.
func Single(path string, date time.Time) *SingleSource {
	return &SingleSource{c: Candidate{Path: path, Date: date}}
}

func nominal(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, NominalHour, 0, 0, 0, day.Location())
}

// Scan advances to the only candidate.
func (s *SingleSource) Scan() bool {
	if s.done {
		return false
	}
	s.done = true
	return true
}

// Candidate returns the file.
func (s *SingleSource) Candidate() Candidate {
	return s.c
}

// Skipped is always zero.
func (s *SingleSource) Skipped() int {
	return 0
}

// Scanner walks a day range and yields the {satellite}_{YYYYDDD}.nc files
// present in a directory. Absent files are skipped and counted.
type Scanner struct {
	fsys       fs.FS
	dir        string
	satellites []string
	day        time.Time
	end        time.Time
	sat        int
	cur        Candidate
	missing    []string
}

// NewScanner creates a scanner over dir for the inclusive range [start, end].
func NewScanner(dir string, start, end time.Time, satellites []string) *Scanner {
	return NewScannerFS(os.DirFS(dir), dir, start, end, satellites)
}

// NewScannerFS is like NewScanner but checks existence in fsys. Candidate
// paths are still joined onto dir.
func NewScannerFS(fsys fs.FS, dir string, start, end time.Time, satellites []string) *Scanner {
	return &Scanner{
		fsys:       fsys,
		dir:        dir,
		satellites: satellites,
		day:        midnight(start),
		end:        midnight(end),
	}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Scan advances to the next existing file.
func (s *Scanner) Scan() bool {
	for !s.day.After(s.end) {
		if s.sat >= len(s.satellites) {
			s.day = s.day.AddDate(0, 0, 1)
			s.sat = 0
			continue
		}
		sat := s.satellites[s.sat]
		s.sat++

		name := fmt.Sprintf("%s_%s.nc", sat, YearDay(s.day))
		if !s.exists(name) {
			s.missing = append(s.missing, name)
			continue
		}
		s.cur = Candidate{
			Satellite: sat,
			Path:      filepath.Join(s.dir, name),
			Date:      nominal(s.day),
		}
		return true
	}
	return false
}

func (s *Scanner) exists(name string) bool {
	fi, err := fs.Stat(s.fsys, name)
	return err == nil && fi.Mode().IsRegular()
}

// Candidate returns the file found by the last Scan.
func (s *Scanner) Candidate() Candidate {
	return s.cur
}

// Skipped returns the number of absent files passed over so far.
func (s *Scanner) Skipped() int {
	return len(s.missing)
}

// Missing returns the names of the absent files passed over so far.
func (s *Scanner) Missing() []string {
	return append([]string(nil), s.missing...)
}
