// Package convert runs RADS files through the read, assemble and write
// stages.
package convert

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rotisserie/eris"

	"github.com/rtm0/rads2ioda/internal/catalog"
	"github.com/rtm0/rads2ioda/internal/ioda"
	"github.com/rtm0/rads2ioda/internal/observability"
	"github.com/rtm0/rads2ioda/internal/rads"
)

// Reader reads one source file.
type Reader interface {
	Read(path string) (*rads.Record, error)
}

// Options tune a Converter.
type Options struct {
	// Converter is written to the converter global attribute.
	Converter string
	// Location is the zone reference datetimes are formatted in.
	Location *time.Location
	Clock    clockwork.Clock
}

// Converter converts files one at a time.
type Converter struct {
	reader  Reader
	writer  ioda.Writer
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	name    string
	loc     *time.Location
}

// New creates a Converter.
func New(r Reader, w ioda.Writer, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Converter {
	c := &Converter{
		reader:  r,
		writer:  w,
		logger:  logger,
		metrics: metrics,
		clock:   opts.Clock,
		name:    opts.Converter,
		loc:     opts.Location,
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.loc == nil {
		c.loc = time.UTC
	}
	return c
}

// ConvertFile converts in to out. date is the nominal reference datetime of
// the file.
func (c *Converter) ConvertFile(in, out string, date time.Time) error {
	start := c.clock.Now()

	rec, err := c.reader.Read(in)
	if err != nil {
		c.metrics.FilesFailed.Inc()
		return eris.Wrapf(err, "convert: read %s", in)
	}

	obs := ioda.Assemble(rec, ioda.Provenance{
		Converter:   c.name,
		SourceFiles: in,
		Reference:   date,
		Location:    c.loc,
	})

	if err := c.writer.Write(out, obs); err != nil {
		c.metrics.FilesFailed.Inc()
		return eris.Wrapf(err, "convert: write %s", out)
	}

	took := c.clock.Since(start)
	c.metrics.FilesConverted.Inc()
	c.metrics.Locations.Add(float64(obs.NLocs()))
	c.metrics.ConversionDuration.Observe(took.Seconds())
	c.logger.Info("converted", "input", in, "output", out, "nlocs", obs.NLocs(), "took", took)
	return nil
}

// Run converts every candidate of src into outDir, in order. The first
// failure stops the run. Candidates the source skipped are counted, not
// reported as errors.
func (c *Converter) Run(ctx context.Context, src catalog.Source, outDir string) (int, error) {
	converted := 0
	defer func() {
		skipped := src.Skipped()
		c.metrics.FilesSkipped.Add(float64(skipped))
		c.logger.Info("run finished", "converted", converted, "skipped", skipped)
	}()

	for src.Scan() {
		if err := ctx.Err(); err != nil {
			return converted, eris.Wrap(err, "convert: interrupted")
		}
		cand := src.Candidate()
		out := filepath.Join(outDir, cand.OutputName())
		if err := c.ConvertFile(cand.Path, out, cand.Date); err != nil {
			return converted, err
		}
		converted++
	}
	return converted, nil
}
