package ioda

import (
	"log/slog"
	"os"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/util"
	"github.com/rotisserie/eris"
)

// Writer serializes an observation container to path.
type Writer interface {
	Write(path string, obs *Observation) error
}

// CDFWriter writes IODA files in the NetCDF classic/CDF5 container. CDF has no
// groups, so variables are named name@Group.
type CDFWriter struct {
	logger *slog.Logger
}

// NewCDFWriter creates a new CDF writer.
func NewCDFWriter(logger *slog.Logger) *CDFWriter {
	return &CDFWriter{logger: logger}
}

// Write writes obs to path. A partially written file is removed.
func (w *CDFWriter) Write(path string, obs *Observation) error {
	cw, err := cdf.OpenWriter(path)
	if err != nil {
		return eris.Wrapf(err, "ioda: create %s", path)
	}
	if err := w.write(cw, obs); err != nil {
		cw.Close()
		os.Remove(path)
		return eris.Wrapf(err, "ioda: write %s", path)
	}
	if err := cw.Close(); err != nil {
		os.Remove(path)
		return eris.Wrapf(err, "ioda: close %s", path)
	}
	w.logger.Debug("wrote ioda file", "path", path, "vars", len(obs.Keys), "nlocs", obs.NLocs())
	return nil
}

func (w *CDFWriter) write(cw *cdf.CDFWriter, obs *Observation) error {
	for _, key := range obs.Keys {
		attrs, _ := obs.VarAttrs.Lookup(key)
		om, err := orderedMap(attrs)
		if err != nil {
			return eris.Wrapf(err, "attributes of %s", key)
		}
		err = cw.AddVar(key.String(), api.Variable{
			Values:     obs.Data[key],
			Dimensions: obs.Dimensions(key),
			Attributes: om,
		})
		if err != nil {
			return eris.Wrapf(err, "variable %s", key)
		}
	}
	om, err := orderedMap(obs.GlobalAttrs)
	if err != nil {
		return eris.Wrap(err, "global attributes")
	}
	return cw.AddGlobalAttrs(om)
}

func orderedMap(attrs Attributes) (*util.OrderedMap, error) {
	return util.NewOrderedMap(attrs.Names(), attrs.Map())
}
