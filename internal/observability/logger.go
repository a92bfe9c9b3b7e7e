// Package observability provides the logger and metrics of a conversion run.
package observability

import (
	"io"
	"log/slog"
	"strings"

	"github.com/rotisserie/eris"
)

// NewLogger creates a slog logger writing to w. format is "text" or "json".
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, eris.Wrapf(err, "observability: log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, eris.Errorf("observability: unknown log format %q", format)
}
