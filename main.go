package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rtm0/rads2ioda/internal/config"
	"github.com/rtm0/rads2ioda/internal/convert"
	"github.com/rtm0/rads2ioda/internal/ioda"
	"github.com/rtm0/rads2ioda/internal/observability"
	"github.com/rtm0/rads2ioda/internal/rads"
)

// run is the state shared by the commands of one invocation.
type run struct {
	cfg     *config.Config
	loc     *time.Location
	logger  *slog.Logger
	metrics *observability.Metrics
}

var (
	configFile string
	current    run
)

var rootCmd = &cobra.Command{
	Use:   "rads2ioda",
	Short: "Convert RADS sea level anomaly files to IODA",
	Long: "Reads RADS along-track sea level anomaly NetCDF files and writes them as " +
		"IODA seaSurfaceHeightAnomaly observation files.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configFile, cmd.Flags())
		if err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		logger, err := observability.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}
		current = run{
			cfg:     cfg,
			loc:     loc,
			logger:  logger,
			metrics: observability.NewMetrics(),
		}
		return nil
	},
	RunE: runSingle,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default ./rads2ioda.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("metrics-file", "", "write Prometheus metrics to this file when the run ends")
	pf.String("timezone", "UTC", "time zone all dates are interpreted and formatted in")

	initSingle()
}

// converter wires the production reader and writer.
func (r run) converter() *convert.Converter {
	return convert.New(
		rads.NewReader(r.logger, rads.NewTimeBase()),
		ioda.NewCDFWriter(r.logger),
		r.logger,
		r.metrics,
		convert.Options{Converter: r.cfg.Converter, Location: r.loc},
	)
}

// flushMetrics writes the metrics file if one is configured.
func (r run) flushMetrics() {
	if r.cfg == nil || r.cfg.MetricsFile == "" {
		return
	}
	if err := r.metrics.WriteTextfile(r.cfg.MetricsFile); err != nil {
		r.logger.Error("Could not write metrics", "err", err)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		current.errorLogger().Error("Conversion failed", "err", err)
		os.Exit(1)
	}
}

// errorLogger returns the run's logger, or a stderr logger when the run
// failed before configuration built one.
func (r run) errorLogger() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
