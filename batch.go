package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/rtm0/rads2ioda/internal/catalog"
)

var batch struct {
	start     string
	end       string
	inputDir  string
	outputDir string
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every RADS file of a date range",
	Long: "Converts {satellite}_{YYYYDDD}.nc files found in the input directory for each " +
		"configured satellite and each day of the inclusive range. Days without a file " +
		"are skipped.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		start, err := catalog.ParseDay(batch.start, current.loc)
		if err != nil {
			return eris.Wrap(err, "--start")
		}
		end, err := catalog.ParseDay(batch.end, current.loc)
		if err != nil {
			return eris.Wrap(err, "--end")
		}
		defer current.flushMetrics()

		src := catalog.NewScanner(batch.inputDir, start, end, current.cfg.Satellites)
		n, err := current.converter().Run(cmd.Context(), src, batch.outputDir)
		if err != nil {
			return err
		}
		if n == 0 {
			current.logger.Warn("no input files found", "dir", batch.inputDir, "missing", src.Missing())
		}
		return nil
	},
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batch.start, "start", "", "first day, YYYYMMDD or YYYYDDD")
	f.StringVar(&batch.end, "end", "", "last day, YYYYMMDD or YYYYDDD")
	f.StringVar(&batch.inputDir, "input_directory", "", "directory holding the RADS files")
	f.StringVar(&batch.outputDir, "output_directory", "", "directory the IODA files are written to")
	for _, name := range []string{"start", "end", "input_directory", "output_directory"} {
		_ = batchCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(batchCmd)
}
