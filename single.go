package main

import (
	"github.com/spf13/cobra"

	"github.com/rtm0/rads2ioda/internal/catalog"
)

var single struct {
	input  string
	output string
	date   string
}

func initSingle() {
	f := rootCmd.Flags()
	f.StringVarP(&single.input, "input", "i", "", "name of the RADS observation input file")
	f.StringVarP(&single.output, "output", "o", "", "path of the IODA output file")
	f.StringVarP(&single.date, "date", "d", "", "file date, YYYYMMDDHH")
	for _, name := range []string{"input", "output", "date"} {
		_ = rootCmd.MarkFlagRequired(name)
	}
}

func runSingle(cmd *cobra.Command, _ []string) error {
	date, err := catalog.ParseFileDate(single.date, current.loc)
	if err != nil {
		return err
	}
	defer current.flushMetrics()

	current.logger.Debug("converting file", "input", single.input, "output", single.output, "date", date)
	return current.converter().ConvertFile(single.input, single.output, date)
}
