package cmd

import (
	"github.com/relex/gotils/logger"
	"github.com/relex/ndjson-transformer/defs"
	"github.com/relex/ndjson-transformer/run"
)

type runCommandState struct {
	Input         string `help:"Input files or patterns, comma-separated. Fallback: env FILE_IN"`
	Output        string `help:"Output file, compressed if ending with .gz or .zst. Fallback: env FILE_OUT"`
	Config        string `help:"Configuration file path (optional)"`
	Duplicates    string `help:"keep|drop. Fallback: env DUPLICATES"`
	Intervals     string `help:"keep|drop|randomize:<amount>. Fallback: env INTERVALS"`
	ResponseTimes string `help:"keep|drop|add:<amount>|subtract:<amount>|shuffle:<amount>. Fallback: env RESPONSE_TIMES"`
	RateBasis     string `help:"Count rate in status lines by 'written' or 'read' records"`
	ProgressEvery string `help:"Log a status line every N written records, 0 = only at the end"`
	MetricsFile   string `help:"Write metrics in Prometheus text format to the file at the end"`
	MetricsAddr   string `help:"The listener address to expose Prometheus metrics and debug information while running"`
}

var runCmd runCommandState

func (cmd *runCommandState) run(_ []string) {
	settings, serr := run.LoadSettings(map[string]string{
		defs.KeyInputs:        cmd.Input,
		defs.KeyOutput:        cmd.Output,
		defs.KeyDuplicates:    cmd.Duplicates,
		defs.KeyIntervals:     cmd.Intervals,
		defs.KeyResponseTimes: cmd.ResponseTimes,
		defs.KeyRateBasis:     cmd.RateBasis,
		defs.KeyProgressEvery: cmd.ProgressEvery,
	}, cmd.Config)
	if serr != nil {
		logger.Fatal(serr)
	}

	options := run.Options{
		MetricsFile: cmd.MetricsFile,
		MetricsAddr: cmd.MetricsAddr,
	}
	if _, err := run.Run(settings, options); err != nil {
		logger.Fatal(err)
	}
}
