// Package cmd provides the list of commands
package cmd

import (
	"github.com/relex/gotils/config"
)

func init() {
	config.AddParentCmdWithArgs("", "ndjson-transformer drops duplicates and rewrites timing of HTTP transaction records in NDJSON files", &rootCmd, rootCmd.preRun, rootCmd.postRun)
	config.AddCmdWithArgs("benchmark <type> ...", "Run benchmark of specified type", &benchCmd, nil)
	config.AddCmdWithArgs("benchmark pipeline ...", "Benchmark pipeline with null or file output", nil, benchCmd.runBenchmarkPipelineCommand)
	config.AddCmdWithArgs("run ...", "Run transformation from inputs to output", &runCmd, runCmd.run)
}

// Execute parses the command line and runs the specified command
func Execute() {
	// trigger init

	config.Execute()
}
