package cmd

import (
	"github.com/relex/ndjson-transformer/test"
)

type benchmarkCommandState struct {
	Input  string `help:"Input file path or wildcard pattern (NDJSON, optionally .gz or .zst)"`
	Output string `help:"Output file path:\n'null': abandon all output\nNDJSON file, e.g. /tmp/all-records.ndjson.gz"`
	Repeat int    `help:"Repeat times"`
	Config string `help:"Configuration file path"`
}

var benchCmd = benchmarkCommandState{
	Input:  "testdata/development/*-input.ndjson",
	Output: test.NullOutput,
	Config: "testdata/config_sample.yml",
	Repeat: 100,
}

func (cmd *benchmarkCommandState) runBenchmarkPipelineCommand(_ []string) {
	test.RunBenchmarkPipeline(cmd.Input, cmd.Output, cmd.Repeat, cmd.Config)
}
