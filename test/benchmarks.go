// Package test provides the benchmark of pipeline and sample-based tests
package test

import (
	"fmt"

	"github.com/relex/gotils/logger"
	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/defs"
	"github.com/relex/ndjson-transformer/output/ndjsonoutput"
	"github.com/relex/ndjson-transformer/run"
)

// NullOutput is the output path to discard all records in benchmarks
const NullOutput = "null"

type benchmarkMetric struct {
	fmt string
	val float64
}

// RunBenchmarkPipeline benchmarks the transformer pipeline with records loaded into memory
func RunBenchmarkPipeline(inputPath string, outputPath string, repeat int, configFile string) {
	settings, serr := run.LoadSettings(map[string]string{
		defs.KeyInputs: inputPath,
		defs.KeyOutput: outputPath,
	}, configFile)
	if serr != nil {
		logger.Fatal(serr)
	}
	mfactory := base.NewMetricFactory("benchpipeline_", nil, nil)
	loader, lerr := run.NewLoader(settings, mfactory)
	if lerr != nil {
		logger.Fatal(lerr)
	}

	inputRecords := loadInputRecords(loader.InputPaths, loader.MaxLineSize)
	var sink base.RecordSink = &nullSink{}
	if outputPath != NullOutput {
		fileSink, err := ndjsonoutput.Create(outputPath, loader.WriteBufferSize)
		if err != nil {
			logger.Fatal(err)
		}
		sink = fileSink
	}

	pipeline := run.NewPipeline(logger.Root(), &loader.Transform, mfactory, 0, loader.RateBasis)
	costTracker := NewCostTracker()
	stats, err := pipeline.Run([]base.RecordSourceOpener{newRepeatingSource("benchmark", inputRecords, repeat)}, sink)
	report := costTracker.Report()
	if err != nil {
		logger.Fatal(err)
	}

	reportBenchmarkResult("BenchmarkPipeline", stats, report)
	if dump, derr := mfactory.DumpMetrics(false); derr == nil {
		logger.Info(dump)
	}
}

func reportBenchmarkResult(title string, stats run.Stats, report CostReport) {
	metrics := []benchmarkMetric{
		{fmt: "%.0f rec/sec", val: float64(stats.Read) / report.RealTime.Seconds()},
		{fmt: "%0.2f alloc/rec", val: float64(report.NumHeapAllocs) / float64(stats.Read)},
		{fmt: "%0.2f%% user", val: 100.0 * report.UserTime.Seconds() / report.RealTime.Seconds()},
		{fmt: "%0.2f%% sys", val: 100.0 * report.SystemTime.Seconds() / report.RealTime.Seconds()},
		{fmt: "%0.2f%% gc", val: 100.0 * report.GCCPUFraction},
		{fmt: "%.02f sec", val: report.RealTime.Seconds()},
		{fmt: "%.0f read", val: float64(stats.Read)},
		{fmt: "%.0f written", val: float64(stats.Written)},
		{fmt: "%.0f duplicates", val: float64(stats.Duplicates)},
	}
	printBenchmarkMetrics(title, metrics)
}

func printBenchmarkMetrics(title string, metrics []benchmarkMetric) {
	sb := make([]byte, 0, 200)
	sb = append(sb, fmt.Sprintf("%s:", title)...)
	for _, m := range metrics {
		sb = append(sb, fmt.Sprintf("\t"+m.fmt, m.val)...)
	}
	fmt.Println(string(sb))
}
