package run

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/relex/gotils/logger"
	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/base/boperation"
	"github.com/relex/ndjson-transformer/defs"
	"github.com/relex/ndjson-transformer/input"
	"github.com/relex/ndjson-transformer/input/ndjsoninput"
	"github.com/relex/ndjson-transformer/output/ndjsonoutput"
	"github.com/relex/ndjson-transformer/transform"
	"github.com/relex/ndjson-transformer/transform/tdedup"
	"github.com/relex/ndjson-transformer/transform/ttiming"
)

// Loader resolves and verifies all settings of a run before anything is opened
//
// All errors from NewLoader are fatal and returned as *base.ConfigurationError
type Loader struct {
	InputPaths      []string
	OutputPath      string
	Transform       transform.Config // verified
	SeenSet         *tdedup.SeenSet
	RateBasis       RateBasis
	ProgressEvery   int
	WriteBufferSize datasize.ByteSize
	MaxLineSize     datasize.ByteSize
	MetricFactory   *base.MetricFactory
}

// NewLoader creates a Loader from settings, with run start time taken from the current clock
func NewLoader(settings Settings, metricFactory *base.MetricFactory) (*Loader, error) {
	return newLoaderAt(settings, metricFactory, time.Now())
}

func newLoaderAt(settings Settings, metricFactory *base.MetricFactory, started time.Time) (*Loader, error) {
	inputsValue, _ := settings.Lookup(defs.KeyInputs)
	inputLocations := input.SplitLocations(inputsValue)
	if len(inputLocations) == 0 {
		return nil, base.NewConfigurationError(defs.KeyInputs, fmt.Errorf("missing, set by argument or %s", defs.EnvInputs))
	}
	outputPath, outputFound := settings.Lookup(defs.KeyOutput)
	if !outputFound {
		return nil, base.NewConfigurationError(defs.KeyOutput, fmt.Errorf("missing, set by argument or %s", defs.EnvOutput))
	}

	duplicates, derr := boperation.Parse(defs.KeyDuplicates, settings.Lookup, boperation.DuplicatesGrammar)
	if derr != nil {
		return nil, derr
	}
	intervals, ierr := boperation.Parse(defs.KeyIntervals, settings.Lookup, boperation.IntervalsGrammar)
	if ierr != nil {
		return nil, ierr
	}
	responseTimes, rerr := boperation.Parse(defs.KeyResponseTimes, settings.Lookup, boperation.ResponseTimesGrammar)
	if rerr != nil {
		return nil, rerr
	}

	rateBasis, berr := parseRateBasis(settings)
	if berr != nil {
		return nil, berr
	}
	progressEvery, perr := parseProgressEvery(settings)
	if perr != nil {
		return nil, perr
	}

	seenSet := tdedup.NewSeenSet()
	transformConfig := transform.Config{
		Dedup: tdedup.Config{
			Duplicates: duplicates,
			SeenSet:    seenSet,
		},
		Timing: ttiming.Config{
			Intervals:     intervals,
			ResponseTimes: responseTimes,
			StartedMillis: started.UnixMilli(),
			Random:        rand.New(rand.NewSource(started.UnixNano())),
		},
	}
	if err := transformConfig.VerifyConfig(); err != nil {
		return nil, err
	}

	inputPaths, xerr := input.ExpandLocations(inputLocations)
	if xerr != nil {
		return nil, xerr
	}
	if inputPath, found := findSameFile(outputPath, inputPaths); found {
		return nil, base.NewConfigurationError(defs.KeyOutput, fmt.Errorf("'%s' is also input '%s'", outputPath, inputPath))
	}

	fileConfig := settings.FileConfig()
	return &Loader{
		InputPaths:      inputPaths,
		OutputPath:      outputPath,
		Transform:       transformConfig,
		SeenSet:         seenSet,
		RateBasis:       rateBasis,
		ProgressEvery:   progressEvery,
		WriteBufferSize: fileConfig.WriteBufferSize,
		MaxLineSize:     fileConfig.MaxLineSize,
		MetricFactory:   metricFactory,
	}, nil
}

// findSameFile returns the first of paths referring to the same file as target, which may not exist yet
func findSameFile(target string, paths []string) (string, bool) {
	targetStat, terr := os.Stat(target)
	if terr != nil {
		return "", false
	}
	for _, path := range paths {
		if stat, err := os.Stat(path); err == nil && os.SameFile(targetStat, stat) {
			return path, true
		}
	}
	return "", false
}

// Run opens the output and runs the pipeline over all inputs
func (loader *Loader) Run(parentLogger logger.Logger) (Stats, error) {
	sink, serr := ndjsonoutput.Create(loader.OutputPath, loader.WriteBufferSize)
	if serr != nil {
		return Stats{}, fmt.Errorf("failed to create output: %w", serr)
	}
	pipeline := NewPipeline(parentLogger, &loader.Transform, loader.MetricFactory, loader.ProgressEvery, loader.RateBasis)
	stats, err := pipeline.Run(ndjsoninput.NewOpeners(loader.InputPaths, loader.MaxLineSize), sink)
	pipeline.metrics.seenGauge.Set(float64(loader.SeenSet.Len()))
	return stats, err
}

// EffectiveConfig returns the resolved settings in the form of config file
func (loader *Loader) EffectiveConfig() Config {
	return Config{
		Inputs:          loader.InputPaths,
		Output:          loader.OutputPath,
		Duplicates:      loader.Transform.Dedup.Duplicates.String(),
		Intervals:       loader.Transform.Timing.Intervals.String(),
		ResponseTimes:   loader.Transform.Timing.ResponseTimes.String(),
		RateBasis:       string(loader.RateBasis),
		ProgressEvery:   loader.ProgressEvery,
		WriteBufferSize: loader.WriteBufferSize,
		MaxLineSize:     loader.MaxLineSize,
	}
}

func parseRateBasis(settings Settings) (RateBasis, error) {
	value, found := settings.Lookup(defs.KeyRateBasis)
	if !found {
		return RateByWritten, nil
	}
	switch basis := RateBasis(value); basis {
	case RateByWritten, RateByRead:
		return basis, nil
	default:
		return "", base.NewConfigurationError(defs.KeyRateBasis,
			fmt.Errorf("unsupported value '%s', should be %s|%s", value, RateByWritten, RateByRead))
	}
}

func parseProgressEvery(settings Settings) (int, error) {
	value, found := settings.Lookup(defs.KeyProgressEvery)
	if !found {
		return defs.ProgressReportEvery, nil
	}
	every, err := strconv.Atoi(value)
	if err != nil || every < 0 {
		return 0, base.NewConfigurationError(defs.KeyProgressEvery, fmt.Errorf("invalid count '%s'", value))
	}
	return every, nil
}
