package run

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/base/boperation"
	"github.com/relex/ndjson-transformer/defs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func argSettings(args map[string]string) Settings {
	return Settings{Args: args}
}

func TestNewLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.ndjson"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ndjson"), nil, 0o644))
	started := time.UnixMilli(testStartedMillis)

	loader, err := newLoaderAt(argSettings(map[string]string{
		defs.KeyInputs:        filepath.Join(dir, "*.ndjson"),
		defs.KeyOutput:        filepath.Join(dir, "out.ndjson"),
		defs.KeyDuplicates:    "drop",
		defs.KeyResponseTimes: "shuffle:1y",
	}), base.NewMetricFactory("test_", nil, nil), started)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.ndjson"), filepath.Join(dir, "b.ndjson")}, loader.InputPaths)
	assert.Equal(t, boperation.Drop, loader.Transform.Dedup.Duplicates.Kind)
	assert.Same(t, loader.SeenSet, loader.Transform.Dedup.SeenSet)
	assert.Equal(t, boperation.Keep, loader.Transform.Timing.Intervals.Kind)
	assert.Equal(t, boperation.Shuffle, loader.Transform.Timing.ResponseTimes.Kind)
	assert.Equal(t, int64(29030400000), loader.Transform.Timing.ResponseTimes.Amount)
	assert.Equal(t, testStartedMillis, loader.Transform.Timing.StartedMillis)
	assert.Equal(t, RateByWritten, loader.RateBasis)
	assert.Equal(t, defs.ProgressReportEvery, loader.ProgressEvery)

	effective := loader.EffectiveConfig()
	assert.Equal(t, loader.InputPaths, effective.Inputs)
	assert.Equal(t, "drop", effective.Duplicates)
	assert.Equal(t, "keep", effective.Intervals)
	assert.Equal(t, "shuffle:1y", effective.ResponseTimes)
	assert.Equal(t, "written", effective.RateBasis)
}

func TestNewLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in.ndjson")
	require.NoError(t, os.WriteFile(inputPath, nil, 0o644))
	outputPath := filepath.Join(dir, "out.ndjson")

	cases := []struct {
		key  string
		args map[string]string
	}{
		{defs.KeyInputs, map[string]string{defs.KeyOutput: outputPath}},
		{defs.KeyOutput, map[string]string{defs.KeyInputs: inputPath}},
		{defs.KeyDuplicates, map[string]string{defs.KeyInputs: inputPath, defs.KeyOutput: outputPath, defs.KeyDuplicates: "remove"}},
		{defs.KeyIntervals, map[string]string{defs.KeyInputs: inputPath, defs.KeyOutput: outputPath, defs.KeyIntervals: "randomize:abc"}},
		{defs.KeyResponseTimes, map[string]string{defs.KeyInputs: inputPath, defs.KeyOutput: outputPath, defs.KeyResponseTimes: "add:5x"}},
		{defs.KeyRateBasis, map[string]string{defs.KeyInputs: inputPath, defs.KeyOutput: outputPath, defs.KeyRateBasis: "fast"}},
		{defs.KeyProgressEvery, map[string]string{defs.KeyInputs: inputPath, defs.KeyOutput: outputPath, defs.KeyProgressEvery: "-1"}},
		{defs.KeyIntervals, map[string]string{defs.KeyInputs: inputPath, defs.KeyOutput: outputPath, defs.KeyIntervals: "randomize:0"}},
		{defs.KeyResponseTimes, map[string]string{defs.KeyInputs: inputPath, defs.KeyOutput: outputPath, defs.KeyResponseTimes: "shuffle:0"}},
		{defs.KeyInputs, map[string]string{defs.KeyInputs: filepath.Join(dir, "*.gz"), defs.KeyOutput: outputPath}},
	}
	for _, c := range cases {
		_, err := NewLoader(argSettings(c.args), base.NewMetricFactory("test_", nil, nil))
		var cerr *base.ConfigurationError
		if assert.True(t, errors.As(err, &cerr), "%v: %v", c.args, err) {
			assert.Equal(t, c.key, cerr.Key)
		}
	}

	_, amountErr := NewLoader(argSettings(cases[4].args), base.NewMetricFactory("test_", nil, nil))
	assert.ErrorIs(t, amountErr, boperation.ErrInvalidAmount)
	_, grammarErr := NewLoader(argSettings(cases[3].args), base.NewMetricFactory("test_", nil, nil))
	assert.ErrorIs(t, grammarErr, boperation.ErrInvalidOperation)

	_, statErr := os.Stat(outputPath)
	assert.ErrorIs(t, statErr, os.ErrNotExist, "no output created on configuration errors")
}

func TestNewLoaderOutputIsInput(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in.ndjson")
	require.NoError(t, os.WriteFile(inputPath, []byte(`{"host":"a"}`+"\n"), 0o644))
	linkPath := filepath.Join(dir, "link.ndjson")
	require.NoError(t, os.Symlink(inputPath, linkPath))

	for _, output := range []string{inputPath, dir + "/./in.ndjson", linkPath} {
		_, err := NewLoader(argSettings(map[string]string{
			defs.KeyInputs: filepath.Join(dir, "*.ndjson"),
			defs.KeyOutput: output,
		}), base.NewMetricFactory("test_", nil, nil))
		var cerr *base.ConfigurationError
		if assert.True(t, errors.As(err, &cerr), "%s: %v", output, err) {
			assert.Equal(t, defs.KeyOutput, cerr.Key)
		}
	}

	contents, rerr := os.ReadFile(inputPath)
	require.NoError(t, rerr)
	assert.Equal(t, `{"host":"a"}`+"\n", string(contents), "input untouched")

	_, err := NewLoader(argSettings(map[string]string{
		defs.KeyInputs: inputPath,
		defs.KeyOutput: filepath.Join(dir, "out.ndjson"),
	}), base.NewMetricFactory("test_", nil, nil))
	assert.NoError(t, err)
}
