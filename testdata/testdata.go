// Package testdata provides access to shared sample records and config for testing
package testdata

import (
	"path/filepath"
	"regexp"
	"runtime"
	"testing"
)

var inputExtPattern = regexp.MustCompile(`-input\.ndjson(\.gz|\.zst)?$`)

var absoluteDirPath string

func init() {
	_, thisFile, _, _ := runtime.Caller(0)
	absoluteDirPath = filepath.Dir(thisFile)
}

// GetConfigPath returns the absolute path of sample config
func GetConfigPath() string {
	return filepath.Join(absoluteDirPath, "config_sample.yml")
}

// ListInputFiles lists all sample input files in the development dir
func ListInputFiles(t *testing.T) []string {
	fullPattern := filepath.Join(absoluteDirPath, "development", "*-input.ndjson*")

	inFiles, globErr := filepath.Glob(fullPattern)
	if globErr != nil {
		t.Fatalf("failed to scan test files at path %s: %v", fullPattern, globErr)
	}
	if len(inFiles) == 0 {
		t.Fatalf("failed to find test files at path %s: no match", fullPattern)
	}
	return inFiles
}

// GetInputTitle returns the name of sample, e.g. "basic" for ".../basic-input.ndjson"
func GetInputTitle(t *testing.T, fn string) string {
	title := inputExtPattern.ReplaceAllString(fn, "")
	if title == fn {
		t.Fatalf("invalid input filename %s", fn)
	}
	return filepath.Base(title)
}

// GetOutputFilename returns the expected output file of the sample input
func GetOutputFilename(t *testing.T, fn string) string {
	return getSiblingFilename(t, fn, "-output.ndjson")
}

// GetStatsFilename returns the expected run stats file of the sample input
func GetStatsFilename(t *testing.T, fn string) string {
	return getSiblingFilename(t, fn, "-stats.yml")
}

func getSiblingFilename(t *testing.T, fn string, suffix string) string {
	outFn := inputExtPattern.ReplaceAllString(fn, suffix)
	if outFn == fn {
		t.Fatalf("invalid input filename %s", fn)
	}
	return outFn
}
