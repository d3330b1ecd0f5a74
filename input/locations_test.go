package input

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/defs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLocations(t *testing.T) {
	assert.Equal(t, []string{"a.gz", "b.gz", "c"}, SplitLocations(" a.gz ,b.gz,", "", "c"))
	assert.Empty(t, SplitLocations(" , "))
}

func TestExpandLocations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2.ndjson.gz", "1.ndjson.gz", "other.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	single := filepath.Join(dir, "other.txt")

	paths, err := ExpandLocations([]string{single, filepath.Join(dir, "*.ndjson.gz")})
	require.NoError(t, err)
	assert.Equal(t, []string{single, filepath.Join(dir, "1.ndjson.gz"), filepath.Join(dir, "2.ndjson.gz")}, paths)

	dupPaths, dupErr := ExpandLocations([]string{filepath.Join(dir, "2.ndjson.gz"), filepath.Join(dir, "*.gz")})
	require.NoError(t, dupErr)
	assert.Equal(t, []string{filepath.Join(dir, "2.ndjson.gz"), filepath.Join(dir, "1.ndjson.gz")}, dupPaths)
}

func TestExpandLocationsErrors(t *testing.T) {
	dir := t.TempDir()
	for _, locations := range [][]string{
		nil,
		{filepath.Join(dir, "*.zst")},
		{filepath.Join(dir, "missing.ndjson")},
	} {
		_, err := ExpandLocations(locations)
		var cerr *base.ConfigurationError
		require.True(t, errors.As(err, &cerr), "%v", locations)
		assert.Equal(t, defs.KeyInputs, cerr.Key)
	}
}
