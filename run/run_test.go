package run

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/defs"
	"github.com/relex/ndjson-transformer/input/ndjsoninput"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "1.ndjson")
	second := filepath.Join(dir, "2.ndjson")
	require.NoError(t, os.WriteFile(first, []byte(strings.Join([]string{
		`{"host":"a","request_url":"/x","response_time_millis":1700000000000}`,
		`{"host":"a","request_url":"/x","response_time_millis":1700000000000}`,
		`not json`,
		`{"host":"a","request_url":"/y"}`,
	}, "\n")+"\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte(`{"host":"a","request_url":"/x","response_time_millis":1700000000000}`+"\n"), 0o644))
	outputPath := filepath.Join(dir, "out.ndjson.gz")
	metricsPath := filepath.Join(dir, "metrics.prom")

	stats, err := Run(argSettings(map[string]string{
		defs.KeyInputs:        first + "," + second,
		defs.KeyOutput:        outputPath,
		defs.KeyDuplicates:    "drop",
		defs.KeyResponseTimes: "add:1h",
	}), Options{MetricsFile: metricsPath})
	require.NoError(t, err)
	assert.Equal(t, Stats{Read: 5, Written: 2, Duplicates: 2, Failed: 1, Elapsed: stats.Elapsed}, stats)

	metrics, merr := os.ReadFile(metricsPath)
	require.NoError(t, merr)
	assert.Contains(t, string(metrics), `ndjsontransformer_records_total{outcome="written",run="`)
	assert.Regexp(t, `(?m)^ndjsontransformer_records_total\{outcome="read",run="[^"]+"\} 5$`, string(metrics))
	assert.Regexp(t, `(?m)^ndjsontransformer_dedup_duplicates_total\{run="[^"]+",stage="duplicates"\} 2$`, string(metrics))
	assert.Regexp(t, `(?m)^ndjsontransformer_dedup_seen_fingerprints\{run="[^"]+",stage="duplicates"\} 2$`, string(metrics))

	written := readOutput(t, outputPath)
	require.Len(t, written, 2)
	assert.Equal(t, "/x", written[0].RequestURL)
	assert.Equal(t, int64(1700003600000), written[0].ResponseTimeMillis)
	assert.Equal(t, "/y", written[1].RequestURL)
	assert.Greater(t, written[1].ResponseTimeMillis, int64(1700003600000), "unset response time counts from run start")
}

func readOutput(t *testing.T, path string) []*base.HTTPRecord {
	source, err := ndjsoninput.Open(path, 0)
	require.NoError(t, err)
	defer source.Close()
	var records []*base.HTTPRecord
	for {
		record, nerr := source.Next()
		if nerr == io.EOF {
			return records
		}
		require.NoError(t, nerr)
		records = append(records, record)
	}
}
