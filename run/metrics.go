package run

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/defs"
)

// pipelineMetrics counts records by outcome. A record read is counted once as read and then either as written,
// duplicate or failed. Duplicates and the seen-set size come from the dedup stage.
type pipelineMetrics struct {
	readCounter      prometheus.Counter
	writtenCounter   prometheus.Counter
	duplicateCounter prometheus.Counter
	failedCounter    prometheus.Counter
	seenGauge        prometheus.Gauge
}

func newPipelineMetrics(factory *base.MetricFactory) pipelineMetrics {
	vec := factory.AddOrGetCounterVec("records_total", "Numbers of records by outcome", []string{"outcome"}, nil)
	dedupFactory := factory.NewSubFactory("dedup_", []string{defs.LabelStage}, []string{defs.KeyDuplicates})
	return pipelineMetrics{
		readCounter:      vec.WithLabelValues("read"),
		writtenCounter:   vec.WithLabelValues("written"),
		duplicateCounter: dedupFactory.AddOrGetCounter("duplicates_total", "Numbers of records recognized as duplicates", nil, nil),
		failedCounter:    vec.WithLabelValues("failed"),
		seenGauge:        dedupFactory.AddOrGetGauge("seen_fingerprints", "Numbers of distinct fingerprints in the run", nil, nil),
	}
}

// writeMetricsFile dumps all metrics of the factory to a file in Prometheus text format
func writeMetricsFile(factory *base.MetricFactory, path string) error {
	dump, err := factory.DumpMetrics(true)
	if err != nil {
		return err
	}
	if werr := os.WriteFile(path, []byte(dump), 0o644); werr != nil {
		return fmt.Errorf("failed to write metrics: %w", werr)
	}
	return nil
}
