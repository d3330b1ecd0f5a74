package run

import (
	"fmt"
	"io"
	"time"

	"github.com/relex/gotils/logger"
	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/base/bsupport"
	"github.com/relex/ndjson-transformer/defs"
	"github.com/relex/ndjson-transformer/transform"
)

// RateBasis selects the counter used for the rate figure in status lines
type RateBasis string

// Supported values of RateBasis
const (
	RateByWritten RateBasis = "written"
	RateByRead    RateBasis = "read"
)

// Stats summarizes a run of Pipeline
type Stats struct {
	Read       int64 // records read, including malformed ones
	Written    int64
	Duplicates int64 // records dropped as duplicates
	Failed     int64 // records skipped due to per-record errors
	Elapsed    time.Duration
}

// Pipeline reads records from sources one by one, passes them through transforms and writes survivors to a sink
//
// Pipeline runs strictly sequentially in the calling goroutine.
type Pipeline struct {
	logger        logger.Logger
	transforms    []base.RecordTransformFunc
	metrics       pipelineMetrics
	progressEvery int64
	rateBasis     RateBasis
}

// NewPipeline creates a Pipeline with transforms from the given config, which must have been verified
func NewPipeline(parentLogger logger.Logger, transformConfig *transform.Config, metricFactory *base.MetricFactory,
	progressEvery int, rateBasis RateBasis) *Pipeline {

	plogger := parentLogger.WithField(defs.LabelComponent, "Pipeline")
	metrics := newPipelineMetrics(metricFactory)
	return &Pipeline{
		logger:        plogger,
		transforms:    transformConfig.NewTransforms(plogger, metrics.duplicateCounter.Inc),
		metrics:       metrics,
		progressEvery: int64(progressEvery),
		rateBasis:     rateBasis,
	}
}

// Run processes all sources in order and closes the sink at the end, whether or not there is an error
//
// Per-record errors are logged and the records skipped. Errors opening or reading sources and writing to the sink
// abort the run.
func (p *Pipeline) Run(openers []base.RecordSourceOpener, sink base.RecordSink) (stats Stats, err error) {
	started := time.Now()
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
		stats.Elapsed = time.Since(started)
		p.logStatus(stats)
	}()

	for _, opener := range openers {
		if err = p.runSource(opener, sink, &stats, started); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (p *Pipeline) runSource(opener base.RecordSourceOpener, sink base.RecordSink, stats *Stats, started time.Time) error {
	slogger := p.logger.WithField(defs.LabelSource, opener.Location())
	source, oerr := opener.Open()
	if oerr != nil {
		return fmt.Errorf("failed to open input: %w", oerr)
	}
	defer func() {
		if cerr := source.Close(); cerr != nil {
			slogger.Warnf("failed to close input: %s", cerr.Error())
		}
	}()
	slogger.Info("start reading")

	for {
		record, rerr := source.Next()
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil && !base.IsRecordError(rerr) {
			return fmt.Errorf("failed to read input: %w", rerr)
		}
		stats.Read++
		p.metrics.readCounter.Inc()
		if rerr != nil {
			p.skip(slogger, stats, rerr)
			continue
		}

		result, terr := bsupport.RunTransforms(record, p.transforms)
		if terr != nil {
			p.skip(slogger, stats, terr)
			continue
		}
		if result == base.DROP {
			stats.Duplicates++
			continue
		}

		if werr := sink.Write(record); werr != nil {
			return fmt.Errorf("failed to write output: %w", werr)
		}
		stats.Written++
		p.metrics.writtenCounter.Inc()
		if p.progressEvery > 0 && stats.Written%p.progressEvery == 0 {
			current := *stats
			current.Elapsed = time.Since(started)
			p.logStatus(current)
		}
	}
}

func (p *Pipeline) skip(slogger logger.Logger, stats *Stats, err error) {
	stats.Failed++
	p.metrics.failedCounter.Inc()
	slogger.Warnf("skipped record #%d: %s", stats.Read, err.Error())
}

func (p *Pipeline) logStatus(stats Stats) {
	elapsedMillis := stats.Elapsed.Milliseconds()
	p.logger.Infof("Messages: %d read, %d written, Elapsed time: %d ms, Rate: %d msg/sec",
		stats.Read, stats.Written, elapsedMillis, stats.Rate(p.rateBasis))
}

// Rate returns records per second counted by either written or read records
func (stats Stats) Rate(basis RateBasis) int64 {
	count := stats.Written
	if basis == RateByRead {
		count = stats.Read
	}
	elapsedMillis := stats.Elapsed.Milliseconds()
	if elapsedMillis <= 0 {
		elapsedMillis = 1
	}
	return count * 1000 / elapsedMillis
}
