// Package run loads settings and runs the transformer over all inputs
package run

import (
	"context"

	"github.com/google/uuid"
	"github.com/relex/gotils/logger"
	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/defs"
	"github.com/relex/ndjson-transformer/util"
)

// MetricPrefix is the prefix of all metric names
const MetricPrefix = "ndjsontransformer_"

// Options control the reporting of a run
type Options struct {
	MetricsFile string // write metrics at the end, even if the run fails
	MetricsAddr string // serve metrics over HTTP while running
}

// Run runs the transformer to completion with the given settings
func Run(settings Settings, options Options) (Stats, error) {
	runID := uuid.NewString()
	runLogger := logger.WithFields(logger.Fields{
		defs.LabelComponent: "Launcher",
		defs.LabelRun:       runID,
	})
	metricFactory := base.NewMetricFactory(MetricPrefix, []string{defs.LabelRun}, []string{runID})

	loader, lerr := NewLoader(settings, metricFactory)
	if lerr != nil {
		return Stats{}, lerr
	}
	if dump, err := util.MarshalYaml(loader.EffectiveConfig()); err == nil {
		runLogger.Infof("effective config:\n%s", dump)
	}

	if len(options.MetricsAddr) > 0 {
		msrv := util.LaunchMetricsListener(options.MetricsAddr, metricFactory.Gatherer())
		defer func() {
			if err := msrv.Shutdown(context.Background()); err != nil {
				runLogger.Errorf("error shutting down metrics listener: %v", err)
			}
		}()
	}

	stats, err := loader.Run(runLogger)
	if len(options.MetricsFile) > 0 {
		if merr := writeMetricsFile(metricFactory, options.MetricsFile); merr != nil {
			runLogger.Errorf("%s: %s", options.MetricsFile, merr.Error())
		}
	}
	if err != nil {
		return stats, err
	}
	runLogger.Infof("done: %d read, %d written, %d duplicates, %d failed", stats.Read, stats.Written, stats.Duplicates, stats.Failed)
	return stats, nil
}
