// Package ttiming provides the timing transform, which rewrites interval and response time of records
package ttiming

import (
	"fmt"
	"math/rand"

	"github.com/relex/gotils/logger"
	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/base/boperation"
	"github.com/relex/ndjson-transformer/defs"
)

// Config for timingTransform
type Config struct {
	Intervals     boperation.Operation
	ResponseTimes boperation.Operation
	StartedMillis int64      // start of run in epoch milliseconds, substitute of unset response times
	Random        *rand.Rand // source of randomize and shuffle
}

type timingTransform struct {
	intervals     boperation.Operation
	responseTimes boperation.Operation
	startedMillis int64
	random        *rand.Rand
}

// VerifyConfig verifies timingTransform config
//
// Errors of the operations are *base.ConfigurationError naming the configuration key
func (cfg *Config) VerifyConfig() error {
	if err := verifyIntervalOperation(cfg.Intervals); err != nil {
		return base.NewConfigurationError(defs.KeyIntervals, err)
	}
	if err := verifyResponseTimeOperation(cfg.ResponseTimes); err != nil {
		return base.NewConfigurationError(defs.KeyResponseTimes, err)
	}
	if cfg.StartedMillis <= 0 {
		return fmt.Errorf(".startedMillis is unspecified")
	}
	if cfg.Random == nil {
		return fmt.Errorf(".random is unspecified")
	}
	return nil
}

// NewTransform creates timingTransform
func (cfg *Config) NewTransform(_ logger.Logger) base.RecordTransform {
	return &timingTransform{
		intervals:     cfg.Intervals,
		responseTimes: cfg.ResponseTimes,
		startedMillis: cfg.StartedMillis,
		random:        cfg.Random,
	}
}

func (tf *timingTransform) Transform(record *base.HTTPRecord) (base.FilterResult, error) {
	if err := applyInterval(tf.intervals, tf.random, record); err != nil {
		return base.DROP, base.NewRecordTransformError("intervals", err)
	}
	if err := applyResponseTime(tf.responseTimes, tf.startedMillis, tf.random, record); err != nil {
		return base.DROP, base.NewRecordTransformError("responseTimes", err)
	}
	return base.PASS, nil
}
