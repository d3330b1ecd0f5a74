// Package transform assembles the chain of transforms applied to every record
package transform

import (
	"errors"

	"github.com/relex/gotils/logger"
	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/defs"
	"github.com/relex/ndjson-transformer/transform/tdedup"
	"github.com/relex/ndjson-transformer/transform/ttiming"
)

// Config holds configurations of all transforms in the chain
type Config struct {
	Dedup  tdedup.Config
	Timing ttiming.Config
}

// VerifyConfig verifies all transform configs; errors are *base.ConfigurationError
func (cfg *Config) VerifyConfig() error {
	if err := cfg.Dedup.VerifyConfig(); err != nil {
		return base.NewConfigurationError(defs.KeyDuplicates, err)
	}
	if err := cfg.Timing.VerifyConfig(); err != nil {
		var cerr *base.ConfigurationError
		if errors.As(err, &cerr) {
			return cerr
		}
		return base.NewConfigurationError("timing", err)
	}
	return nil
}

// NewTransforms creates the chain in order of application: duplicates check first, then timing
//
// The duplicates check is left out entirely unless duplicates are to be dropped
func (cfg *Config) NewTransforms(parentLogger logger.Logger, countDuplicate func()) []base.RecordTransformFunc {
	transforms := make([]base.RecordTransformFunc, 0, 2)
	if cfg.Dedup.Enabled() {
		tlogger := parentLogger.WithField(defs.LabelPart, defs.KeyDuplicates)
		transforms = append(transforms, cfg.Dedup.NewTransform(tlogger, countDuplicate).Transform)
	}
	tlogger := parentLogger.WithField(defs.LabelPart, "timing")
	transforms = append(transforms, cfg.Timing.NewTransform(tlogger).Transform)
	return transforms
}
