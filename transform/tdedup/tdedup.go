// Package tdedup provides the 'duplicates' transform, which drops records whose content fingerprint has been seen
package tdedup

import (
	"fmt"

	"github.com/relex/gotils/logger"
	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/base/boperation"
)

// Config for dedupTransform
type Config struct {
	Duplicates boperation.Operation // keep or drop
	SeenSet    *SeenSet             // owned by the run, required for drop
}

type dedupTransform struct {
	fingerprinter  *Fingerprinter
	seen           *SeenSet
	countDuplicate func()
}

// Enabled returns true if duplicates are configured to be dropped
//
// The transform is not to be created otherwise and fingerprints aren't computed at all.
func (cfg *Config) Enabled() bool {
	return cfg.Duplicates.Kind == boperation.Drop
}

// VerifyConfig verifies dedupTransform config
func (cfg *Config) VerifyConfig() error {
	switch cfg.Duplicates.Kind {
	case boperation.Keep:
		return nil
	case boperation.Drop:
		if cfg.SeenSet == nil {
			return fmt.Errorf(".seenSet is unspecified")
		}
		return nil
	default:
		return fmt.Errorf("unsupported operation '%s'", cfg.Duplicates.Raw)
	}
}

// NewTransform creates dedupTransform; countDuplicate is called for every dropped record
func (cfg *Config) NewTransform(_ logger.Logger, countDuplicate func()) base.RecordTransform {
	return &dedupTransform{
		fingerprinter:  NewFingerprinter(),
		seen:           cfg.SeenSet,
		countDuplicate: countDuplicate,
	}
}

func (tf *dedupTransform) Transform(record *base.HTTPRecord) (base.FilterResult, error) {
	digest, err := tf.fingerprinter.Fingerprint(record)
	if err != nil {
		return base.DROP, base.NewRecordTransformError("duplicates", err)
	}
	if tf.seen.IsDuplicateAndMark(digest) {
		tf.countDuplicate()
		return base.DROP, nil
	}
	return base.PASS, nil
}
