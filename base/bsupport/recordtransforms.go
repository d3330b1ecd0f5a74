// Package bsupport provides helpers to run records through transforms
package bsupport

import (
	"fmt"

	"github.com/relex/ndjson-transformer/base"
)

// RunTransforms executes all the given transforms on a record, stopping at the first DROP or error
//
// Panics inside transforms are converted to *base.RecordTransformError, the record being skipped
func RunTransforms(record *base.HTTPRecord, transforms []base.RecordTransformFunc) (result base.FilterResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = base.DROP
			err = base.NewRecordTransformError("panic", fmt.Errorf("%v", r))
		}
	}()
	for _, transformFunc := range transforms {
		status, terr := transformFunc(record)
		if terr != nil {
			return base.DROP, terr
		}
		if status == base.DROP {
			return base.DROP, nil
		}
	}
	return base.PASS, nil
}
