package bsupport

import (
	"errors"
	"testing"

	"github.com/relex/ndjson-transformer/base"
	"github.com/stretchr/testify/assert"
)

func TestRunTransforms(t *testing.T) {
	calls := 0
	pass := func(r *base.HTTPRecord) (base.FilterResult, error) {
		calls++
		r.IntervalMillis++
		return base.PASS, nil
	}
	drop := func(r *base.HTTPRecord) (base.FilterResult, error) {
		calls++
		return base.DROP, nil
	}
	fail := func(r *base.HTTPRecord) (base.FilterResult, error) {
		calls++
		return base.DROP, base.NewRecordTransformError("fail", errors.New("broken"))
	}
	explode := func(r *base.HTTPRecord) (base.FilterResult, error) {
		var m map[string]int
		m["x"] = 1
		return base.PASS, nil
	}

	record := &base.HTTPRecord{}
	status, err := RunTransforms(record, []base.RecordTransformFunc{pass, pass})
	assert.NoError(t, err)
	assert.Equal(t, base.PASS, status)
	assert.Equal(t, int64(2), record.IntervalMillis)

	calls = 0
	status, err = RunTransforms(record, []base.RecordTransformFunc{drop, pass})
	assert.NoError(t, err)
	assert.Equal(t, base.DROP, status)
	assert.Equal(t, 1, calls)

	calls = 0
	status, err = RunTransforms(record, []base.RecordTransformFunc{fail, pass})
	assert.Error(t, err)
	assert.Equal(t, base.DROP, status)
	assert.Equal(t, 1, calls)

	status, err = RunTransforms(record, []base.RecordTransformFunc{explode})
	assert.True(t, base.IsRecordError(err))
	assert.Equal(t, base.DROP, status)
}
