package base

// RecordTransform filters and/or transforms records one by one
// May have persistent states, e.g. the set of seen fingerprints
type RecordTransform interface {

	// Transform transforms the given record in-place and returns PASS or DROP
	// A non-nil error means the record couldn't be processed and is to be skipped; the result is then DROP
	Transform(record *HTTPRecord) (FilterResult, error)
}

// RecordTransformFunc defines a function to perform transformation on a single record
type RecordTransformFunc func(record *HTTPRecord) (FilterResult, error)

// FilterResult defines the result of filtering, pass (true) or drop (false)
type FilterResult bool

// PASS means transform succeeds (whether there is change or not)
const PASS FilterResult = true

// DROP means transform aborts and the record is to be dropped
const DROP FilterResult = false
