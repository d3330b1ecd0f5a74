package base

// RecordSource represents an opened input stream of records, e.g. a compressed NDJSON file
//
// Sources are finite and non-restartable. Records are produced in stream order.
type RecordSource interface {
	// Next returns the next record, or io.EOF when the source is exhausted
	//
	// Errors wrapping ErrMalformedRecord concern the current record only and the caller may continue reading.
	// Any other error means the source is broken.
	Next() (*HTTPRecord, error)

	// Location returns the path or description of the source, for logging
	Location() string

	// Close releases the underlying stream. It must be called once whether the source is exhausted or not.
	Close() error
}

// RecordSourceOpener opens a RecordSource on demand, so that only one source needs to be open at any time
type RecordSourceOpener interface {
	Location() string
	Open() (RecordSource, error)
}
