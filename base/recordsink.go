package base

// RecordSink represents an output stream accepting records one by one in delivered order
type RecordSink interface {
	// Write appends the record to the stream. The record may be reused by caller afterwards.
	Write(record *HTTPRecord) error

	// Close flushes and finalizes the stream. It must be called once whether writing failed or not.
	Close() error
}
