package btest

import (
	"github.com/relex/ndjson-transformer/base"
)

// MemRecordSink is a RecordSink collecting copies of records in memory
type MemRecordSink struct {
	Records  []*base.HTTPRecord
	Closed   bool
	WriteErr error // returned from Write if set
}

// NewMemRecordSink creates an empty MemRecordSink
func NewMemRecordSink() *MemRecordSink {
	return &MemRecordSink{}
}

// Write stores a copy of the record
func (sink *MemRecordSink) Write(record *base.HTTPRecord) error {
	if sink.WriteErr != nil {
		return sink.WriteErr
	}
	sink.Records = append(sink.Records, record.Copy())
	return nil
}

// Close marks the sink closed
func (sink *MemRecordSink) Close() error {
	sink.Closed = true
	return nil
}
