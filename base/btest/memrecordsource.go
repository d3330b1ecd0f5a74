// Package btest provides in-memory record sources and sinks for testing
package btest

import (
	"io"

	"github.com/relex/ndjson-transformer/base"
)

// MemRecordSource is a RecordSource and RecordSourceOpener serving records from memory
//
// Items may be errors, returned in place of records to simulate malformed or broken input.
type MemRecordSource struct {
	location string
	items    []interface{}
	next     int
	Opened   int  // count of Open calls
	Closed   bool // true if Close has been called
	OpenErr  error
}

// NewMemRecordSource creates a MemRecordSource of *base.HTTPRecord and error items
func NewMemRecordSource(location string, items ...interface{}) *MemRecordSource {
	return &MemRecordSource{
		location: location,
		items:    items,
	}
}

// Location returns the name given at creation
func (src *MemRecordSource) Location() string {
	return src.location
}

// Open returns the source itself
func (src *MemRecordSource) Open() (base.RecordSource, error) {
	src.Opened++
	if src.OpenErr != nil {
		return nil, src.OpenErr
	}
	return src, nil
}

// Next returns a copy of the next record, or the next error item
func (src *MemRecordSource) Next() (*base.HTTPRecord, error) {
	if src.next >= len(src.items) {
		return nil, io.EOF
	}
	item := src.items[src.next]
	src.next++
	switch v := item.(type) {
	case *base.HTTPRecord:
		return v.Copy(), nil
	case error:
		return nil, v
	default:
		panic("unsupported item type")
	}
}

// Close marks the source closed
func (src *MemRecordSource) Close() error {
	src.Closed = true
	return nil
}
