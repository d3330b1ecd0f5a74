// Package ndjsonoutput provides a record sink writing NDJSON files, optionally compressed by gzip or zstd
package ndjsonoutput

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/defs"
	"github.com/relex/ndjson-transformer/util"
)

// Sink writes records to one file in the order delivered
type Sink struct {
	location   string
	file       *os.File
	compressor io.WriteCloser
	writer     *bufio.Writer
	encoder    recordEncoder
}

// Create creates or truncates the file at path, with compression decided by file extension
//
// bufferSize is the size of buffer before compression, 0 = defs.OutputWriteBufferSize
func Create(path string, bufferSize datasize.ByteSize) (*Sink, error) {
	if bufferSize == 0 {
		bufferSize = defs.OutputWriteBufferSize
	}
	file, ferr := os.Create(path)
	if ferr != nil {
		return nil, ferr
	}
	compressor, cerr := util.NewCompressingWriter(util.CompressionByPath(path), file)
	if cerr != nil {
		file.Close()
		return nil, fmt.Errorf("%s: %w", path, cerr)
	}
	return &Sink{
		location:   path,
		file:       file,
		compressor: compressor,
		writer:     bufio.NewWriterSize(compressor, int(bufferSize.Bytes())),
		encoder:    recordEncoder{},
	}, nil
}

// Location returns the file path
func (sink *Sink) Location() string {
	return sink.location
}

// Write appends the record
func (sink *Sink) Write(record *base.HTTPRecord) error {
	if _, err := sink.writer.Write(sink.encoder.Encode(record)); err != nil {
		return fmt.Errorf("%s: %w", sink.location, err)
	}
	return nil
}

// Close flushes all buffers and closes the file, returning the first error
func (sink *Sink) Close() error {
	werr := sink.writer.Flush()
	cerr := sink.compressor.Close()
	ferr := sink.file.Close()
	for _, err := range []error{werr, cerr, ferr} {
		if err != nil {
			return fmt.Errorf("%s: %w", sink.location, err)
		}
	}
	return nil
}
