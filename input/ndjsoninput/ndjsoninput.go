// Package ndjsoninput provides record sources reading NDJSON files, optionally compressed by gzip or zstd
//
// Each line holds one JSON object keyed by the names in base.CanonicalFields
package ndjsoninput

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/defs"
	"github.com/relex/ndjson-transformer/util"
	"github.com/valyala/fastjson"
)

// Source reads records from one file
type Source struct {
	location   string
	file       *os.File
	stream     io.ReadCloser
	scanner    *bufio.Scanner
	parser     fastjson.Parser
	lineNumber int
}

// Opener opens Source lazily for the pipeline
type Opener struct {
	Path        string
	MaxLineSize datasize.ByteSize // 0 = defs.InputMaxLineSize
}

// NewOpeners creates an Opener for each of the paths
func NewOpeners(paths []string, maxLineSize datasize.ByteSize) []base.RecordSourceOpener {
	openers := make([]base.RecordSourceOpener, len(paths))
	for i, path := range paths {
		openers[i] = &Opener{Path: path, MaxLineSize: maxLineSize}
	}
	return openers
}

// Location returns the file path
func (o *Opener) Location() string {
	return o.Path
}

// Open opens the file
func (o *Opener) Open() (base.RecordSource, error) {
	return Open(o.Path, o.MaxLineSize)
}

// Open opens the file at path, with decompression decided by file extension
func Open(path string, maxLineSize datasize.ByteSize) (*Source, error) {
	if maxLineSize == 0 {
		maxLineSize = defs.InputMaxLineSize
	}
	file, ferr := os.Open(path)
	if ferr != nil {
		return nil, ferr
	}
	stream, serr := util.NewDecompressingReader(util.CompressionByPath(path), file)
	switch {
	case errors.Is(serr, io.EOF):
		// empty compressed file
		stream = io.NopCloser(bytes.NewReader(nil))
	case serr != nil:
		file.Close()
		return nil, fmt.Errorf("%s: %w", path, serr)
	}

	initialSize := int(defs.InputInitialLineBufferSize.Bytes())
	if initialSize > int(maxLineSize.Bytes()) {
		initialSize = int(maxLineSize.Bytes())
	}
	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 0, initialSize), int(maxLineSize.Bytes()))

	return &Source{
		location:   path,
		file:       file,
		stream:     stream,
		scanner:    scanner,
		lineNumber: 0,
	}, nil
}

// Location returns the file path
func (src *Source) Location() string {
	return src.location
}

// Next reads the next non-blank line and decodes it
//
// Undecodable lines are reported as base.ErrMalformedRecord and reading can continue with the next line.
func (src *Source) Next() (*base.HTTPRecord, error) {
	for src.scanner.Scan() {
		src.lineNumber++
		line := bytes.TrimSpace(src.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		value, perr := src.parser.ParseBytes(line)
		if perr != nil {
			return nil, fmt.Errorf("%s:%d: %w: %s", src.location, src.lineNumber, base.ErrMalformedRecord, perr.Error())
		}
		record := &base.HTTPRecord{}
		if derr := decodeRecord(value, record); derr != nil {
			return nil, fmt.Errorf("%s:%d: %w: %s", src.location, src.lineNumber, base.ErrMalformedRecord, derr.Error())
		}
		return record, nil
	}
	if err := src.scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s:%d: %w", src.location, src.lineNumber+1, err)
	}
	return nil, io.EOF
}

// Close closes the decompressor and the file
func (src *Source) Close() error {
	serr := src.stream.Close()
	ferr := src.file.Close()
	if serr != nil {
		return serr
	}
	return ferr
}
