package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies the compression format of a record file
type Compression int

// Supported compression formats
const (
	NoCompression Compression = iota
	GzipCompression
	ZstdCompression
)

func (c Compression) String() string {
	switch c {
	case NoCompression:
		return "none"
	case GzipCompression:
		return "gzip"
	case ZstdCompression:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

// CompressionByPath decides compression format from file extension: .gz, .zst / .zstd or none
func CompressionByPath(path string) Compression {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		return GzipCompression
	case strings.HasSuffix(lower, ".zst"), strings.HasSuffix(lower, ".zstd"):
		return ZstdCompression
	default:
		return NoCompression
	}
}

// NewDecompressingReader wraps the reader with a decompressor. Closing the result doesn't close the underlying reader.
func NewDecompressingReader(c Compression, r io.Reader) (io.ReadCloser, error) {
	switch c {
	case NoCompression:
		return io.NopCloser(r), nil
	case GzipCompression:
		gunzipper, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return gunzipper, nil
	case ZstdCompression:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return decoder.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unsupported compression %s", c)
	}
}

// NewCompressingWriter wraps the writer with a compressor. Closing the result flushes the compressor but doesn't
// close the underlying writer.
func NewCompressingWriter(c Compression, w io.Writer) (io.WriteCloser, error) {
	switch c {
	case NoCompression:
		return nopWriteCloser{w}, nil
	case GzipCompression:
		gzipper, err := gzip.NewWriterLevel(w, gzip.DefaultCompression)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return gzipper, nil
	case ZstdCompression:
		encoder, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return encoder, nil
	default:
		return nil, fmt.Errorf("unsupported compression %s", c)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
