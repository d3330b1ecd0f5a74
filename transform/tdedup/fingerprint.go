package tdedup

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"github.com/relex/ndjson-transformer/base"
)

// Fingerprinter computes content digests of records over base.CanonicalFields
//
// Each field is hashed as its length in uvarint followed by its canonical text, so values cannot slide across
// field boundaries. Not concurrently usable.
type Fingerprinter struct {
	hasher hash.Hash
	lenBuf [binary.MaxVarintLen64]byte
	sumBuf []byte
}

// NewFingerprinter creates a Fingerprinter
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{
		hasher: sha256.New(),
		sumBuf: make([]byte, 0, sha256.Size),
	}
}

// Fingerprint returns the lowercase hex digest of the record
func (fp *Fingerprinter) Fingerprint(record *base.HTTPRecord) (string, error) {
	return fp.FingerprintFields(record, base.CanonicalFields)
}

// FingerprintFields returns the lowercase hex digest of the record over the given fields in the given order
func (fp *Fingerprinter) FingerprintFields(record *base.HTTPRecord, fields []base.CanonicalField) (string, error) {
	if record.IntervalMillis < 0 {
		return "", fmt.Errorf("corrupt interval_millis: %d", record.IntervalMillis)
	}
	fp.hasher.Reset()
	for _, field := range fields {
		text := field.Text(record)
		n := binary.PutUvarint(fp.lenBuf[:], uint64(len(text)))
		_, _ = fp.hasher.Write(fp.lenBuf[:n]) // hash.Hash never returns errors
		_, _ = io.WriteString(fp.hasher, text)
	}
	fp.sumBuf = fp.hasher.Sum(fp.sumBuf[:0])
	return hex.EncodeToString(fp.sumBuf), nil
}
