package tdedup

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/relex/ndjson-transformer/base"
	"github.com/stretchr/testify/assert"
)

func newSampleRecord() *base.HTTPRecord {
	return &base.HTTPRecord{
		Host:                "demo-host",
		IntervalMillis:      1200,
		RequestBody:         `{"q":1}`,
		RequestContentType:  "application/json",
		RequestHeadersJSON:  `[["accept","*/*"]]`,
		RequestMethod:       "POST",
		RequestURL:          "https://example.com/search",
		RequestUserAgent:    "curl/8.0",
		ResponseBody:        "ok",
		ResponseCode:        "200",
		ResponseContentType: "text/plain",
		ResponseTimeMillis:  1700000000000,
		RequestAddress:      "10.0.0.1",
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	fp := NewFingerprinter()
	first, err := fp.Fingerprint(newSampleRecord())
	assert.NoError(t, err)
	second, _ := NewFingerprinter().Fingerprint(newSampleRecord())
	third, _ := fp.Fingerprint(newSampleRecord())
	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
	assert.Len(t, first, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", first)
}

func TestFingerprintEmptyRecord(t *testing.T) {
	// 17 fields of zero length, each hashed as a single 0x00 length byte
	digest, err := NewFingerprinter().Fingerprint(&base.HTTPRecord{})
	assert.NoError(t, err)
	assert.Equal(t, sha256Hex(make([]byte, len(base.CanonicalFields))), digest)
}

func TestFingerprintSensitivity(t *testing.T) {
	fp := NewFingerprinter()
	baseline, _ := fp.Fingerprint(newSampleRecord())

	for _, field := range base.CanonicalFields {
		r := newSampleRecord()
		if field.Kind == base.MillisField {
			field.SetMillis(r, field.Millis(r)+1)
		} else {
			field.SetText(r, field.Text(r)+"!")
		}
		changed, err := fp.Fingerprint(r)
		assert.NoError(t, err)
		assert.NotEqual(t, baseline, changed, field.Name)
	}
}

func TestFingerprintFieldBoundaries(t *testing.T) {
	fp := NewFingerprinter()
	a, _ := fp.Fingerprint(&base.HTTPRecord{Host: "abc"})
	b, _ := fp.Fingerprint(&base.HTTPRecord{RequestBody: "abc"})
	c, _ := fp.Fingerprint(&base.HTTPRecord{Host: "ab", RequestBody: "c"})
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, b, c)
}

func TestFingerprintFieldOrderMatters(t *testing.T) {
	fp := NewFingerprinter()
	record := &base.HTTPRecord{Host: "x", RequestBody: "y"}
	swapped := append([]base.CanonicalField(nil), base.CanonicalFields...)
	swapped[0], swapped[2] = swapped[2], swapped[0]

	inOrder, _ := fp.Fingerprint(record)
	outOfOrder, _ := fp.FingerprintFields(record, swapped)
	assert.NotEqual(t, inOrder, outOfOrder)

	// the swapped order sees the record with values exchanged as the original
	exchanged, _ := fp.FingerprintFields(&base.HTTPRecord{Host: "y", RequestBody: "x"}, swapped)
	assert.Equal(t, inOrder, exchanged)
}

func TestFingerprintZeroIsEmpty(t *testing.T) {
	fp := NewFingerprinter()
	unset := newSampleRecord()
	unset.ResponseTimeMillis = 0
	unset.IntervalMillis = 0
	withZero, _ := fp.Fingerprint(unset)

	// identical to a record where the numbers never existed
	absent := *unset
	absentDigest, _ := fp.Fingerprint(&absent)
	assert.Equal(t, withZero, absentDigest)

	// "0" text is not the same as unset
	text := newSampleRecord()
	text.ResponseTimeMillis = 0
	text.IntervalMillis = 0
	text.ResponseCode = ""
	textDigest, _ := fp.Fingerprint(text)
	text.ResponseCode = "0"
	zeroTextDigest, _ := fp.Fingerprint(text)
	assert.NotEqual(t, textDigest, zeroTextDigest)
}

func TestFingerprintCorruptInterval(t *testing.T) {
	r := newSampleRecord()
	r.IntervalMillis = -1
	_, err := NewFingerprinter().Fingerprint(r)
	assert.Error(t, err)
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
