package ndjsonoutput

import (
	"strconv"
	"unicode/utf8"

	"github.com/relex/ndjson-transformer/base"
)

const hexDigits = "0123456789abcdef"

// recordEncoder serializes records to single-line JSON objects, reusing its buffer
//
// Fields are written in order of base.CanonicalFields; empty fields are omitted.
type recordEncoder struct {
	buffer []byte
}

// Encode returns the serialized record followed by newline, valid until the next call
func (enc *recordEncoder) Encode(record *base.HTTPRecord) []byte {
	buf := append(enc.buffer[:0], '{')
	first := true
	for _, field := range base.CanonicalFields {
		if field.IsEmpty(record) {
			continue
		}
		if !first {
			buf = append(buf, ',')
		}
		first = false
		buf = appendJSONString(buf, field.Name)
		buf = append(buf, ':')
		switch field.Kind {
		case base.MillisField:
			buf = strconv.AppendInt(buf, field.Millis(record), 10)
		default:
			buf = appendJSONString(buf, field.Text(record))
		}
	}
	buf = append(buf, '}', '\n')
	enc.buffer = buf
	return buf
}

// appendJSONString appends s as quoted JSON string, replacing invalid UTF-8 with U+FFFD
func appendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				dst = append(dst, s[start:i]...)
				dst = append(dst, `�`...)
				i += size
				start = i
				continue
			}
			i += size
			continue
		}
		if c >= 0x20 && c != '"' && c != '\\' {
			i++
			continue
		}
		dst = append(dst, s[start:i]...)
		switch c {
		case '"', '\\':
			dst = append(dst, '\\', c)
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
		}
		i++
		start = i
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"')
}
