package ndjsoninput

import (
	"fmt"
	"testing"

	"github.com/relex/ndjson-transformer/base"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fastjson"
)

func TestDecodeRecordAllFields(t *testing.T) {
	var parser fastjson.Parser
	for i, field := range base.CanonicalFields {
		var line string
		var expected string
		if field.Kind == base.MillisField {
			line = fmt.Sprintf(`{"%s":%d,"not_a_field":"x"}`, field.Name, 1000+i)
			expected = fmt.Sprint(1000 + i)
		} else {
			line = fmt.Sprintf(`{"%s":"v%d","not_a_field":"x"}`, field.Name, i)
			expected = fmt.Sprintf("v%d", i)
		}
		value, perr := parser.Parse(line)
		assert.NoError(t, perr)

		record := &base.HTTPRecord{}
		assert.NoError(t, decodeRecord(value, record), field.Name)
		assert.Equal(t, expected, field.Text(record), field.Name)
		for _, other := range base.CanonicalFields {
			if other.Name != field.Name {
				assert.True(t, other.IsEmpty(record), "%s set by %s", other.Name, field.Name)
			}
		}
	}
}

func TestDecodeRecordErrors(t *testing.T) {
	var parser fastjson.Parser

	value, _ := parser.Parse(`[1,2]`)
	assert.ErrorContains(t, decodeRecord(value, &base.HTTPRecord{}), "not an object")

	value, _ = parser.Parse(`{"interval_millis":"soon"}`)
	assert.ErrorContains(t, decodeRecord(value, &base.HTTPRecord{}), "interval_millis")

	value, _ = parser.Parse(`{"host":{"name":"example.org"}}`)
	assert.ErrorContains(t, decodeRecord(value, &base.HTTPRecord{}), "host: unexpected object")
}
