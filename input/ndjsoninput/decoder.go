package ndjsoninput

import (
	"fmt"
	"strconv"

	"github.com/relex/ndjson-transformer/base"
	"github.com/valyala/fastjson"
)

// decodeRecord fills the record from a JSON object; unknown keys and nulls are ignored
func decodeRecord(value *fastjson.Value, record *base.HTTPRecord) error {
	obj, oerr := value.Object()
	if oerr != nil {
		return fmt.Errorf("not an object: %s", value.Type())
	}
	var ferr error
	obj.Visit(func(key []byte, v *fastjson.Value) {
		if ferr != nil {
			return
		}
		field, known := base.LookupCanonicalField(string(key))
		if !known || v.Type() == fastjson.TypeNull {
			return
		}
		if err := decodeField(field, v, record); err != nil {
			ferr = fmt.Errorf("%s: %w", field.Name, err)
		}
	})
	return ferr
}

func decodeField(field base.CanonicalField, v *fastjson.Value, record *base.HTTPRecord) error {
	switch field.Kind {
	case base.TextField:
		switch v.Type() {
		case fastjson.TypeString:
			field.SetText(record, string(v.GetStringBytes()))
		case fastjson.TypeNumber:
			// response_code may be written as number
			field.SetText(record, string(v.MarshalTo(nil)))
		default:
			return fmt.Errorf("unexpected %s", v.Type())
		}
	case base.MillisField:
		switch v.Type() {
		case fastjson.TypeNumber:
			millis, err := v.Int64()
			if err != nil {
				return err
			}
			field.SetMillis(record, millis)
		case fastjson.TypeString:
			millis, err := strconv.ParseInt(string(v.GetStringBytes()), 10, 64)
			if err != nil {
				return err
			}
			field.SetMillis(record, millis)
		default:
			return fmt.Errorf("unexpected %s", v.Type())
		}
	}
	return nil
}
