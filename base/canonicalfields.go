package base

import (
	"strconv"

	"golang.org/x/exp/slices"
)

// FieldKind tells how a canonical field is stored in HTTPRecord
type FieldKind int

const (
	// TextField is stored as string
	TextField FieldKind = iota
	// MillisField is stored as int64 milliseconds, 0 meaning unset
	MillisField
)

// CanonicalField describes one named field of HTTPRecord and gives access to its value
type CanonicalField struct {
	Name string
	Kind FieldKind

	text   func(r *HTTPRecord) *string
	millis func(r *HTTPRecord) *int64
}

// CanonicalFields lists the fields participating in fingerprinting, in the order they are hashed
//
// The order must never change: fingerprints computed by earlier runs depend on it. It's also the order of fields
// in serialized output.
var CanonicalFields = []CanonicalField{
	textField("host", func(r *HTTPRecord) *string { return &r.Host }),
	millisField("interval_millis", func(r *HTTPRecord) *int64 { return &r.IntervalMillis }),
	textField("request_body", func(r *HTTPRecord) *string { return &r.RequestBody }),
	textField("request_content_type", func(r *HTTPRecord) *string { return &r.RequestContentType }),
	textField("request_headers_json", func(r *HTTPRecord) *string { return &r.RequestHeadersJSON }),
	textField("request_method", func(r *HTTPRecord) *string { return &r.RequestMethod }),
	textField("request_params_json", func(r *HTTPRecord) *string { return &r.RequestParamsJSON }),
	textField("request_url", func(r *HTTPRecord) *string { return &r.RequestURL }),
	textField("request_user_agent", func(r *HTTPRecord) *string { return &r.RequestUserAgent }),
	textField("response_body", func(r *HTTPRecord) *string { return &r.ResponseBody }),
	textField("response_code", func(r *HTTPRecord) *string { return &r.ResponseCode }),
	textField("response_content_type", func(r *HTTPRecord) *string { return &r.ResponseContentType }),
	textField("response_headers_json", func(r *HTTPRecord) *string { return &r.ResponseHeadersJSON }),
	millisField("response_time_millis", func(r *HTTPRecord) *int64 { return &r.ResponseTimeMillis }),
	textField("custom_fields_json", func(r *HTTPRecord) *string { return &r.CustomFieldsJSON }),
	textField("request_address", func(r *HTTPRecord) *string { return &r.RequestAddress }),
	textField("session_fields_json", func(r *HTTPRecord) *string { return &r.SessionFieldsJSON }),
}

func textField(name string, ref func(r *HTTPRecord) *string) CanonicalField {
	return CanonicalField{Name: name, Kind: TextField, text: ref}
}

func millisField(name string, ref func(r *HTTPRecord) *int64) CanonicalField {
	return CanonicalField{Name: name, Kind: MillisField, millis: ref}
}

// LookupCanonicalField finds a field by its serialized name
func LookupCanonicalField(name string) (CanonicalField, bool) {
	index := slices.IndexFunc(CanonicalFields, func(f CanonicalField) bool { return f.Name == name })
	if index == -1 {
		return CanonicalField{}, false
	}
	return CanonicalFields[index], true
}

// Text returns the canonical text of the field: the string itself, or decimal millis with 0 being empty
func (f CanonicalField) Text(r *HTTPRecord) string {
	if f.Kind == MillisField {
		v := *f.millis(r)
		if v == 0 {
			return ""
		}
		return strconv.FormatInt(v, 10)
	}
	return *f.text(r)
}

// Millis returns the value of a MillisField, or 0 for TextField
func (f CanonicalField) Millis(r *HTTPRecord) int64 {
	if f.Kind != MillisField {
		return 0
	}
	return *f.millis(r)
}

// SetText sets the value of a TextField; no effect on MillisField
func (f CanonicalField) SetText(r *HTTPRecord, value string) {
	if f.Kind == TextField {
		*f.text(r) = value
	}
}

// SetMillis sets the value of a MillisField; no effect on TextField
func (f CanonicalField) SetMillis(r *HTTPRecord, value int64) {
	if f.Kind == MillisField {
		*f.millis(r) = value
	}
}

// IsEmpty returns true if the field is absent in the record
func (f CanonicalField) IsEmpty(r *HTTPRecord) bool {
	if f.Kind == MillisField {
		return *f.millis(r) == 0
	}
	return len(*f.text(r)) == 0
}
