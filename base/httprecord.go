package base

// HTTPRecord defines one logged HTTP transaction read from a record source
//
// String fields are empty when absent; empty fields are the same as missing fields and excluded from output.
// Numeric fields use 0 for "unset".
type HTTPRecord struct {
	Host                string
	IntervalMillis      int64 // non-negative, 0 = unset
	RequestBody         string
	RequestContentType  string
	RequestHeadersJSON  string
	RequestMethod       string
	RequestParamsJSON   string
	RequestURL          string
	RequestUserAgent    string
	ResponseBody        string
	ResponseCode        string
	ResponseContentType string
	ResponseHeadersJSON string
	ResponseTimeMillis  int64 // epoch milliseconds, 0 = unset
	CustomFieldsJSON    string
	RequestAddress      string
	SessionFieldsJSON   string
}

// Copy makes a shallow copy of the record, enough since all fields are values
func (r *HTTPRecord) Copy() *HTTPRecord {
	c := *r
	return &c
}
