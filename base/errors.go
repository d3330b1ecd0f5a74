package base

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord is wrapped by sources when one input record cannot be decoded
var ErrMalformedRecord = errors.New("malformed record")

// ConfigurationError is a fatal error found before any record is processed, e.g. invalid operation string
type ConfigurationError struct {
	Key string // the offending configuration key
	Err error
}

// NewConfigurationError creates a ConfigurationError for the given key
func NewConfigurationError(key string, err error) *ConfigurationError {
	return &ConfigurationError{Key: key, Err: err}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Key, e.Err.Error())
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// RecordTransformError is a recoverable error affecting a single record, which is to be skipped
type RecordTransformError struct {
	Stage string // name of the transform which failed
	Err   error
}

// NewRecordTransformError creates a RecordTransformError for the given transform stage
func NewRecordTransformError(stage string, err error) *RecordTransformError {
	return &RecordTransformError{Stage: stage, Err: err}
}

func (e *RecordTransformError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err.Error())
}

func (e *RecordTransformError) Unwrap() error {
	return e.Err
}

// IsRecordError returns true if the error only affects the current record and processing may continue
func IsRecordError(err error) bool {
	var rerr *RecordTransformError
	return errors.As(err, &rerr) || errors.Is(err, ErrMalformedRecord)
}
