// Package boperation parses configured operation strings such as "keep" or "add:1h" into typed operations
package boperation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/relex/ndjson-transformer/base"
)

// ErrInvalidOperation means an operation string doesn't match the grammar of its key
var ErrInvalidOperation = errors.New("invalid operation")

// DefaultOperation is used for keys without configured value
const DefaultOperation = "keep"

// Kind is the discriminant of Operation
type Kind int

// The closed set of operation kinds
const (
	Keep Kind = iota
	Drop
	Add
	Subtract
	Shuffle
	Randomize
)

var kindNames = map[string]Kind{
	"keep":      Keep,
	"drop":      Drop,
	"add":       Add,
	"subtract":  Subtract,
	"shuffle":   Shuffle,
	"randomize": Randomize,
}

func (k Kind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Operation is a validated configuration value, immutable after parsing
type Operation struct {
	Kind      Kind
	Amount    int64 // milliseconds, only meaningful if HasAmount
	HasAmount bool
	Raw       string // the original configuration string
}

// MustAmount returns the amount or panics if the operation doesn't have one
func (op Operation) MustAmount() int64 {
	if !op.HasAmount {
		panic(fmt.Sprintf("operation '%s' has no amount", op.Raw))
	}
	return op.Amount
}

func (op Operation) String() string {
	return op.Raw
}

// Lookup fetches the raw configured string of a key, returning false if the key is not configured
type Lookup func(key string) (string, bool)

// Parse looks up the value of key, validates it against grammar and converts it to Operation
//
// Unconfigured or empty values mean DefaultOperation. Any error returned is *base.ConfigurationError naming the key.
func Parse(key string, lookup Lookup, grammar Grammar) (Operation, error) {
	raw, found := lookup(key)
	if !found || len(raw) == 0 {
		raw = DefaultOperation
	}

	if !grammar.Match(raw) {
		return Operation{}, base.NewConfigurationError(key,
			fmt.Errorf("%w '%s', should be %s", ErrInvalidOperation, raw, grammar.String()))
	}

	name, arg, hasArg := strings.Cut(raw, ":")
	kind, known := kindNames[name]
	if !known {
		// grammar tokens are verified when grammar is created
		return Operation{}, base.NewConfigurationError(key, fmt.Errorf("%w '%s': unknown name", ErrInvalidOperation, raw))
	}

	op := Operation{Kind: kind, Raw: raw}
	if hasArg {
		amount, err := ParseAmount(arg)
		if err != nil {
			return Operation{}, base.NewConfigurationError(key, err)
		}
		op.Amount = amount
		op.HasAmount = true
	}
	return op, nil
}
