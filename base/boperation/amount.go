package boperation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidAmount means an amount string has an unknown unit suffix or a bad magnitude
var ErrInvalidAmount = errors.New("invalid amount")

// amountUnits is the cumulative unit table, smallest first. The multiplier of a unit is the product of its own
// factor and the factors of all the units before it.
//
// Months are four weeks and years twelve such months, not calendar durations.
var amountUnits = []struct {
	suffix byte
	factor int64
}{
	{'s', 1000},
	{'n', 60},
	{'h', 60},
	{'d', 24},
	{'w', 7},
	{'m', 4},
	{'y', 12},
}

// ParseAmount converts a string like "500", "5s" or "3y" to milliseconds
//
// A string ending with a digit is a plain count of milliseconds. Otherwise the last character selects a unit from
// s(econd), n (minute), h(our), d(ay), w(eek), m(onth) and y(ear).
func ParseAmount(s string) (int64, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	last := s[len(s)-1]
	if last >= '0' && last <= '9' {
		return parseMagnitude(s, s)
	}

	multiplier := int64(1)
	found := false
	for _, unit := range amountUnits {
		multiplier *= unit.factor
		if unit.suffix == last {
			found = true
			break
		}
	}
	if !found {
		return 0, fmt.Errorf("%w: unknown unit '%c' in '%s'", ErrInvalidAmount, last, s)
	}

	magnitude, err := parseMagnitude(s[:len(s)-1], s)
	if err != nil {
		return 0, err
	}
	if magnitude > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("%w: '%s' overflows", ErrInvalidAmount, s)
	}
	return magnitude * multiplier, nil
}

func parseMagnitude(digits string, original string) (int64, error) {
	if len(digits) == 0 {
		return 0, fmt.Errorf("%w: missing number in '%s'", ErrInvalidAmount, original)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, fmt.Errorf("%w: non-numeric '%s'", ErrInvalidAmount, original)
		}
	}
	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s' overflows", ErrInvalidAmount, original)
	}
	return value, nil
}
