package ttiming

import (
	"fmt"
	"math/rand"

	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/base/boperation"
)

func verifyIntervalOperation(op boperation.Operation) error {
	switch op.Kind {
	case boperation.Keep, boperation.Drop:
		return nil
	case boperation.Randomize:
		if op.Amount <= 0 {
			return fmt.Errorf("'%s': amount must be positive", op.Raw)
		}
		return nil
	default:
		return fmt.Errorf("unsupported operation '%s'", op.Raw)
	}
}

func applyInterval(op boperation.Operation, random *rand.Rand, record *base.HTTPRecord) error {
	switch op.Kind {
	case boperation.Keep:
	case boperation.Drop:
		record.IntervalMillis = 0
	case boperation.Randomize:
		record.IntervalMillis = random.Int63n(op.MustAmount())
	case boperation.Add, boperation.Subtract, boperation.Shuffle:
		return fmt.Errorf("unsupported interval operation '%s'", op.Raw)
	default:
		return fmt.Errorf("unknown interval operation %s", op.Kind)
	}
	return nil
}
