package ttiming

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/relex/ndjson-transformer/base"
	"github.com/relex/ndjson-transformer/base/boperation"
)

func verifyResponseTimeOperation(op boperation.Operation) error {
	switch op.Kind {
	case boperation.Keep, boperation.Drop, boperation.Add, boperation.Subtract:
		return nil
	case boperation.Shuffle:
		if op.Amount <= 0 {
			return fmt.Errorf("'%s': amount must be positive", op.Raw)
		}
		return nil
	default:
		return fmt.Errorf("unsupported operation '%s'", op.Raw)
	}
}

// applyResponseTime updates the response time; unset values count as startedMillis for add and subtract
func applyResponseTime(op boperation.Operation, startedMillis int64, random *rand.Rand, record *base.HTTPRecord) error {
	current := record.ResponseTimeMillis
	if current == 0 {
		current = startedMillis
	}
	switch op.Kind {
	case boperation.Keep:
	case boperation.Drop:
		record.ResponseTimeMillis = 0
	case boperation.Add:
		amount := op.MustAmount()
		if current > math.MaxInt64-amount {
			return fmt.Errorf("response time %d overflows on '%s'", current, op.Raw)
		}
		record.ResponseTimeMillis = current + amount
	case boperation.Subtract:
		amount := op.MustAmount()
		if current < math.MinInt64+amount {
			return fmt.Errorf("response time %d overflows on '%s'", current, op.Raw)
		}
		record.ResponseTimeMillis = current - amount
	case boperation.Shuffle:
		record.ResponseTimeMillis = startedMillis - random.Int63n(op.MustAmount())
	case boperation.Randomize:
		return fmt.Errorf("unsupported response time operation '%s'", op.Raw)
	default:
		return fmt.Errorf("unknown response time operation %s", op.Kind)
	}
	return nil
}
