package intrinsics

import (
	"github.com/google/uuid"

	"github.com/kristofer/prog/internal/value"
)

// uuidIntrinsic implements `uuid()`, returning a random (v4) UUID string.
func uuidIntrinsic() *value.Intrinsic {
	return &value.Intrinsic{Name: "uuid", Fn: func(ctxAny any, argVals []value.Value) (value.Value, error) {
		if _, err := asContext(ctxAny); err != nil {
			return value.Value{}, err
		}
		return value.String(uuid.New().String()), nil
	}}
}
