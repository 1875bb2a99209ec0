package vm

import (
	"fmt"
	"math"

	"github.com/kristofer/prog/internal/bytecode"
	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/span"
	"github.com/kristofer/prog/internal/value"
)

// applyBinaryOp implements the arithmetic/comparison opcodes, matching
// internal/eval's applyBinary semantics bit-for-bit so both backends
// agree, per spec §8's equivalence property.
func applyBinaryOp(op bytecode.Opcode, lhs, rhs value.Value) (value.Value, error) {
	switch op {
	case bytecode.OpAdd:
		if lhs.Kind == value.KindString || rhs.Kind == value.KindString {
			return value.String(lhs.Display() + rhs.Display()), nil
		}
		if lhs.Kind == value.KindNumber && rhs.Kind == value.KindNumber {
			return value.Number(lhs.Num + rhs.Num), nil
		}
		return value.Value{}, unsupported(op, lhs, rhs)
	case bytecode.OpSub:
		if lhs.Kind != value.KindNumber || rhs.Kind != value.KindNumber {
			return value.Value{}, unsupported(op, lhs, rhs)
		}
		return value.Number(lhs.Num - rhs.Num), nil
	case bytecode.OpMul:
		if lhs.Kind != value.KindNumber || rhs.Kind != value.KindNumber {
			return value.Value{}, unsupported(op, lhs, rhs)
		}
		return value.Number(lhs.Num * rhs.Num), nil
	case bytecode.OpDiv:
		if lhs.Kind != value.KindNumber || rhs.Kind != value.KindNumber {
			return value.Value{}, unsupported(op, lhs, rhs)
		}
		if rhs.Num == 0 {
			return value.Value{}, diag.New(diag.KindUnsupportedBinary, span.Span{}, "division by zero")
		}
		return value.Number(lhs.Num / rhs.Num), nil
	case bytecode.OpMod:
		if lhs.Kind != value.KindNumber || rhs.Kind != value.KindNumber {
			return value.Value{}, unsupported(op, lhs, rhs)
		}
		if rhs.Num == 0 {
			return value.Value{}, diag.New(diag.KindUnsupportedBinary, span.Span{}, "modulo by zero")
		}
		return value.Number(math.Mod(lhs.Num, rhs.Num)), nil
	case bytecode.OpEq:
		return value.Boolean(value.Equal(lhs, rhs)), nil
	case bytecode.OpGt, bytecode.OpLt, bytecode.OpGte, bytecode.OpLte:
		if lhs.Kind != value.KindNumber || rhs.Kind != value.KindNumber {
			return value.Value{}, unsupported(op, lhs, rhs)
		}
		switch op {
		case bytecode.OpGt:
			return value.Boolean(lhs.Num > rhs.Num), nil
		case bytecode.OpLt:
			return value.Boolean(lhs.Num < rhs.Num), nil
		case bytecode.OpGte:
			return value.Boolean(lhs.Num >= rhs.Num), nil
		case bytecode.OpLte:
			return value.Boolean(lhs.Num <= rhs.Num), nil
		}
	}
	return value.Value{}, unsupported(op, lhs, rhs)
}

func unsupported(op bytecode.Opcode, lhs, rhs value.Value) error {
	return diag.New(diag.KindUnsupportedBinary, span.Span{},
		fmt.Sprintf("unsupported operands for %s: %s and %s", op, lhs.Kind, rhs.Kind))
}
