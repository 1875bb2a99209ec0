package eval

import (
	"fmt"
	"math"

	"github.com/kristofer/prog/internal/ast"
	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/env"
	"github.com/kristofer/prog/internal/span"
	"github.com/kristofer/prog/internal/value"
)

func evalExpr(expr ast.Expression, ctx *env.Context) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return value.Number(e.Value), nil
	case *ast.BoolLit:
		return value.Boolean(e.Value), nil
	case *ast.StringLit:
		return value.String(e.Value), nil
	case *ast.NoneLit:
		return value.None(), nil
	case *ast.Ident:
		v, ok := ctx.Get(e.Name)
		if !ok {
			return value.Value{}, env.LookupError(e.Name, e.Sp)
		}
		return v, nil
	case *ast.Paren:
		return evalExpr(e.Inner, ctx)
	case *ast.Unary:
		return evalUnary(e, ctx)
	case *ast.Binary:
		return evalBinary(e, ctx)
	case *ast.FuncLit:
		return value.FunctionOf(&value.Function{Params: e.Params, Body: e.Body, Env: ctx}), nil
	case *ast.ListLit:
		items := make([]value.Value, 0, e.Items.Len())
		for _, item := range e.Items.Items() {
			v, err := evalExpr(item, ctx)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, v)
		}
		return value.ListOf(items), nil
	case *ast.ObjectLit:
		obj := value.NewObject()
		for _, pair := range e.Pairs.Items() {
			if _, exists := obj.Get(pair.Name); exists {
				return value.Value{}, diag.New(diag.KindDuplicateObjEntry, pair.Sp, "duplicate object entry: "+pair.Name)
			}
			v, err := evalExpr(pair.Value, ctx)
			if err != nil {
				return value.Value{}, err
			}
			obj.Set(pair.Name, v)
		}
		return value.ObjectOf(obj), nil
	case *ast.ExternRef:
		return evalExternRef(e, ctx)
	case *ast.Call:
		return evalCall(e, ctx)
	case *ast.IndexAccess:
		recv, err := evalExpr(e.Target, ctx)
		if err != nil {
			return value.Value{}, err
		}
		idx, err := evalExpr(e.Index, ctx)
		if err != nil {
			return value.Value{}, err
		}
		return indexValue(recv, idx, e.Sp)
	case *ast.FieldAccess:
		recv, err := evalExpr(e.Target, ctx)
		if err != nil {
			return value.Value{}, err
		}
		return fieldValue(recv, e.Name, e.Sp)
	default:
		return value.Value{}, diag.New(diag.KindParseInternal, expr.Span(), fmt.Sprintf("unhandled expression type %T", expr))
	}
}

func evalExternRef(e *ast.ExternRef, ctx *env.Context) (value.Value, error) {
	if !ctx.Capabilities().Externs {
		return value.Value{}, diag.New(diag.KindContextDisallowed, e.Sp, "externs are not allowed in this context")
	}
	v, ok := ctx.Externs[e.Name]
	if !ok {
		return value.Value{}, diag.New(diag.KindInvalidExtern, e.Sp, "extern does not exist: "+e.Name)
	}
	return v, nil
}

func evalUnary(e *ast.Unary, ctx *env.Context) (value.Value, error) {
	operand, err := evalExpr(e.Operand, ctx)
	if err != nil {
		return value.Value{}, err
	}
	switch e.Op {
	case "-":
		if operand.Kind != value.KindNumber {
			return value.Value{}, diag.New(diag.KindUnsupportedUnary, e.Sp, "unary - requires a number, got "+operand.Kind.String())
		}
		return value.Number(-operand.Num), nil
	case "not":
		return value.Boolean(!operand.Truthy()), nil
	default:
		return value.Value{}, diag.New(diag.KindUnsupportedUnary, e.Sp, "unsupported unary operator: "+e.Op)
	}
}

func evalBinary(e *ast.Binary, ctx *env.Context) (value.Value, error) {
	// `and`/`or` short-circuit, so the rhs must be evaluated lazily.
	if e.Op == "and" {
		lhs, err := evalExpr(e.Lhs, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if !lhs.Truthy() {
			return lhs, nil
		}
		return evalExpr(e.Rhs, ctx)
	}
	if e.Op == "or" {
		lhs, err := evalExpr(e.Lhs, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if lhs.Truthy() {
			return lhs, nil
		}
		return evalExpr(e.Rhs, ctx)
	}

	lhs, err := evalExpr(e.Lhs, ctx)
	if err != nil {
		return value.Value{}, err
	}
	rhs, err := evalExpr(e.Rhs, ctx)
	if err != nil {
		return value.Value{}, err
	}
	return applyBinary(e.Op, lhs, rhs, e.Sp)
}

// applyBinary implements spec §4.4's arithmetic/comparison semantics; the
// VM's applyBinaryOp (internal/vm/ops.go) mirrors it so both backends agree.
func applyBinary(op string, lhs, rhs value.Value, sp span.Span) (value.Value, error) {
	switch op {
	case "+":
		if lhs.Kind == value.KindString || rhs.Kind == value.KindString {
			return value.String(lhs.Display() + rhs.Display()), nil
		}
		if lhs.Kind == value.KindNumber && rhs.Kind == value.KindNumber {
			return value.Number(lhs.Num + rhs.Num), nil
		}
		return value.Value{}, unsupportedBinary(op, lhs, rhs, sp)
	case "-", "*", "/", "%":
		if lhs.Kind != value.KindNumber || rhs.Kind != value.KindNumber {
			return value.Value{}, unsupportedBinary(op, lhs, rhs, sp)
		}
		switch op {
		case "-":
			return value.Number(lhs.Num - rhs.Num), nil
		case "*":
			return value.Number(lhs.Num * rhs.Num), nil
		case "/":
			if rhs.Num == 0 {
				return value.Value{}, diag.New(diag.KindUnsupportedBinary, sp, "division by zero")
			}
			return value.Number(lhs.Num / rhs.Num), nil
		case "%":
			if rhs.Num == 0 {
				return value.Value{}, diag.New(diag.KindUnsupportedBinary, sp, "modulo by zero")
			}
			return value.Number(math.Mod(lhs.Num, rhs.Num)), nil
		}
	case "==":
		return value.Boolean(value.Equal(lhs, rhs)), nil
	case "!=":
		return value.Boolean(!value.Equal(lhs, rhs)), nil
	case ">", "<", ">=", "<=":
		if lhs.Kind != value.KindNumber || rhs.Kind != value.KindNumber {
			return value.Value{}, unsupportedBinary(op, lhs, rhs, sp)
		}
		switch op {
		case ">":
			return value.Boolean(lhs.Num > rhs.Num), nil
		case "<":
			return value.Boolean(lhs.Num < rhs.Num), nil
		case ">=":
			return value.Boolean(lhs.Num >= rhs.Num), nil
		case "<=":
			return value.Boolean(lhs.Num <= rhs.Num), nil
		}
	}
	return value.Value{}, unsupportedBinary(op, lhs, rhs, sp)
}

func unsupportedBinary(op string, lhs, rhs value.Value, sp span.Span) error {
	return diag.New(diag.KindUnsupportedBinary, sp,
		fmt.Sprintf("unsupported operands for %s: %s and %s", op, lhs.Kind, rhs.Kind))
}
