package eval

import (
	"fmt"

	"github.com/kristofer/prog/internal/ast"
	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/env"
	"github.com/kristofer/prog/internal/span"
	"github.com/kristofer/prog/internal/value"
)

func evalCall(c *ast.Call, ctx *env.Context) (value.Value, error) {
	callee, err := evalExpr(c.Callee, ctx)
	if err != nil {
		return value.Value{}, err
	}
	argVals := make([]value.Value, 0, c.Args.Len())
	for _, a := range c.Args.Items() {
		v, err := evalExpr(a, ctx)
		if err != nil {
			return value.Value{}, err
		}
		argVals = append(argVals, v)
	}

	switch callee.Kind {
	case value.KindFunction:
		return callFunction(callee.Function, argVals, c.Sp)
	case value.KindIntrinsic:
		return callIntrinsic(callee.Intrinsic, ctx, argVals, c.Sp)
	case value.KindClass:
		return constructClass(callee.Class, argVals, c.Sp)
	default:
		return value.Value{}, diag.New(diag.KindExprNotCallable, c.Sp, "cannot call a "+callee.Kind.String())
	}
}

// callFunction binds argVals to fn's parameters and evaluates its body in
// a fresh frame layered over the closed-over environment, per spec §4.7.
// A pre-bound Self is bound as `self`; a leading parameter named `self`
// is dropped from the formal list rather than taken from argVals.
func callFunction(fn *value.Function, argVals []value.Value, sp span.Span) (value.Value, error) {
	closed, ok := fn.Env.(*env.Context)
	if !ok {
		return value.Value{}, diag.New(diag.KindParseInternal, sp, "function closure has no environment")
	}
	callCtx := closed.Deeper()
	params := fn.Params
	if fn.Self != nil {
		callCtx.Insert("self", *fn.Self)
		if len(params) > 0 && params[0] == "self" {
			params = params[1:]
		}
	}
	if len(argVals) != len(params) {
		return value.Value{}, diag.New(diag.KindArgCountMismatch, sp,
			fmt.Sprintf("expected %d arguments, got %d", len(params), len(argVals)))
	}
	for i, p := range params {
		callCtx.Insert(p, argVals[i])
	}
	result, err := evalStatements(fn.Body.Statements, callCtx)
	if err != nil {
		return value.Value{}, err
	}
	if result.Kind == value.KindControlFlow && result.Control.Kind == value.ControlReturn {
		return result.Control.Value, nil
	}
	return value.None(), nil
}

func callIntrinsic(in *value.Intrinsic, ctx *env.Context, argVals []value.Value, sp span.Span) (value.Value, error) {
	v, err := in.Fn(ctx, argVals)
	if err != nil {
		if d, ok := diag.AsDiagnostic(err); ok {
			return value.Value{}, d
		}
		return value.Value{}, diag.New(diag.KindFunctionPanicked, sp, "intrinsic "+in.Name+" failed").WithCause(err)
	}
	return v, nil
}

// constructClass builds a ClassInstance from a single object-literal
// argument whose keys must match all of the class's uninitialised fields
// one-to-one, per spec §4.7: an unknown or missing key is
// InvalidClassConstruction. Initialised fields (methods) are evaluated
// against the class's declaring environment so `self` resolves once
// bound and enclosing globals/locals stay reachable.
func constructClass(class *value.Class, argVals []value.Value, sp span.Span) (value.Value, error) {
	if len(argVals) != 1 || argVals[0].Kind != value.KindObject {
		return value.Value{}, diag.New(diag.KindInvalidClassConstr, sp,
			"class construction requires exactly one object literal argument")
	}
	fields := argVals[0].Object

	instObj := value.NewObject()
	instance := &value.ClassInstance{Class: class, Fields: instObj}
	selfVal := value.InstanceOf(instance)

	seen := make(map[string]bool, len(fields.Order))
	for _, f := range class.Fields {
		if f.Uninitialised {
			v, ok := fields.Get(f.Name)
			if !ok {
				return value.Value{}, diag.New(diag.KindInvalidClassConstr, sp, "missing field in class construction: "+f.Name)
			}
			instObj.Set(f.Name, v)
			seen[f.Name] = true
			continue
		}
		v, err := evalFieldInit(f, selfVal, class)
		if err != nil {
			return value.Value{}, err
		}
		instObj.Set(f.Name, v)
	}
	for _, name := range fields.Order {
		if !seen[name] {
			return value.Value{}, diag.New(diag.KindInvalidClassConstr, sp, "unknown field in class construction: "+name)
		}
	}
	return selfVal, nil
}

// evalFieldInit evaluates a class field's initializer against the
// environment the class was declared in, so a method or a non-func
// initializer can reference enclosing globals/locals. Func-literal
// initializers become methods with the instance pre-bound as `self`
// (see callFunction), per spec §4.6.
func evalFieldInit(f value.ClassField, self value.Value, class *value.Class) (value.Value, error) {
	defCtx, _ := class.DefEnv.(*env.Context)
	lit, isFunc := f.Init.(*ast.FuncLit)
	if !isFunc {
		return evalExpr(f.Init, defCtx)
	}
	return value.FunctionOf(&value.Function{
		Name:   f.Name,
		Params: lit.Params,
		Body:   lit.Body,
		Env:    defCtx,
		Self:   &self,
	}), nil
}
