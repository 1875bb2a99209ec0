package vm

import (
	"fmt"

	"github.com/kristofer/prog/internal/bytecode"
	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/env"
	"github.com/kristofer/prog/internal/span"
	"github.com/kristofer/prog/internal/value"
)

// call implements OpCall: argc arguments sit on top of the stack above
// the callee. A VM-native function (built from a *bytecode.FuncProto by
// OpNewFunc) pushes a new frame executed by the outer run loop; an
// Intrinsic is invoked directly since it has no bytecode body.
func (vm *VM) call(caller *frame, argc int) error {
	argVals := make([]value.Value, argc)
	for i := argc - 1; i >= 0; i-- {
		argVals[i] = vm.pop()
	}
	callee := vm.pop()

	switch callee.Kind {
	case value.KindFunction:
		return vm.callFunction(callee.Function, argVals)
	case value.KindIntrinsic:
		ctx := caller.ctx
		result, err := callee.Intrinsic.Fn(ctx, argVals)
		if err != nil {
			if d, ok := diag.AsDiagnostic(err); ok {
				return d
			}
			return diag.New(diag.KindFunctionPanicked, span.Span{}, "intrinsic "+callee.Intrinsic.Name+" failed").WithCause(err)
		}
		vm.push(result)
		return nil
	default:
		return diag.New(diag.KindExprNotCallable, span.Span{}, "cannot call a "+callee.Kind.String())
	}
}

func (vm *VM) callFunction(fn *value.Function, argVals []value.Value) error {
	proto, ok := fn.Native.(*bytecode.FuncProto)
	if !ok {
		return diag.New(diag.KindParseInternal, span.Span{}, "VM cannot call a non-native function value; use the evaluator backend for tree-walked closures")
	}
	closed, ok := fn.Env.(*env.Context)
	if !ok {
		return diag.New(diag.KindParseInternal, span.Span{}, "function closure has no environment")
	}

	all := argVals
	if fn.Self != nil {
		all = append([]value.Value{*fn.Self}, argVals...)
	}
	if len(all) != len(proto.Params) {
		return diag.New(diag.KindArgCountMismatch, span.Span{}, fmt.Sprintf("expected %d arguments, got %d", len(proto.Params), len(all)))
	}

	callCtx := closed.Deeper()
	for i, p := range proto.Params {
		callCtx.Insert(p, all[i])
	}
	vm.frames = append(vm.frames, &frame{code: proto.Code, ctx: callCtx})
	return nil
}
