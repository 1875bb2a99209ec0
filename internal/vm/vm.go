// Package vm implements the stack-machine backend: it executes compiled
// *bytecode.Bytecode directly, without walking the AST, per spec §4.9.
//
// Jump instructions (JMP/JT/JTF) read their target label id, look it up
// in the current Bytecode's Labels table, and swap the frame's program
// counter to the resolved instruction index — an index swap rather than
// arithmetic on byte offsets, matching the label-based instruction set in
// internal/bytecode.
//
// Grounded on kristofer-smog's pkg/vm (frame/stack-trace structure,
// RuntimeError style), generalized from smog's message-send dispatch to
// prog's arithmetic/comparison opcode set and diag.Diagnostic-carrying
// errors.
package vm

import (
	"fmt"

	"github.com/kristofer/prog/internal/bytecode"
	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/env"
	"github.com/kristofer/prog/internal/span"
	"github.com/kristofer/prog/internal/value"
)

// frame is one active call's execution state: its code, program counter,
// and environment.
type frame struct {
	code *bytecode.Bytecode
	pc   int
	ctx  *env.Context
}

// VM executes Bytecode against a value stack and a call-frame stack.
type VM struct {
	stack  []value.Value
	frames []*frame
}

// New creates a VM ready to Run a top-level Bytecode unit.
func New() *VM {
	return &VM{}
}

// Run executes code to completion in ctx, returning the value the
// top-level unit returned.
func (vm *VM) Run(code *bytecode.Bytecode, ctx *env.Context) (value.Value, error) {
	vm.frames = append(vm.frames, &frame{code: code, ctx: ctx})
	return vm.execute()
}

func (vm *VM) push(v value.Value) { vm.stack = append(vm.stack, v) }

func (vm *VM) pop() value.Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}

func (vm *VM) top() *frame { return vm.frames[len(vm.frames)-1] }

// execute runs instructions from the current top frame until it returns,
// popping back through any frames CALL pushed, until the original
// top-level frame itself returns.
func (vm *VM) execute() (value.Value, error) {
	baseDepth := len(vm.frames) - 1
	for len(vm.frames) > baseDepth {
		f := vm.top()
		if f.pc >= len(f.code.Instructions) {
			return value.Value{}, vm.runtimeErr(diag.KindParseInternal, "instruction pointer ran off the end of bytecode")
		}
		instr := f.code.Instructions[f.pc]
		f.pc++

		done, result, err := vm.step(f, instr)
		if err != nil {
			return value.Value{}, err
		}
		if done {
			vm.frames = vm.frames[:len(vm.frames)-1]
			if len(vm.frames) == baseDepth {
				return result, nil
			}
			vm.push(result)
		}
	}
	return value.None(), nil
}

// step executes one instruction against f. done reports whether the
// instruction ended f's frame (OpRet), in which case result is its return
// value.
func (vm *VM) step(f *frame, instr bytecode.Instruction) (done bool, result value.Value, err error) {
	switch instr.Op {
	case bytecode.OpPush:
		vm.push(constantValue(f.code.Constants[instr.Operand]))
	case bytecode.OpPop:
		vm.pop()
	case bytecode.OpDup:
		vm.push(vm.stack[len(vm.stack)-1])
	case bytecode.OpLoad:
		name := f.code.Names[instr.Operand]
		v, ok := f.ctx.Get(name)
		if !ok {
			return false, value.Value{}, env.LookupError(name, span.Span{})
		}
		vm.push(v)
	case bytecode.OpStore:
		name := f.code.Names[instr.Operand]
		v := vm.stack[len(vm.stack)-1]
		if !f.ctx.Update(name, v) {
			f.ctx.Insert(name, v)
		}
	case bytecode.OpRet:
		return true, vm.pop(), nil
	case bytecode.OpNewFunc:
		proto := f.code.Constants[instr.Operand].(*bytecode.FuncProto)
		vm.push(value.FunctionOf(&value.Function{Name: proto.Name, Params: proto.Params, Env: f.ctx, Native: proto}))
	case bytecode.OpLabel:
		// Markers only; execution falls through.
	case bytecode.OpCall:
		return false, value.Value{}, vm.call(f, instr.Operand)
	case bytecode.OpJmp:
		f.pc = f.code.Labels[instr.Operand]
	case bytecode.OpJt:
		if vm.pop().Truthy() {
			f.pc = f.code.Labels[instr.Operand]
		}
	case bytecode.OpJtf:
		if !vm.pop().Truthy() {
			f.pc = f.code.Labels[instr.Operand]
		}
	case bytecode.OpAdd, bytecode.OpSub, bytecode.OpMul, bytecode.OpDiv, bytecode.OpMod,
		bytecode.OpEq, bytecode.OpGt, bytecode.OpLt, bytecode.OpGte, bytecode.OpLte:
		rhs, lhs := vm.pop(), vm.pop()
		v, err := applyBinaryOp(instr.Op, lhs, rhs)
		if err != nil {
			return false, value.Value{}, err
		}
		vm.push(v)
	case bytecode.OpNeg:
		operand := vm.pop()
		if operand.Kind != value.KindNumber {
			return false, value.Value{}, vm.runtimeErr(diag.KindUnsupportedUnary, "unary - requires a number, got "+operand.Kind.String())
		}
		vm.push(value.Number(-operand.Num))
	case bytecode.OpNot:
		vm.push(value.Boolean(!vm.pop().Truthy()))
	default:
		return false, value.Value{}, vm.runtimeErr(diag.KindParseInternal, fmt.Sprintf("unhandled opcode %s", instr.Op))
	}
	return false, value.Value{}, nil
}

func (vm *VM) runtimeErr(kind diag.Kind, msg string) error {
	return diag.New(kind, span.Span{}, msg)
}

func constantValue(c any) value.Value {
	return bytecode.ConstantAsValue(c)
}
