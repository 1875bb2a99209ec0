package compiler

import (
	"fmt"

	"github.com/kristofer/prog/internal/ast"
	"github.com/kristofer/prog/internal/bytecode"
)

func (c *Compiler) compileExpr(expr ast.Expression, code *bytecode.Bytecode) error {
	switch e := expr.(type) {
	case *ast.NumberLit:
		code.Emit(bytecode.OpPush, code.AddConstant(e.Value))
		return nil
	case *ast.BoolLit:
		code.Emit(bytecode.OpPush, code.AddConstant(e.Value))
		return nil
	case *ast.StringLit:
		code.Emit(bytecode.OpPush, code.AddConstant(e.Value))
		return nil
	case *ast.NoneLit:
		code.Emit(bytecode.OpPush, code.AddConstant(nil))
		return nil
	case *ast.Ident:
		code.Emit(bytecode.OpLoad, code.AddName(e.Name))
		return nil
	case *ast.Paren:
		return c.compileExpr(e.Inner, code)
	case *ast.Unary:
		return c.compileUnary(e, code)
	case *ast.Binary:
		return c.compileBinary(e, code)
	case *ast.FuncLit:
		return c.compileFuncLit(e, code)
	case *ast.Call:
		return c.compileCall(e, code)
	default:
		return fmt.Errorf("compiler: expression type %T not yet lowered to bytecode", expr)
	}
}

func (c *Compiler) compileUnary(e *ast.Unary, code *bytecode.Bytecode) error {
	if err := c.compileExpr(e.Operand, code); err != nil {
		return err
	}
	switch e.Op {
	case "-":
		code.Emit(bytecode.OpNeg, 0)
	case "not":
		code.Emit(bytecode.OpNot, 0)
	default:
		return fmt.Errorf("compiler: unsupported unary operator %q", e.Op)
	}
	return nil
}

// compileBinary lowers `and` to DUP/JTF/POP and `or` to DUP/JT/POP around
// a label that skips the rhs, so both backends observe identical
// short-circuit evaluation order; the remaining operators map directly
// onto an arithmetic or comparison opcode.
func (c *Compiler) compileBinary(e *ast.Binary, code *bytecode.Bytecode) error {
	switch e.Op {
	case "and":
		if err := c.compileExpr(e.Lhs, code); err != nil {
			return err
		}
		code.Emit(bytecode.OpDup, 0)
		shortCircuit := c.label()
		code.Emit(bytecode.OpJtf, shortCircuit)
		code.Emit(bytecode.OpPop, 0)
		if err := c.compileExpr(e.Rhs, code); err != nil {
			return err
		}
		code.Emit(bytecode.OpLabel, shortCircuit)
		return nil
	case "or":
		if err := c.compileExpr(e.Lhs, code); err != nil {
			return err
		}
		code.Emit(bytecode.OpDup, 0)
		shortCircuit := c.label()
		code.Emit(bytecode.OpJt, shortCircuit)
		code.Emit(bytecode.OpPop, 0)
		if err := c.compileExpr(e.Rhs, code); err != nil {
			return err
		}
		code.Emit(bytecode.OpLabel, shortCircuit)
		return nil
	}

	if err := c.compileExpr(e.Lhs, code); err != nil {
		return err
	}
	if err := c.compileExpr(e.Rhs, code); err != nil {
		return err
	}
	// `!=` has no dedicated opcode; it lowers to EQ followed by NOT.
	if e.Op == "!=" {
		code.Emit(bytecode.OpEq, 0)
		code.Emit(bytecode.OpNot, 0)
		return nil
	}
	op, ok := binaryOpcodes[e.Op]
	if !ok {
		return fmt.Errorf("compiler: unsupported binary operator %q", e.Op)
	}
	code.Emit(op, 0)
	return nil
}

var binaryOpcodes = map[string]bytecode.Opcode{
	"+":  bytecode.OpAdd,
	"-":  bytecode.OpSub,
	"*":  bytecode.OpMul,
	"/":  bytecode.OpDiv,
	"%":  bytecode.OpMod,
	"==": bytecode.OpEq,
	">":  bytecode.OpGt,
	"<":  bytecode.OpLt,
	">=": bytecode.OpGte,
	"<=": bytecode.OpLte,
}

// compileFuncLit compiles a function literal's body into its own nested
// Bytecode unit, wrapped in a *bytecode.FuncProto constant; the VM turns
// that prototype into a closure value at NEWFUNC execution time by
// capturing the current frame, per spec §4.8.
func (c *Compiler) compileFuncLit(e *ast.FuncLit, code *bytecode.Bytecode) error {
	body := bytecode.New()
	if err := c.compileStatements(e.Body.Statements, body); err != nil {
		return err
	}
	body.Emit(bytecode.OpPush, body.AddConstant(nil))
	body.Emit(bytecode.OpRet, 0)

	proto := &bytecode.FuncProto{Params: e.Params, Code: body}
	code.Emit(bytecode.OpNewFunc, code.AddConstant(proto))
	return nil
}

func (c *Compiler) compileCall(e *ast.Call, code *bytecode.Bytecode) error {
	if err := c.compileExpr(e.Callee, code); err != nil {
		return err
	}
	for _, a := range e.Args.Items() {
		if err := c.compileExpr(a, code); err != nil {
			return err
		}
	}
	code.Emit(bytecode.OpCall, e.Args.Len())
	return nil
}
