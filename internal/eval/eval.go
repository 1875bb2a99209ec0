// Package eval implements the tree-walking evaluator backend: it executes
// an *ast.Program directly against an *env.Context, propagating
// break/continue/return as value.ControlFlow marker values threaded back
// up through statement evaluation, per spec §4.7.
//
// Grounded on go-mix's eval package (Eval/evalStatement/evalExpression
// dispatch-by-type switches), generalized from go-mix's object model to
// prog's value.Value tagged union and its class/extern/capability
// extensions.
package eval

import (
	"fmt"

	"github.com/kristofer/prog/internal/args"
	"github.com/kristofer/prog/internal/ast"
	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/env"
	"github.com/kristofer/prog/internal/value"
)

// Eval executes every statement of prog against ctx in order, returning
// the value of a top-level `return`, if any, or value.None().
func Eval(prog *ast.Program, ctx *env.Context) (value.Value, error) {
	result, err := evalStatements(prog.Statements, ctx)
	if err != nil {
		return value.Value{}, err
	}
	if result.Kind == value.KindControlFlow && result.Control.Kind == value.ControlReturn {
		return result.Control.Value, nil
	}
	return value.None(), nil
}

// evalStatements runs stmts in order, short-circuiting as soon as one
// yields a control-flow marker (break/continue/return) to propagate.
func evalStatements(stmts []ast.Statement, ctx *env.Context) (value.Value, error) {
	for _, stmt := range stmts {
		result, err := evalStatement(stmt, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if result.Kind == value.KindControlFlow {
			return result, nil
		}
	}
	return value.None(), nil
}

func evalStatement(stmt ast.Statement, ctx *env.Context) (value.Value, error) {
	switch s := stmt.(type) {
	case *ast.VarDefine:
		v := value.None()
		if s.Init != nil {
			var err error
			v, err = evalExpr(s.Init, ctx)
			if err != nil {
				return value.Value{}, err
			}
		}
		ctx.Insert(s.Name, v)
		return value.None(), nil

	case *ast.VarAssign:
		v, err := evalExpr(s.Value, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if !ctx.Update(s.Name, v) {
			return value.Value{}, env.LookupError(s.Name, s.Sp)
		}
		return value.None(), nil

	case *ast.DoBlock:
		return evalStatements(s.Statements, ctx.Deeper())

	case *ast.ReturnStmt:
		v := value.None()
		if s.Value != nil {
			var err error
			v, err = evalExpr(s.Value, ctx)
			if err != nil {
				return value.Value{}, err
			}
		}
		return value.ControlOf(&value.ControlFlow{Kind: value.ControlReturn, Value: v}), nil

	case *ast.BreakStmt:
		return value.ControlOf(&value.ControlFlow{Kind: value.ControlBreak}), nil

	case *ast.ContinueStmt:
		return value.ControlOf(&value.ControlFlow{Kind: value.ControlContinue}), nil

	case *ast.WhileStmt:
		return evalWhile(s, ctx)

	case *ast.IfStmt:
		return evalIf(s, ctx)

	case *ast.CallStmt:
		_, err := evalExpr(s.Call, ctx)
		if err != nil {
			return value.Value{}, err
		}
		return value.None(), nil

	case *ast.ExprAssignStmt:
		return value.None(), evalExprAssign(s, ctx)

	case *ast.ClassDef:
		return value.None(), evalClassDef(s, ctx)

	default:
		return value.Value{}, diag.New(diag.KindParseInternal, stmt.Span(), fmt.Sprintf("unhandled statement type %T", stmt))
	}
}

func evalWhile(s *ast.WhileStmt, ctx *env.Context) (value.Value, error) {
	for {
		cond, err := evalExpr(s.Cond, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if !cond.Truthy() {
			return value.None(), nil
		}
		result, err := evalStatements(s.Body.Statements, ctx.Deeper())
		if err != nil {
			return value.Value{}, err
		}
		if result.Kind == value.KindControlFlow {
			switch result.Control.Kind {
			case value.ControlBreak:
				return value.None(), nil
			case value.ControlContinue:
				continue
			case value.ControlReturn:
				return result, nil
			}
		}
	}
}

func evalIf(s *ast.IfStmt, ctx *env.Context) (value.Value, error) {
	cond, err := evalExpr(s.Cond, ctx)
	if err != nil {
		return value.Value{}, err
	}
	if cond.Truthy() {
		return evalStatements(s.Then.Statements, ctx.Deeper())
	}
	for _, ei := range s.ElseIfs {
		eiCond, err := evalExpr(ei.Cond, ctx)
		if err != nil {
			return value.Value{}, err
		}
		if eiCond.Truthy() {
			return evalStatements(ei.Body.Statements, ctx.Deeper())
		}
	}
	if s.Else != nil {
		return evalStatements(s.Else.Statements, ctx.Deeper())
	}
	return value.None(), nil
}

func evalExprAssign(s *ast.ExprAssignStmt, ctx *env.Context) error {
	v, err := evalExpr(s.Value, ctx)
	if err != nil {
		return err
	}
	switch target := s.Target.(type) {
	case *ast.IndexAccess:
		recv, err := evalExpr(target.Target, ctx)
		if err != nil {
			return err
		}
		idx, err := evalExpr(target.Index, ctx)
		if err != nil {
			return err
		}
		return assignIndex(recv, idx, v, s.Sp)
	case *ast.FieldAccess:
		recv, err := evalExpr(target.Target, ctx)
		if err != nil {
			return err
		}
		return assignField(recv, target.Name, v, s.Sp)
	default:
		return diag.New(diag.KindExprNotAssignable, s.Sp, "expression not assignable")
	}
}

func evalClassDef(s *ast.ClassDef, ctx *env.Context) error {
	class := &value.Class{Name: s.Name, DefEnv: ctx}
	for _, f := range s.Fields {
		class.Fields = append(class.Fields, value.ClassField{
			Name:          f.Name,
			Init:          f.Init,
			Uninitialised: f.Init == nil,
		})
	}
	// A class is bound like any other value under its own name, so that
	// construction reads as a call: `Point({ x = 1, y = 2 })`, per spec §4.6.
	ctx.Insert(s.Name, value.ClassOf(class))
	return nil
}

// Bind is a convenience re-export so callers of eval don't also need to
// import internal/args directly for the common case of binding a schema
// against already-evaluated arguments.
var Bind = args.Bind
