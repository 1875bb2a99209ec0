package value

import "github.com/kristofer/prog/internal/ast"

// Function is a user-defined closure: a func literal captured together
// with the environment it closed over. Env is typed as `any` here to
// avoid an import cycle with internal/env, which itself stores Values;
// the evaluator and VM type-assert it back to *env.Context.
type Function struct {
	Name   string // empty for anonymous func literals
	Params []string
	Body   *ast.DoBlock
	Env    any
	// Self, when non-nil, is the class instance a method is bound to;
	// the evaluator binds it as `self` on each call and drops a leading
	// parameter named `self` from the formal list, per spec §4.6.
	Self *Value
	// Native holds a backend-specific closure payload for functions
	// built by the VM backend (a *bytecode.FuncProto) rather than the
	// tree-walking evaluator; kept as `any` to avoid value importing
	// bytecode, which itself imports value for constant-pool decoding.
	Native any
}

// IntrinsicFn is the Go implementation backing an Intrinsic. args is the
// raw positional argument list, which each intrinsic binds against its own
// internal/args schema; ctx is the calling environment (typed as `any` for
// the same reason as Function.Env).
type IntrinsicFn func(ctx any, args []Value) (Value, error)

// Intrinsic is a host-provided function exposed to program code (print,
// input, import, ...), per spec §4.10. A primitive's dispatch-map method
// (`.len`, `.sub`, ...) is also an Intrinsic, with Self carrying the bound
// receiver per spec §4.4/§4.7.
type Intrinsic struct {
	Name string
	Fn   IntrinsicFn
	// Self, when non-nil, is the primitive value this intrinsic is bound
	// to as a dispatch-map method (e.g. "len" bound to a particular
	// string or list). Host-level intrinsics like print/input leave this
	// nil.
	Self *Value
}

// Class is a class declaration: its name and the ordered field
// declarations (some pre-initialized as methods, some left uninitialised
// for construction-time arguments), per spec §4.6.
type Class struct {
	Name   string
	Fields []ClassField
	// DefEnv is the environment the class was declared in, so that
	// method field initializers close over the enclosing scope (globals,
	// outer function locals) instead of a bare fresh environment. Typed
	// as `any` for the same reason as Function.Env.
	DefEnv any
}

// ClassField is one declared field of a Class.
type ClassField struct {
	Name string
	// Init is the class-body initializer expression (e.g. a method
	// func literal), or nil if the field must be supplied at
	// construction.
	Init       ast.Expression
	Uninitialised bool
}

// ClassInstance is a constructed instance of a Class: a shared-mutable
// field map seeded from the class's initialised fields plus the
// constructor arguments supplied for its uninitialised ones.
type ClassInstance struct {
	Class  *Class
	Fields *Object
}
