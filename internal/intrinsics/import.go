package intrinsics

import (
	"os"

	"github.com/kristofer/prog/internal/args"
	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/env"
	"github.com/kristofer/prog/internal/eval"
	"github.com/kristofer/prog/internal/parser"
	"github.com/kristofer/prog/internal/value"
)

// importIntrinsic implements `import(path)`: loads, parses, and evaluates
// another source file in a fresh Context that shares this call's I/O
// streams and externs but gets its own variable frame, then returns that
// module's exported bindings as an Object, gated on imports_allowed per
// spec §4.10.
//
// "Exported bindings" are every top-level variable the imported file
// defines — there is no separate export keyword, mirroring how a plain
// top-level `def` works everywhere else in the language.
func importIntrinsic() *value.Intrinsic {
	schema := args.Schema{Params: []args.Descriptor{
		{Name: "path", Kind: args.Required, Type: args.Kind(value.KindString)},
	}}
	return &value.Intrinsic{Name: "import", Fn: func(ctxAny any, argVals []value.Value) (value.Value, error) {
		ctx, err := asContext(ctxAny)
		if err != nil {
			return value.Value{}, err
		}
		if !ctx.Capabilities().Imports {
			return value.Value{}, capabilityErr("import")
		}
		binding, err := args.Bind(schema, argVals, noSpan())
		if err != nil {
			return value.Value{}, err
		}
		path := binding.Get("path").Str

		text, readErr := os.ReadFile(path)
		if readErr != nil {
			return value.Value{}, diag.New(diag.KindInvalidExtern, noSpan(), "import: cannot read "+path+": "+readErr.Error())
		}

		p, newErr := parser.New(string(text), path)
		if newErr != nil {
			return value.Value{}, newErr
		}
		prog, parseErr := p.Parse()
		if parseErr != nil {
			return value.Value{}, parseErr
		}

		moduleCtx := env.New(ctx.Capabilities())
		moduleCtx.Stdout = ctx.Stdout
		moduleCtx.Stdin = ctx.Stdin
		moduleCtx.Externs = ctx.Externs
		Register(moduleCtx)

		if _, evalErr := eval.Eval(prog, moduleCtx); evalErr != nil {
			return value.Value{}, evalErr
		}

		return value.ObjectOf(moduleCtx.Exports()), nil
	}}
}
