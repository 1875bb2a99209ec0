package intrinsics

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/kristofer/prog/internal/args"
	"github.com/kristofer/prog/internal/value"
)

// printIntrinsic implements `print(...)`: displays each argument
// space-separated followed by a newline, gated on con_stdout_allowed per
// spec §4.6.
func printIntrinsic() *value.Intrinsic {
	return &value.Intrinsic{Name: "print", Fn: func(ctxAny any, argVals []value.Value) (value.Value, error) {
		ctx, err := asContext(ctxAny)
		if err != nil {
			return value.Value{}, err
		}
		if !ctx.Capabilities().Stdout {
			return value.Value{}, capabilityErr("print")
		}
		parts := make([]string, len(argVals))
		for i, v := range argVals {
			parts[i] = v.Display()
		}
		fmt.Fprintln(ctx.Stdout, strings.Join(parts, " "))
		return value.None(), nil
	}}
}

// rawPrintIntrinsic implements `raw_print(...)`: like print but with no
// separators or trailing newline, for building output incrementally.
func rawPrintIntrinsic() *value.Intrinsic {
	return &value.Intrinsic{Name: "raw_print", Fn: func(ctxAny any, argVals []value.Value) (value.Value, error) {
		ctx, err := asContext(ctxAny)
		if err != nil {
			return value.Value{}, err
		}
		if !ctx.Capabilities().Stdout {
			return value.Value{}, capabilityErr("raw_print")
		}
		for _, v := range argVals {
			fmt.Fprint(ctx.Stdout, v.Display())
		}
		return value.None(), nil
	}}
}

// inputIntrinsic implements `input(prompt?)`: writes an optional prompt
// to stdout then reads one line from stdin, gated on inputs_allowed.
func inputIntrinsic() *value.Intrinsic {
	schema := args.Schema{Params: []args.Descriptor{
		{Name: "prompt", Kind: args.Optional, Type: args.Kind(value.KindString), Default: value.String("")},
	}}
	return &value.Intrinsic{Name: "input", Fn: func(ctxAny any, argVals []value.Value) (value.Value, error) {
		ctx, err := asContext(ctxAny)
		if err != nil {
			return value.Value{}, err
		}
		if !ctx.Capabilities().Inputs {
			return value.Value{}, capabilityErr("input")
		}
		binding, err := args.Bind(schema, argVals, noSpan())
		if err != nil {
			return value.Value{}, err
		}
		if prompt := binding.Get("prompt").Str; prompt != "" {
			fmt.Fprint(ctx.Stdout, prompt)
		}
		line, _ := bufio.NewReader(ctx.Stdin).ReadString('\n')
		return value.String(strings.TrimRight(line, "\r\n")), nil
	}}
}
