// Package intrinsics implements the host-provided functions exposed to
// program code: print, raw_print, input, import, plus json_encode/decode,
// regex_match, now/format_time/humanize_duration, and uuid, per spec
// §4.10.
//
// Grounded on go-mix's std package (one file per concern, a Builtin
// struct registered into a global table), generalized here into
// value.Intrinsic entries inserted directly into an env.Context so each
// one can be gated by that Context's capability flags.
package intrinsics

import (
	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/env"
	"github.com/kristofer/prog/internal/span"
	"github.com/kristofer/prog/internal/value"
)

// Register installs every intrinsic into ctx under its name.
func Register(ctx *env.Context) {
	for _, in := range all() {
		ctx.Insert(in.Name, value.IntrinsicOf(in))
	}
}

func all() []*value.Intrinsic {
	return []*value.Intrinsic{
		printIntrinsic(),
		rawPrintIntrinsic(),
		inputIntrinsic(),
		importIntrinsic(),
		jsonEncodeIntrinsic(),
		jsonDecodeIntrinsic(),
		regexMatchIntrinsic(),
		nowIntrinsic(),
		formatTimeIntrinsic(),
		humanizeDurationIntrinsic(),
		uuidIntrinsic(),
	}
}

// asContext recovers the *env.Context an intrinsic was invoked with; both
// backends pass their calling environment as the `ctx any` argument.
func asContext(ctx any) (*env.Context, error) {
	c, ok := ctx.(*env.Context)
	if !ok {
		return nil, diag.New(diag.KindParseInternal, span.Span{}, "intrinsic invoked without a context")
	}
	return c, nil
}

// capabilityErr builds the standard "disallowed in this context"
// diagnostic for a gated intrinsic, per spec §4.6/§4.10.
func capabilityErr(name string) error {
	return diag.New(diag.KindContextDisallowed, span.Span{}, name+" is not allowed in this context")
}

// noSpan is used when binding an intrinsic's own arguments, since the
// call-site span isn't threaded into IntrinsicFn. A diagnostic returned by
// an intrinsic keeps this empty span; only a non-diagnostic error is
// wrapped, and the evaluator gives that wrapper the call span.
func noSpan() span.Span { return span.Span{} }
