package intrinsics

import (
	"regexp"

	"github.com/kristofer/prog/internal/args"
	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/value"
)

// regexMatchIntrinsic implements `regex_match(text, pattern)`, returning
// whether pattern matches anywhere in text. No third-party regex engine
// appears across the retrieved example repos' go.mod files, so this one
// intrinsic is built on the standard library's regexp package (see
// DESIGN.md).
func regexMatchIntrinsic() *value.Intrinsic {
	schema := args.Schema{Params: []args.Descriptor{
		{Name: "text", Kind: args.Required, Type: args.Kind(value.KindString)},
		{Name: "pattern", Kind: args.Required, Type: args.Kind(value.KindString)},
	}}
	return &value.Intrinsic{Name: "regex_match", Fn: func(ctxAny any, argVals []value.Value) (value.Value, error) {
		if _, err := asContext(ctxAny); err != nil {
			return value.Value{}, err
		}
		binding, err := args.Bind(schema, argVals, noSpan())
		if err != nil {
			return value.Value{}, err
		}
		re, err := regexp.Compile(binding.Get("pattern").Str)
		if err != nil {
			return value.Value{}, diag.New(diag.KindArgTypeMismatch, noSpan(), "regex_match: invalid pattern: "+err.Error())
		}
		return value.Boolean(re.MatchString(binding.Get("text").Str)), nil
	}}
}
