package eval

import (
	"github.com/kristofer/prog/internal/args"
	"github.com/kristofer/prog/internal/span"
	"github.com/kristofer/prog/internal/value"
)

// primitiveMethod looks up name against recv's per-kind dispatch map,
// returning it as an Intrinsic bound to recv via Self, per spec §4.7:
// "Field access on a primitive (.len, .sub, etc.) looks up the
// primitive's dispatch map ... the returned intrinsic is bound to the
// primitive as its self."
//
// Grounded on the original interpreter's per-value dispatch_map
// (values/string.rs's "sub"/"len", values/list.rs's "len"); Object does
// not get a dispatch map here, matching the original leaving
// RuntimeObject's dispatch_map unimplemented in favour of direct
// user-field access (see fieldValue's Object case).
func primitiveMethod(recv value.Value, name string) (*value.Intrinsic, bool) {
	switch recv.Kind {
	case value.KindString:
		return stringMethod(recv, name)
	case value.KindList:
		return listMethod(recv, name)
	default:
		return nil, false
	}
}

func stringMethod(recv value.Value, name string) (*value.Intrinsic, bool) {
	self := recv
	switch name {
	case "len":
		return &value.Intrinsic{Name: "len", Self: &self, Fn: func(ctxAny any, argVals []value.Value) (value.Value, error) {
			if _, err := args.Bind(args.Schema{}, argVals, span.Span{}); err != nil {
				return value.Value{}, err
			}
			return value.Number(float64(len(self.Str))), nil
		}}, true
	case "sub":
		schema := args.Schema{Params: []args.Descriptor{
			{Name: "start", Kind: args.Required, Type: args.Kind(value.KindNumber)},
			{Name: "end", Kind: args.Optional, Type: args.Kind(value.KindNumber), Default: value.Number(float64(len(self.Str)))},
		}}
		return &value.Intrinsic{Name: "sub", Self: &self, Fn: func(ctxAny any, argVals []value.Value) (value.Value, error) {
			binding, err := args.Bind(schema, argVals, span.Span{})
			if err != nil {
				return value.Value{}, err
			}
			start := int(binding.Get("start").Num)
			end := int(binding.Get("end").Num)
			if start < 0 {
				start = 0
			}
			if end > len(self.Str) {
				end = len(self.Str)
			}
			if end <= start {
				return value.String(""), nil
			}
			return value.String(self.Str[start:end]), nil
		}}, true
	default:
		return nil, false
	}
}

func listMethod(recv value.Value, name string) (*value.Intrinsic, bool) {
	self := recv
	switch name {
	case "len":
		return &value.Intrinsic{Name: "len", Self: &self, Fn: func(ctxAny any, argVals []value.Value) (value.Value, error) {
			if _, err := args.Bind(args.Schema{}, argVals, span.Span{}); err != nil {
				return value.Value{}, err
			}
			return value.Number(float64(len(self.List.Items))), nil
		}}, true
	default:
		return nil, false
	}
}
