package intrinsics

import (
	"encoding/json"

	"github.com/kristofer/prog/internal/args"
	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/value"
)

// jsonEncodeIntrinsic implements `json_encode(v)`, converting a prog
// value into its JSON text representation, grounded on go-mix's
// std/json.go Marshal-based builtin.
func jsonEncodeIntrinsic() *value.Intrinsic {
	schema := args.Schema{Params: []args.Descriptor{{Name: "value", Kind: args.RequiredUntyped}}}
	return &value.Intrinsic{Name: "json_encode", Fn: func(ctxAny any, argVals []value.Value) (value.Value, error) {
		if _, err := asContext(ctxAny); err != nil {
			return value.Value{}, err
		}
		binding, err := args.Bind(schema, argVals, noSpan())
		if err != nil {
			return value.Value{}, err
		}
		native, err := toNative(binding.Get("value"))
		if err != nil {
			return value.Value{}, err
		}
		encoded, err := json.Marshal(native)
		if err != nil {
			return value.Value{}, diag.New(diag.KindFunctionPanicked, noSpan(), "json_encode: "+err.Error())
		}
		return value.String(string(encoded)), nil
	}}
}

// jsonDecodeIntrinsic implements `json_decode(text)`, parsing JSON text
// back into prog values (object/list/string/number/boolean/none).
func jsonDecodeIntrinsic() *value.Intrinsic {
	schema := args.Schema{Params: []args.Descriptor{
		{Name: "text", Kind: args.Required, Type: args.Kind(value.KindString)},
	}}
	return &value.Intrinsic{Name: "json_decode", Fn: func(ctxAny any, argVals []value.Value) (value.Value, error) {
		if _, err := asContext(ctxAny); err != nil {
			return value.Value{}, err
		}
		binding, err := args.Bind(schema, argVals, noSpan())
		if err != nil {
			return value.Value{}, err
		}
		var native any
		if err := json.Unmarshal([]byte(binding.Get("text").Str), &native); err != nil {
			return value.Value{}, diag.New(diag.KindFunctionPanicked, noSpan(), "json_decode: "+err.Error())
		}
		return fromNative(native), nil
	}}
}

// toNative converts a value.Value into a plain Go value suitable for
// encoding/json.Marshal.
func toNative(v value.Value) (any, error) {
	switch v.Kind {
	case value.KindNone:
		return nil, nil
	case value.KindNumber:
		return v.Num, nil
	case value.KindBoolean:
		return v.Bool, nil
	case value.KindString:
		return v.Str, nil
	case value.KindList:
		out := make([]any, len(v.List.Items))
		for i, item := range v.List.Items {
			n, err := toNative(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case value.KindObject:
		out := make(map[string]any, len(v.Object.Order))
		for _, name := range v.Object.Order {
			field, _ := v.Object.Get(name)
			n, err := toNative(field)
			if err != nil {
				return nil, err
			}
			out[name] = n
		}
		return out, nil
	default:
		return nil, diag.New(diag.KindFunctionPanicked, noSpan(), "json_encode: cannot encode a "+v.Kind.String())
	}
}

// fromNative converts a decoded JSON value (as produced by
// encoding/json.Unmarshal into an any) into a value.Value.
func fromNative(n any) value.Value {
	switch v := n.(type) {
	case nil:
		return value.None()
	case float64:
		return value.Number(v)
	case bool:
		return value.Boolean(v)
	case string:
		return value.String(v)
	case []any:
		items := make([]value.Value, len(v))
		for i, item := range v {
			items[i] = fromNative(item)
		}
		return value.ListOf(items)
	case map[string]any:
		obj := value.NewObject()
		for key, item := range v {
			obj.Set(key, fromNative(item))
		}
		return value.ObjectOf(obj)
	default:
		return value.None()
	}
}
