package intrinsics

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/kristofer/prog/internal/args"
	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/value"
)

// nowIntrinsic implements `now()`, returning the current Unix timestamp
// in seconds as a number, grounded on go-mix's std/time.go epoch builtin.
func nowIntrinsic() *value.Intrinsic {
	return &value.Intrinsic{Name: "now", Fn: func(ctxAny any, argVals []value.Value) (value.Value, error) {
		if _, err := asContext(ctxAny); err != nil {
			return value.Value{}, err
		}
		return value.Number(float64(time.Now().Unix())), nil
	}}
}

// formatTimeIntrinsic implements `format_time(seconds, layout?)`, formatting
// a Unix timestamp (in UTC) with a Go reference-time layout string, RFC3339
// by default.
func formatTimeIntrinsic() *value.Intrinsic {
	schema := args.Schema{Params: []args.Descriptor{
		{Name: "seconds", Kind: args.Required, Type: args.Kind(value.KindNumber)},
		{Name: "layout", Kind: args.Optional, Type: args.Kind(value.KindString), Default: value.String(time.RFC3339)},
	}}
	return &value.Intrinsic{Name: "format_time", Fn: func(ctxAny any, argVals []value.Value) (value.Value, error) {
		if _, err := asContext(ctxAny); err != nil {
			return value.Value{}, err
		}
		binding, err := args.Bind(schema, argVals, noSpan())
		if err != nil {
			return value.Value{}, err
		}
		t := time.Unix(int64(binding.Get("seconds").Num), 0).UTC()
		return value.String(t.Format(binding.Get("layout").Str)), nil
	}}
}

// humanizeDurationIntrinsic implements `humanize_duration(seconds)`,
// rendering a duration as an approximate phrase ("3 hours ago"), grounded on
// dustin/go-humanize's RelTime-style helpers.
func humanizeDurationIntrinsic() *value.Intrinsic {
	schema := args.Schema{Params: []args.Descriptor{
		{Name: "seconds", Kind: args.Required, Type: args.Kind(value.KindNumber)},
	}}
	return &value.Intrinsic{Name: "humanize_duration", Fn: func(ctxAny any, argVals []value.Value) (value.Value, error) {
		if _, err := asContext(ctxAny); err != nil {
			return value.Value{}, err
		}
		binding, err := args.Bind(schema, argVals, noSpan())
		if err != nil {
			return value.Value{}, err
		}
		seconds := binding.Get("seconds").Num
		if seconds < 0 {
			return value.Value{}, diag.New(diag.KindArgTypeMismatch, noSpan(), "humanize_duration: seconds must be non-negative")
		}
		d := time.Duration(seconds * float64(time.Second))
		return value.String(humanize.RelTime(time.Now().Add(-d), time.Now(), "ago", "from now")), nil
	}}
}
