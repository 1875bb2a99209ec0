package args

import (
	"testing"

	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/span"
	"github.com/kristofer/prog/internal/value"
)

func TestBindRequired(t *testing.T) {
	schema := Schema{Params: []Descriptor{
		{Name: "x", Kind: Required, Type: Kind(value.KindNumber)},
	}}
	binding, err := Bind(schema, []value.Value{value.Number(5)}, span.Span{})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if got := binding.Get("x"); got.Num != 5 {
		t.Errorf("got %v, want 5", got.Num)
	}
}

func TestBindMissingRequiredIsArityMismatch(t *testing.T) {
	schema := Schema{Params: []Descriptor{{Name: "x", Kind: Required, Type: Kind(value.KindNumber)}}}
	_, err := Bind(schema, nil, span.Span{})
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected *diag.Diagnostic, got %T", err)
	}
	if d.Kind != diag.KindArgCountMismatch {
		t.Errorf("got kind %v, want %v", d.Kind, diag.KindArgCountMismatch)
	}
}

func TestBindWrongTypeIsTypeMismatch(t *testing.T) {
	schema := Schema{Params: []Descriptor{{Name: "x", Kind: Required, Type: Kind(value.KindNumber)}}}
	_, err := Bind(schema, []value.Value{value.String("nope")}, span.Span{})
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected *diag.Diagnostic, got %T", err)
	}
	if d.Kind != diag.KindArgTypeMismatch {
		t.Errorf("got kind %v, want %v", d.Kind, diag.KindArgTypeMismatch)
	}
}

func TestBindRequiredUntypedAcceptsAnyKind(t *testing.T) {
	schema := Schema{Params: []Descriptor{{Name: "x", Kind: RequiredUntyped}}}
	binding, err := Bind(schema, []value.Value{value.Boolean(true)}, span.Span{})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if got := binding.Get("x"); got.Kind != value.KindBoolean {
		t.Errorf("got kind %v, want boolean", got.Kind)
	}
}

func TestBindOptionalUsesDefaultWhenOmitted(t *testing.T) {
	schema := Schema{Params: []Descriptor{
		{Name: "prompt", Kind: Optional, Type: Kind(value.KindString), Default: value.String(">")},
	}}
	binding, err := Bind(schema, nil, span.Span{})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if got := binding.Get("prompt").Str; got != ">" {
		t.Errorf("got %q, want %q", got, ">")
	}
}

func TestBindOptionalUsesSuppliedValueWhenPresent(t *testing.T) {
	schema := Schema{Params: []Descriptor{
		{Name: "prompt", Kind: Optional, Type: Kind(value.KindString), Default: value.String(">")},
	}}
	binding, err := Bind(schema, []value.Value{value.String("?")}, span.Span{})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if got := binding.Get("prompt").Str; got != "?" {
		t.Errorf("got %q, want %q", got, "?")
	}
}

func TestBindVariadicCollectsRemaining(t *testing.T) {
	schema := Schema{Params: []Descriptor{
		{Name: "first", Kind: Required, Type: Kind(value.KindNumber)},
		{Name: "rest", Kind: Variadic},
	}}
	binding, err := Bind(schema, []value.Value{value.Number(1), value.Number(2), value.String("x")}, span.Span{})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	rest := binding.Variadic["rest"]
	if len(rest) != 2 {
		t.Fatalf("expected 2 variadic args, got %d", len(rest))
	}
}

func TestBindTooManyArgsIsArityMismatch(t *testing.T) {
	schema := Schema{Params: []Descriptor{{Name: "x", Kind: Required, Type: Kind(value.KindNumber)}}}
	_, err := Bind(schema, []value.Value{value.Number(1), value.Number(2)}, span.Span{})
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected *diag.Diagnostic, got %T", err)
	}
	if d.Kind != diag.KindArgCountMismatch {
		t.Errorf("got kind %v, want %v", d.Kind, diag.KindArgCountMismatch)
	}
}

// TestSchemaVariadicMustBeLast verifies the well-formedness check rejects a
// Variadic descriptor that isn't the schema's final parameter.
func TestSchemaVariadicMustBeLast(t *testing.T) {
	schema := Schema{Params: []Descriptor{
		{Name: "rest", Kind: Variadic},
		{Name: "x", Kind: Required, Type: Kind(value.KindNumber)},
	}}
	_, err := Bind(schema, []value.Value{value.Number(1)}, span.Span{})
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected *diag.Diagnostic, got %T", err)
	}
	if d.Kind != diag.KindArgSchemaInvalid {
		t.Errorf("got kind %v, want %v", d.Kind, diag.KindArgSchemaInvalid)
	}
}

// TestSchemaOptionalMustFollowRequired verifies the well-formedness check
// rejects a Required descriptor following an Optional one, per spec §4.5.
func TestSchemaOptionalMustFollowRequired(t *testing.T) {
	schema := Schema{Params: []Descriptor{
		{Name: "prompt", Kind: Optional, Type: Kind(value.KindString), Default: value.String(">")},
		{Name: "x", Kind: Required, Type: Kind(value.KindNumber)},
	}}
	_, err := Bind(schema, []value.Value{value.Number(1)}, span.Span{})
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected *diag.Diagnostic, got %T", err)
	}
	if d.Kind != diag.KindArgSchemaInvalid {
		t.Errorf("got kind %v, want %v", d.Kind, diag.KindArgSchemaInvalid)
	}
}
