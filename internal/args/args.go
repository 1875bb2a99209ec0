// Package args implements the argument-binding protocol shared by
// intrinsic functions, user-defined functions, and class constructors:
// a declarative schema of parameter descriptors (Required,
// RequiredUntyped, Optional, Variadic) checked against a call's argument
// values, producing a name->binding map or a structured diagnostic.
//
// Grounded on go-mix's std/builtins.go argument-count/type checks,
// generalized here into a reusable schema instead of ad-hoc per-builtin
// checks, per spec §4.5.
package args

import (
	"fmt"

	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/span"
	"github.com/kristofer/prog/internal/value"
)

// Descriptor is one parameter slot in an ArgSchema.
type Descriptor struct {
	Name string
	Kind DescriptorKind
	// Type restricts accepted value.Kind for Required/Optional/Variadic
	// descriptors; nil (RequiredUntyped, or Required/Optional/Variadic
	// with no restriction) accepts any kind.
	Type *value.Kind
	// Default supplies the value used when an Optional parameter is
	// omitted.
	Default value.Value
}

// DescriptorKind distinguishes the four descriptor forms of spec §4.5.
type DescriptorKind int

const (
	// Required demands exactly one argument whose kind matches Type.
	Required DescriptorKind = iota
	// RequiredUntyped demands exactly one argument of any kind.
	RequiredUntyped
	// Optional consumes one argument if present (checked against Type
	// when set), else binds Default.
	Optional
	// Variadic consumes all remaining arguments into a list, checked
	// against Type per-element when set. At most one Variadic
	// descriptor is allowed, and it must be last.
	Variadic
)

// Schema is an ordered list of parameter descriptors for one callable.
type Schema struct {
	Params []Descriptor
}

// Binding is the outcome of successfully matching a Schema against call
// arguments: either a single bound Value (Regular) or a collected list
// (Variadic), keyed by parameter name.
type Binding struct {
	Regular  map[string]value.Value
	Variadic map[string][]value.Value
}

// Get looks up a Regular binding by name.
func (b Binding) Get(name string) value.Value {
	return b.Regular[name]
}

// wellFormed validates the schema shape itself: at most one Variadic
// descriptor (which, if present, must be the final one), and every
// Optional descriptor follows all non-optional positionals, per spec
// §4.5.
func (s Schema) wellFormed() error {
	sawOptional := false
	for i, d := range s.Params {
		if d.Kind == Variadic && i != len(s.Params)-1 {
			return fmt.Errorf("variadic parameter %q must be the last parameter", d.Name)
		}
		switch d.Kind {
		case Optional:
			sawOptional = true
		case Required, RequiredUntyped:
			if sawOptional {
				return fmt.Errorf("required parameter %q must not follow an optional parameter", d.Name)
			}
		}
	}
	return nil
}

// Bind checks argVals against the schema and produces a Binding, or a
// diag.Diagnostic describing the first mismatch (arity or type), anchored
// at callSpan. Grounded on spec §4.5's "count and type verification"
// requirement.
func Bind(schema Schema, argVals []value.Value, callSpan span.Span) (Binding, error) {
	if err := schema.wellFormed(); err != nil {
		return Binding{}, diag.New(diag.KindArgSchemaInvalid, callSpan, err.Error())
	}

	binding := Binding{
		Regular:  make(map[string]value.Value),
		Variadic: make(map[string][]value.Value),
	}

	pos := 0
	for _, d := range schema.Params {
		switch d.Kind {
		case Required, RequiredUntyped:
			if pos >= len(argVals) {
				return Binding{}, diag.New(diag.KindArgCountMismatch, callSpan,
					fmt.Sprintf("missing required argument %q", d.Name))
			}
			v := argVals[pos]
			if d.Kind == Required && d.Type != nil && v.Kind != *d.Type {
				return Binding{}, diag.New(diag.KindArgTypeMismatch, callSpan,
					fmt.Sprintf("argument %q: expected %s, got %s", d.Name, d.Type.String(), v.Kind.String()))
			}
			binding.Regular[d.Name] = v
			pos++
		case Optional:
			if pos < len(argVals) {
				v := argVals[pos]
				if d.Type != nil && v.Kind != *d.Type {
					return Binding{}, diag.New(diag.KindArgTypeMismatch, callSpan,
						fmt.Sprintf("argument %q: expected %s, got %s", d.Name, d.Type.String(), v.Kind.String()))
				}
				binding.Regular[d.Name] = v
				pos++
			} else {
				binding.Regular[d.Name] = d.Default
			}
		case Variadic:
			rest := argVals[pos:]
			if d.Type != nil {
				for i, v := range rest {
					if v.Kind != *d.Type {
						return Binding{}, diag.New(diag.KindArgTypeMismatch, callSpan,
							fmt.Sprintf("argument %q[%d]: expected %s, got %s", d.Name, i, d.Type.String(), v.Kind.String()))
					}
				}
			}
			binding.Variadic[d.Name] = rest
			pos = len(argVals)
		}
	}

	if pos < len(argVals) {
		return Binding{}, diag.New(diag.KindArgCountMismatch, callSpan,
			fmt.Sprintf("too many arguments: expected %d, got %d", pos, len(argVals)))
	}

	return binding, nil
}

// Kind builds a *value.Kind pointer for use as a Descriptor.Type literal.
func Kind(k value.Kind) *value.Kind { return &k }
