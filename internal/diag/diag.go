// Package diag implements the composable error/diagnostic type shared by
// every phase of the prog pipeline (lexer, parser, evaluator, compiler, VM).
//
// A Diagnostic carries one primary message and one or more labelled spans,
// mirroring the StackFrame/RuntimeError pattern in the teacher VM but
// generalized from line/column integers to spans so the same type renders
// lex errors, parse errors, and runtime errors identically.
package diag

import (
	"fmt"
	"strings"

	"github.com/kristofer/prog/internal/span"
)

// Kind identifies the taxonomy of a Diagnostic without resorting to string
// matching on its message. See spec §7 for the full taxonomy.
type Kind string

const (
	KindLexUnexpectedChar   Kind = "lex.unexpected_char"
	KindLexMalformedNumber  Kind = "lex.malformed_number"
	KindLexUnterminated     Kind = "lex.unterminated"
	KindParseUnexpectedTok  Kind = "parse.unexpected_token"
	KindParseInternal       Kind = "parse.internal"
	KindVariableDoesntExist Kind = "runtime.variable_doesnt_exist"
	KindFieldDoesntExist    Kind = "runtime.field_doesnt_exist"
	KindCannotReassignFn    Kind = "runtime.cannot_reassign_class_function"
	KindInvalidClassConstr  Kind = "runtime.invalid_class_construction"
	KindInvalidExtern       Kind = "runtime.invalid_extern"
	KindContextDisallowed   Kind = "runtime.context_disallowed"
	KindArgCountMismatch    Kind = "runtime.argument_count_mismatch"
	KindArgTypeMismatch     Kind = "runtime.argument_type_mismatch"
	KindArgSchemaInvalid    Kind = "runtime.argument_schema_invalid"
	KindUnsupportedUnary    Kind = "runtime.unsupported_unary"
	KindUnsupportedBinary   Kind = "runtime.unsupported_binary"
	KindExprNotAssignable   Kind = "runtime.expression_not_assignable"
	KindExprNotCallable     Kind = "runtime.expression_not_callable"
	KindCannotIndex         Kind = "runtime.cannot_index_expression"
	KindDuplicateObjEntry   Kind = "runtime.duplicate_object_entry"
	KindAssertionFailed     Kind = "runtime.assertion_failed"
	KindInvalidIndex        Kind = "runtime.invalid_index"
	KindFunctionPanicked    Kind = "runtime.function_panicked"
)

// Label is one annotated span within a Diagnostic: a span plus an optional
// message specific to that span (e.g. "expected here" vs "found here").
type Label struct {
	Span    span.Span
	Message string
}

// Diagnostic is the single error type produced by every phase of prog.
type Diagnostic struct {
	Kind    Kind
	Message string
	Labels  []Label
	Cause   error // non-nil only for KindFunctionPanicked
}

// New builds a Diagnostic with a primary span and message.
func New(kind Kind, sp span.Span, message string) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Message: message,
		Labels:  []Label{{Span: sp, Message: ""}},
	}
}

// WithLabel appends an additional labelled span (e.g. pointing at a
// conflicting earlier definition).
func (d *Diagnostic) WithLabel(sp span.Span, message string) *Diagnostic {
	d.Labels = append(d.Labels, Label{Span: sp, Message: message})
	return d
}

// WithCause attaches the error that caused a KindFunctionPanicked
// diagnostic, so Render can show the nested failure beneath it.
func (d *Diagnostic) WithCause(cause error) *Diagnostic {
	d.Cause = cause
	return d
}

// PrimarySpan returns the first (primary) labelled span, if any.
func (d *Diagnostic) PrimarySpan() (span.Span, bool) {
	if len(d.Labels) == 0 {
		return span.Span{}, false
	}
	return d.Labels[0].Span, true
}

// Error implements the error interface with a single-line summary; use
// Render for the full multi-line, span-underlined rendering.
func (d *Diagnostic) Error() string {
	var b strings.Builder
	if sp, ok := d.PrimarySpan(); ok {
		fmt.Fprintf(&b, "%s: %s", sp, d.Message)
	} else {
		b.WriteString(d.Message)
	}
	if d.Cause != nil {
		fmt.Fprintf(&b, ": %s", d.Cause)
	}
	return b.String()
}

// Unwrap exposes the cause of a FunctionPanicked diagnostic through the
// standard errors.Unwrap chain, so callers can still inspect and render the
// nested diagnostic rather than a collapsed string.
func (d *Diagnostic) Unwrap() error {
	return d.Cause
}

// AsDiagnostic unwraps err looking for a *Diagnostic, following the same
// chain errors.As would.
func AsDiagnostic(err error) (*Diagnostic, bool) {
	for err != nil {
		if d, ok := err.(*Diagnostic); ok {
			return d, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
