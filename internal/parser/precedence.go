package parser

import "github.com/kristofer/prog/internal/lexer"

// bindingPower is the (left, right) pair governing associativity in the
// Pratt parser; a higher number binds more tightly. This table is the
// single source of truth for expression parsing (spec §9) — both the left
// and right binding power of every operator are derived from one
// declaration here rather than duplicated across match arms.
type bindingPower struct {
	Left, Right int
}

var precedenceTable = map[lexer.Kind]bindingPower{
	lexer.Plus:    {1, 2},
	lexer.Minus:   {1, 2},
	lexer.EqualEqual: {1, 2},
	lexer.Greater: {1, 2},
	lexer.Less:    {1, 2},
	lexer.GreaterEq: {1, 2},
	lexer.LessEq:  {1, 2},
	lexer.Star:    {3, 4},
	lexer.Slash:   {3, 4},
	lexer.Percent: {3, 4},
	lexer.KwAnd:   {3, 2}, // right > left => right-associative
	lexer.KwOr:    {1, 1}, // equal bindings, loop stops on an equal-power operator at its own level => left-associative
}

// isBinaryOperator reports whether k can start a binary expression suffix.
func isBinaryOperator(k lexer.Kind) bool {
	_, ok := precedenceTable[k]
	return ok
}

// opText returns the textual operator name used in ast.Binary/ast.Unary,
// independent of the exact source spelling (there is only one spelling per
// operator in prog, but this keeps the AST decoupled from lexer.Kind).
func opText(k lexer.Kind) string {
	return k.String()
}
