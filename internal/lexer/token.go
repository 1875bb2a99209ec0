// Package lexer implements the lexical analyzer (tokenizer) for prog.
//
// It consumes a character stream and produces a token stream with
// (kind, span), stopping at an end-of-file token, or fails with a
// span-anchored diag.Diagnostic. Grounded on kristofer-smog's
// two-pointer byte scanner (position/readPosition/ch), generalized from
// line/column tracking to byte-offset spans per spec §3.
package lexer

import "github.com/kristofer/prog/internal/span"

// Kind identifies the category of a token. Kinds fall into four groups per
// spec §3: keywords, punctuation/operators, literal atoms, and
// identifier/EOF.
type Kind int

const (
	EOF Kind = iota
	Illegal

	// Literal atoms
	Number
	String
	Identifier

	// Keywords
	KwDef
	KwDo
	KwEnd
	KwReturn
	KwBreak
	KwContinue
	KwWhile
	KwIf
	KwElseif
	KwElse
	KwFunc
	KwClass
	KwExtern
	KwTrue
	KwFalse
	KwNone
	KwAnd
	KwOr
	KwNot

	// Punctuation / operators
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	EqualEqual
	NotEqual
	Arrow     // ->
	FatArrow  // =>
	Greater
	Less
	GreaterEq
	LessEq
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Dot
)

var kindNames = map[Kind]string{
	EOF:        "eof",
	Illegal:    "illegal",
	Number:     "number",
	String:     "string",
	Identifier: "identifier",
	KwDef:      "def",
	KwDo:       "do",
	KwEnd:      "end",
	KwReturn:   "return",
	KwBreak:    "break",
	KwContinue: "continue",
	KwWhile:    "while",
	KwIf:       "if",
	KwElseif:   "elseif",
	KwElse:     "else",
	KwFunc:     "func",
	KwClass:    "class",
	KwExtern:   "extern",
	KwTrue:     "true",
	KwFalse:    "false",
	KwNone:     "none",
	KwAnd:      "and",
	KwOr:       "or",
	KwNot:      "not",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Assign:     "=",
	EqualEqual: "==",
	NotEqual:   "!=",
	Arrow:      "->",
	FatArrow:   "=>",
	Greater:    ">",
	Less:       "<",
	GreaterEq:  ">=",
	LessEq:     "<=",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Comma:      ",",
	Dot:        ".",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

var keywords = map[string]Kind{
	"def":      KwDef,
	"do":       KwDo,
	"end":      KwEnd,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"while":    KwWhile,
	"if":       KwIf,
	"elseif":   KwElseif,
	"else":     KwElse,
	"func":     KwFunc,
	"class":    KwClass,
	"extern":   KwExtern,
	"true":     KwTrue,
	"false":    KwFalse,
	"none":     KwNone,
	"and":      KwAnd,
	"or":       KwOr,
	"not":      KwNot,
}

func lookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Identifier
}

// Token is a single lexical unit: a kind plus the span of source it covers.
type Token struct {
	Kind  Kind
	Span  span.Span
}

// Value returns the literal source text of the token.
func (t Token) Value() string {
	return t.Span.Text()
}

func (t Token) String() string {
	return t.Kind.String() + "(" + t.Value() + ")"
}

// StringContent returns a string token's literal content with its
// surrounding double quotes stripped.
func (t Token) StringContent() string {
	v := t.Value()
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}
