// Package ast defines the Abstract Syntax Tree node types for prog:
// expressions, terms, statements, and punctuated lists. Every node carries
// its span (internal/span), and the span of a composite node always covers
// from the start of its leftmost child to the end of its rightmost child.
//
// Grounded on kristofer-smog's ast.Node/Expression/Statement interface
// split (pkg/ast/ast.go), generalized from smog's minimal message-send
// grammar to prog's statement/term grammar in spec §3.
package ast

import "github.com/kristofer/prog/internal/span"

// Node is implemented by every AST node.
type Node interface {
	Span() span.Span
}

// Expression is a binary expression, a unary expression, or a term.
type Expression interface {
	Node
	exprNode()
}

// Statement is one of the statement variants in spec §3.
type Statement interface {
	Node
	stmtNode()
}

// Program is the root node: an ordered sequence of statements.
type Program struct {
	Statements []Statement
	Sp         span.Span
}

func (p *Program) Span() span.Span { return p.Sp }

// PunctuatedList is an ordered sequence of items separated by a uniform
// separator, optionally ending in an item without a trailing separator.
// Every non-empty PunctuatedList has at least one item.
type PunctuatedList[T Node] struct {
	items []T
	sp    span.Span
}

// NewPunctuatedList builds a PunctuatedList from parsed items; an empty
// slice is valid in contexts that accept empty lists (argument lists, list
// literals, object literals).
func NewPunctuatedList[T Node](items []T, sp span.Span) PunctuatedList[T] {
	return PunctuatedList[T]{items: items, sp: sp}
}

func (l PunctuatedList[T]) Items() []T       { return l.items }
func (l PunctuatedList[T]) Len() int         { return len(l.items) }
func (l PunctuatedList[T]) Span() span.Span  { return l.sp }
func (l PunctuatedList[T]) IsEmpty() bool    { return len(l.items) == 0 }

// --- Expressions ---

// Binary is a binary expression: lhs op rhs.
type Binary struct {
	Lhs Expression
	Op  string
	Rhs Expression
	Sp  span.Span
}

func (b *Binary) Span() span.Span { return b.Sp }
func (*Binary) exprNode()         {}

// Unary is a unary expression: op operand.
type Unary struct {
	Op      string
	Operand Expression
	Sp      span.Span
}

func (u *Unary) Span() span.Span { return u.Sp }
func (*Unary) exprNode()         {}

// --- Terms ---
// Every term implements Expression directly; a term is simply a variant of
// expression (spec §3: "Expression: binary, unary, or term").

// NumberLit is a binary-float number literal.
type NumberLit struct {
	Value float64
	Sp    span.Span
}

func (n *NumberLit) Span() span.Span { return n.Sp }
func (*NumberLit) exprNode()         {}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
	Sp    span.Span
}

func (b *BoolLit) Span() span.Span { return b.Sp }
func (*BoolLit) exprNode()         {}

// StringLit is a string literal (content already unquoted).
type StringLit struct {
	Value string
	Sp    span.Span
}

func (s *StringLit) Span() span.Span { return s.Sp }
func (*StringLit) exprNode()         {}

// NoneLit is the `none` literal.
type NoneLit struct {
	Sp span.Span
}

func (n *NoneLit) Span() span.Span { return n.Sp }
func (*NoneLit) exprNode()         {}

// Ident is an identifier reference.
type Ident struct {
	Name string
	Sp   span.Span
}

func (i *Ident) Span() span.Span { return i.Sp }
func (*Ident) exprNode()         {}

// Paren is a parenthesized expression.
type Paren struct {
	Inner Expression
	Sp    span.Span
}

func (p *Paren) Span() span.Span { return p.Sp }
func (*Paren) exprNode()         {}

// FuncLit is a function literal: func ( params? ) do stmts end.
type FuncLit struct {
	Params []string
	Body   *DoBlock
	Sp     span.Span
}

func (f *FuncLit) Span() span.Span { return f.Sp }
func (*FuncLit) exprNode()         {}

// ListLit is a list literal: [ items? ].
type ListLit struct {
	Items PunctuatedList[Expression]
	Sp    span.Span
}

func (l *ListLit) Span() span.Span { return l.Sp }
func (*ListLit) exprNode()         {}

// ObjectPair is one `name = value` entry of an object literal.
type ObjectPair struct {
	Name  string
	Value Expression
	Sp    span.Span
}

func (p ObjectPair) Span() span.Span { return p.Sp }

// ObjectLit is an object literal: { name = value, ... }.
type ObjectLit struct {
	Pairs PunctuatedList[ObjectPair]
	Sp    span.Span
}

func (o *ObjectLit) Span() span.Span { return o.Sp }
func (*ObjectLit) exprNode()         {}

// ExternRef is a reference to a host-provided extern item.
type ExternRef struct {
	Name string
	Sp   span.Span
}

func (e *ExternRef) Span() span.Span { return e.Sp }
func (*ExternRef) exprNode()         {}

// Call wraps a preceding term with a call suffix: callee(args).
type Call struct {
	Callee Expression
	Args   PunctuatedList[Expression]
	Sp     span.Span
}

func (c *Call) Span() span.Span { return c.Sp }
func (*Call) exprNode()         {}

// IndexAccess wraps a preceding term with an index suffix: target[index].
type IndexAccess struct {
	Target Expression
	Index  Expression
	Sp     span.Span
}

func (i *IndexAccess) Span() span.Span { return i.Sp }
func (*IndexAccess) exprNode()         {}

// FieldAccess wraps a preceding term with a field suffix: target.name.
type FieldAccess struct {
	Target Expression
	Name   string
	Sp     span.Span
}

func (f *FieldAccess) Span() span.Span { return f.Sp }
func (*FieldAccess) exprNode()         {}

// --- Statements ---

// VarDefine is `def name (= init)?`.
type VarDefine struct {
	Name string
	Init Expression // nil if omitted; defaults to none at evaluation time
	Sp   span.Span
}

func (v *VarDefine) Span() span.Span { return v.Sp }
func (*VarDefine) stmtNode()         {}

// VarAssign is `name = value`.
type VarAssign struct {
	Name  string
	Value Expression
	Sp    span.Span
}

func (v *VarAssign) Span() span.Span { return v.Sp }
func (*VarAssign) stmtNode()         {}

// DoBlock is a scoped statement list: do stmts end.
type DoBlock struct {
	Statements []Statement
	Sp         span.Span
}

func (d *DoBlock) Span() span.Span { return d.Sp }
func (*DoBlock) stmtNode()         {}

// ReturnStmt is `return value?`.
type ReturnStmt struct {
	Value Expression // nil if bare `return`
	Sp    span.Span
}

func (r *ReturnStmt) Span() span.Span { return r.Sp }
func (*ReturnStmt) stmtNode()         {}

// CallStmt is a call expression used as a statement.
type CallStmt struct {
	Call *Call
	Sp   span.Span
}

func (c *CallStmt) Span() span.Span { return c.Sp }
func (*CallStmt) stmtNode()         {}

// WhileStmt is `while cond do body end`.
type WhileStmt struct {
	Cond Expression
	Body *DoBlock
	Sp   span.Span
}

func (w *WhileStmt) Span() span.Span { return w.Sp }
func (*WhileStmt) stmtNode()         {}

// BreakStmt is `break`.
type BreakStmt struct{ Sp span.Span }

func (b *BreakStmt) Span() span.Span { return b.Sp }
func (*BreakStmt) stmtNode()         {}

// ContinueStmt is `continue`.
type ContinueStmt struct{ Sp span.Span }

func (c *ContinueStmt) Span() span.Span { return c.Sp }
func (*ContinueStmt) stmtNode()         {}

// ElseIfBranch is one `elseif cond do body` branch of an IfStmt.
type ElseIfBranch struct {
	Cond Expression
	Body *DoBlock
	Sp   span.Span
}

// IfStmt is `if cond do then end` with ordered elseif branches and an
// optional else block.
type IfStmt struct {
	Cond    Expression
	Then    *DoBlock
	ElseIfs []ElseIfBranch
	Else    *DoBlock // nil if absent
	Sp      span.Span
}

func (i *IfStmt) Span() span.Span { return i.Sp }
func (*IfStmt) stmtNode()         {}

// ExprAssignStmt assigns to an index-access or field-access target. The
// parser guarantees Target is one of *IndexAccess or *FieldAccess.
type ExprAssignStmt struct {
	Target Expression
	Value  Expression
	Sp     span.Span
}

func (e *ExprAssignStmt) Span() span.Span { return e.Sp }
func (*ExprAssignStmt) stmtNode()         {}

// ClassDef is `class Name field1 field2 ... end`.
type ClassDef struct {
	Name   string
	Fields []*VarDefine
	Sp     span.Span
}

func (c *ClassDef) Span() span.Span { return c.Sp }
func (*ClassDef) stmtNode()         {}
