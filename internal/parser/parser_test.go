package parser

import (
	"testing"

	"github.com/kristofer/prog/internal/ast"
)

func parseOne(t *testing.T, src string) ast.Statement {
	t.Helper()
	p, err := New(src, "<test>")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	return prog.Statements[0]
}

func TestParseNumberLiteral(t *testing.T) {
	stmt := parseOne(t, "def x = 42")
	def, ok := stmt.(*ast.VarDefine)
	if !ok {
		t.Fatalf("expected *ast.VarDefine, got %T", stmt)
	}
	lit, ok := def.Init.(*ast.NumberLit)
	if !ok {
		t.Fatalf("expected *ast.NumberLit, got %T", def.Init)
	}
	if lit.Value != 42 {
		t.Errorf("got %v, want 42", lit.Value)
	}
}

// TestPrecedenceArithmetic verifies `1 + 2 * 3` binds as `1 + (2 * 3)`,
// i.e. * binds tighter than +, per spec §4.3's precedence table.
func TestPrecedenceArithmetic(t *testing.T) {
	stmt := parseOne(t, "def x = 1 + 2 * 3")
	def := stmt.(*ast.VarDefine)
	bin, ok := def.Init.(*ast.Binary)
	if !ok {
		t.Fatalf("expected *ast.Binary, got %T", def.Init)
	}
	if bin.Op != "+" {
		t.Fatalf("expected top-level op '+', got %q", bin.Op)
	}
	rhs, ok := bin.Rhs.(*ast.Binary)
	if !ok || rhs.Op != "*" {
		t.Fatalf("expected rhs to be a '*' binary, got %#v", bin.Rhs)
	}
}

// TestModuloBindsLikeMultiplication verifies `1 + 2 % 3` binds as
// `1 + (2 % 3)`, per spec §4.4's arithmetic operator set.
func TestModuloBindsLikeMultiplication(t *testing.T) {
	stmt := parseOne(t, "def x = 1 + 2 % 3")
	def := stmt.(*ast.VarDefine)
	bin, ok := def.Init.(*ast.Binary)
	if !ok {
		t.Fatalf("expected *ast.Binary, got %T", def.Init)
	}
	if bin.Op != "+" {
		t.Fatalf("expected top-level op '+', got %q", bin.Op)
	}
	rhs, ok := bin.Rhs.(*ast.Binary)
	if !ok || rhs.Op != "%" {
		t.Fatalf("expected rhs to be a '%%' binary, got %#v", bin.Rhs)
	}
}

// TestAndBindsTighterThanOr verifies `a or b and c` parses as
// `a or (b and c)`.
func TestAndBindsTighterThanOr(t *testing.T) {
	stmt := parseOne(t, "def x = a or b and c")
	def := stmt.(*ast.VarDefine)
	bin, ok := def.Init.(*ast.Binary)
	if !ok || bin.Op != "or" {
		t.Fatalf("expected top-level 'or', got %#v", def.Init)
	}
	rhs, ok := bin.Rhs.(*ast.Binary)
	if !ok || rhs.Op != "and" {
		t.Fatalf("expected rhs 'and', got %#v", bin.Rhs)
	}
}

// TestAndIsRightAssociative verifies `a and b and c` parses as
// `a and (b and c)`, per spec §4.3/§9.
func TestAndIsRightAssociative(t *testing.T) {
	stmt := parseOne(t, "def x = a and b and c")
	def := stmt.(*ast.VarDefine)
	bin := def.Init.(*ast.Binary)
	if bin.Op != "and" {
		t.Fatalf("expected top-level 'and', got %q", bin.Op)
	}
	lhs, ok := bin.Lhs.(*ast.Ident)
	if !ok || lhs.Name != "a" {
		t.Fatalf("expected lhs to be bare ident 'a', got %#v", bin.Lhs)
	}
	rhs, ok := bin.Rhs.(*ast.Binary)
	if !ok || rhs.Op != "and" {
		t.Fatalf("expected rhs to be a nested 'and', got %#v", bin.Rhs)
	}
}

// TestOrIsLeftAssociative verifies `a or b or c` parses as
// `(a or b) or c`.
func TestOrIsLeftAssociative(t *testing.T) {
	stmt := parseOne(t, "def x = a or b or c")
	def := stmt.(*ast.VarDefine)
	bin := def.Init.(*ast.Binary)
	if bin.Op != "or" {
		t.Fatalf("expected top-level 'or', got %q", bin.Op)
	}
	lhs, ok := bin.Lhs.(*ast.Binary)
	if !ok || lhs.Op != "or" {
		t.Fatalf("expected lhs to be a nested 'or', got %#v", bin.Lhs)
	}
	rhs, ok := bin.Rhs.(*ast.Ident)
	if !ok || rhs.Name != "c" {
		t.Fatalf("expected rhs to be bare ident 'c', got %#v", bin.Rhs)
	}
}

// TestPostfixSuffixesBindTighterThanUnary verifies `not x.foo` parses as
// `not (x.foo)`.
func TestPostfixSuffixesBindTighterThanUnary(t *testing.T) {
	stmt := parseOne(t, "def x = not a.foo")
	def := stmt.(*ast.VarDefine)
	un, ok := def.Init.(*ast.Unary)
	if !ok || un.Op != "not" {
		t.Fatalf("expected *ast.Unary 'not', got %#v", def.Init)
	}
	if _, ok := un.Operand.(*ast.FieldAccess); !ok {
		t.Fatalf("expected operand to be *ast.FieldAccess, got %#v", un.Operand)
	}
}

func TestCallIndexFieldChaining(t *testing.T) {
	stmt := parseOne(t, "foo().bar[0] = 1")
	assign, ok := stmt.(*ast.ExprAssignStmt)
	if !ok {
		t.Fatalf("expected the chain to parse as the target of an expression-assign, got %T", stmt)
	}
	idx, ok := assign.Target.(*ast.IndexAccess)
	if !ok {
		t.Fatalf("expected outermost suffix to be *ast.IndexAccess, got %T", assign.Target)
	}
	field, ok := idx.Target.(*ast.FieldAccess)
	if !ok || field.Name != "bar" {
		t.Fatalf("expected index target to be field access .bar, got %#v", idx.Target)
	}
	if _, ok := field.Target.(*ast.Call); !ok {
		t.Fatalf("expected field target to be *ast.Call, got %T", field.Target)
	}
}

func TestSimpleCallStatement(t *testing.T) {
	stmt := parseOne(t, "print(1, 2)")
	callStmt, ok := stmt.(*ast.CallStmt)
	if !ok {
		t.Fatalf("expected *ast.CallStmt, got %T", stmt)
	}
	if callStmt.Call.Args.Len() != 2 {
		t.Fatalf("expected 2 args, got %d", callStmt.Call.Args.Len())
	}
}

func TestIndexAssignStatement(t *testing.T) {
	stmt := parseOne(t, "a[0] = 1")
	assign, ok := stmt.(*ast.ExprAssignStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprAssignStmt, got %T", stmt)
	}
	if _, ok := assign.Target.(*ast.IndexAccess); !ok {
		t.Fatalf("expected target *ast.IndexAccess, got %T", assign.Target)
	}
}

func TestWhileStatement(t *testing.T) {
	stmt := parseOne(t, "while x < 10 do x = x + 1 end")
	w, ok := stmt.(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected *ast.WhileStmt, got %T", stmt)
	}
	if len(w.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(w.Body.Statements))
	}
}

func TestIfElseifElseStatement(t *testing.T) {
	stmt := parseOne(t, `
if a do
	return 1
elseif b do
	return 2
else do
	return 3
end`)
	ifStmt, ok := stmt.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", stmt)
	}
	if len(ifStmt.ElseIfs) != 1 {
		t.Fatalf("expected 1 elseif branch, got %d", len(ifStmt.ElseIfs))
	}
	if ifStmt.Else == nil {
		t.Fatal("expected an else block")
	}
}

func TestClassDefWithMethodField(t *testing.T) {
	stmt := parseOne(t, `
class Point
	x
	y
	sum = func() do
		return self.x + self.y
	end
end`)
	class, ok := stmt.(*ast.ClassDef)
	if !ok {
		t.Fatalf("expected *ast.ClassDef, got %T", stmt)
	}
	if len(class.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(class.Fields))
	}
	if class.Fields[0].Init != nil || class.Fields[1].Init != nil {
		t.Fatal("expected x and y to be uninitialised fields")
	}
	if class.Fields[2].Init == nil {
		t.Fatal("expected sum to carry a func-literal initializer")
	}
}

// TestSpanCoverage verifies that a composite node's span covers from the
// start of its leftmost child to the end of its rightmost child, per
// spec §8.
func TestSpanCoverage(t *testing.T) {
	src := "def x = 1 + 2"
	stmt := parseOne(t, src)
	sp := stmt.Span()
	if sp.Text() != src {
		t.Errorf("got span text %q, want %q", sp.Text(), src)
	}
}
