package vm

import (
	"testing"

	"github.com/kristofer/prog/internal/compiler"
	"github.com/kristofer/prog/internal/env"
	"github.com/kristofer/prog/internal/intrinsics"
	"github.com/kristofer/prog/internal/parser"
	"github.com/kristofer/prog/internal/value"
)

func runVM(t *testing.T, src string) value.Value {
	t.Helper()
	p, err := parser.New(src, "<test>")
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	code, err := compiler.New().Compile(prog)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ctx := env.New(env.AllCapabilities())
	intrinsics.Register(ctx)
	result, err := New().Run(code, ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return result
}

func TestVMArithmeticPrecedence(t *testing.T) {
	got := runVM(t, "return 1 + 2 * 3")
	if got.Num != 7 {
		t.Errorf("got %v, want 7", got.Num)
	}
}

func TestVMComparisons(t *testing.T) {
	got := runVM(t, "return 3 >= 3")
	if got.Bool != true {
		t.Errorf("got %v, want true", got.Bool)
	}
}

func TestVMWhileLoop(t *testing.T) {
	got := runVM(t, `
def total = 0
def i = 0
while i < 5 do
	total = total + i
	i = i + 1
end
return total
`)
	if got.Num != 10 {
		t.Errorf("got %v, want 10", got.Num)
	}
}

func TestVMIfElseifElse(t *testing.T) {
	got := runVM(t, `
def x = 2
if x == 1 do
	return 100
elseif x == 2 do
	return 200
else do
	return 300
end
`)
	if got.Num != 200 {
		t.Errorf("got %v, want 200", got.Num)
	}
}

func TestVMFunctionCallAndClosure(t *testing.T) {
	got := runVM(t, `
def make_adder = func(n) do
	return func(x) do
		return x + n
	end
end
def add5 = make_adder(5)
return add5(10)
`)
	if got.Num != 15 {
		t.Errorf("got %v, want 15", got.Num)
	}
}

func TestVMRecursiveFunction(t *testing.T) {
	got := runVM(t, `
def fact = func(n) do
	if n <= 1 do
		return 1
	end
	return n * fact(n - 1)
end
return fact(5)
`)
	if got.Num != 120 {
		t.Errorf("got %v, want 120", got.Num)
	}
}

func TestVMAndOrShortCircuit(t *testing.T) {
	got := runVM(t, "return false and (1 / 0)")
	if got.Bool != false {
		t.Errorf("got %v, want false (short-circuit should skip the division)", got.Bool)
	}
}

func TestVMStringConcatenation(t *testing.T) {
	got := runVM(t, `return "a" + "b"`)
	if got.Str != "ab" {
		t.Errorf("got %q, want %q", got.Str, "ab")
	}
}

func TestVMDivisionByZeroErrors(t *testing.T) {
	p, err := parser.New("return 1 / 0", "<test>")
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	code, err := compiler.New().Compile(prog)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ctx := env.New(env.AllCapabilities())
	intrinsics.Register(ctx)
	if _, err := New().Run(code, ctx); err == nil {
		t.Fatal("expected an error for division by zero")
	}
}

func TestVMModuloOperator(t *testing.T) {
	got := runVM(t, "return 7 % 3")
	if got.Num != 1 {
		t.Errorf("got %v, want 1", got.Num)
	}
}

func TestVMModuloByZeroErrors(t *testing.T) {
	p, err := parser.New("return 1 % 0", "<test>")
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	code, err := compiler.New().Compile(prog)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ctx := env.New(env.AllCapabilities())
	intrinsics.Register(ctx)
	if _, err := New().Run(code, ctx); err == nil {
		t.Fatal("expected an error for modulo by zero")
	}
}

func TestVMCallIntrinsic(t *testing.T) {
	got := runVM(t, `return regex_match("hello", "ell")`)
	if got.Bool != true {
		t.Errorf("got %v, want true", got.Bool)
	}
}
