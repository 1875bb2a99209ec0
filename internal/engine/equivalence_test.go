package engine

import (
	"bytes"
	"testing"
)

// scenarios covers the subset of the language both backends currently
// support (no break/continue/class/field-assign on the VM side), asserting
// both backends agree on return value and stdout, per spec's Open Question
// on exposing both an evaluator and a VM.
var scenarios = []struct {
	name string
	src  string
}{
	{"arithmetic", "return 1 + 2 * 3 - 4 / 2"},
	{"comparisons", "return (3 > 2) and (2 >= 2)"},
	{"while-loop", `
def total = 0
def i = 0
while i < 5 do
	total = total + i
	i = i + 1
end
return total
`},
	{"if-elseif-else", `
def x = 2
if x == 1 do
	return 100
elseif x == 2 do
	return 200
else do
	return 300
end
`},
	{"closures", `
def make_adder = func(n) do
	return func(x) do
		return x + n
	end
end
def add5 = make_adder(5)
return add5(10)
`},
	{"recursion", `
def fact = func(n) do
	if n <= 1 do
		return 1
	end
	return n * fact(n - 1)
end
return fact(6)
`},
	{"print-side-effect", `print("hi", 1 + 1)`},
}

func TestBackendsAgree(t *testing.T) {
	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			var evalOut, vmOut bytes.Buffer

			evalResult, err := Execute(s.src, "<test>", Options{
				Backend:      BackendEvaluator,
				Capabilities: DefaultOptions().Capabilities,
				Stdout:       &evalOut,
			})
			if err != nil {
				t.Fatalf("evaluator backend: %v", err)
			}

			vmResult, err := Execute(s.src, "<test>", Options{
				Backend:      BackendVM,
				Capabilities: DefaultOptions().Capabilities,
				Stdout:       &vmOut,
			})
			if err != nil {
				t.Fatalf("vm backend: %v", err)
			}

			if evalOut.String() != vmOut.String() {
				t.Errorf("stdout mismatch: evaluator=%q vm=%q", evalOut.String(), vmOut.String())
			}
			if evalResult.Value.Kind != vmResult.Value.Kind {
				t.Fatalf("kind mismatch: evaluator=%v vm=%v", evalResult.Value.Kind, vmResult.Value.Kind)
			}
			if evalResult.Value.Num != vmResult.Value.Num ||
				evalResult.Value.Bool != vmResult.Value.Bool ||
				evalResult.Value.Str != vmResult.Value.Str {
				t.Errorf("value mismatch: evaluator=%#v vm=%#v", evalResult.Value, vmResult.Value)
			}
		})
	}
}
