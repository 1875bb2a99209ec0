package engine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWorkedScenarios runs the six concrete end-to-end programs (evaluator
// path) and asserts their exact stdout, grounded on akashmaji946-go-mix's
// use of testify/assert for evaluator-level scenario checks.
func TestWorkedScenarios(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		stdout string
	}{
		{
			name:   "arithmetic precedence",
			src:    "def x = 1 + 2 * 3 print(x)",
			stdout: "7\n",
		},
		{
			name:   "while loop",
			src:    "def i = 0 while i < 3 do print(i) i = i + 1 end",
			stdout: "0\n1\n2\n",
		},
		{
			name:   "recursive function",
			src:    "def fact = func(n) do if n <= 1 do return 1 end return n * fact(n - 1) end print(fact(5))",
			stdout: "120\n",
		},
		{
			name:   "object field assignment",
			src:    "def o = { a = 1, b = 2 } o.a = 10 print(o.a + o.b)",
			stdout: "12\n",
		},
		{
			name:   "class construction",
			src:    "class Point x y end def p = Point({ x = 3, y = 4 }) print(p.x + p.y)",
			stdout: "7\n",
		},
		{
			name:   "list index assignment",
			src:    "def xs = [10, 20, 30] xs[1] = 99 print(xs[1])",
			stdout: "99\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := Execute(c.src, "<scenario>", Options{
				Backend:      BackendEvaluator,
				Capabilities: DefaultOptions().Capabilities,
				Stdout:       &out,
			})
			require.NoError(t, err)
			assert.Equal(t, c.stdout, out.String())
		})
	}
}
