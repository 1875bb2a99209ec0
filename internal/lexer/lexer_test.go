package lexer

import "testing"

func TestTokenizeBasic(t *testing.T) {
	toks, err := New("def x = 1 + 2 * 3", "<test>").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Kind{KwDef, Identifier, Assign, Number, Plus, Number, Star, Number, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestTokenizeCompoundOperators(t *testing.T) {
	toks, err := New("-> => == != >= <=", "<test>").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Kind{Arrow, FatArrow, EqualEqual, NotEqual, GreaterEq, LessEq, EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestTokenizeStringLiteral(t *testing.T) {
	toks, err := New(`"hello world"`, "<test>").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != String {
		t.Fatalf("expected String token, got %s", toks[0].Kind)
	}
	if got := toks[0].StringContent(); got != "hello world" {
		t.Errorf("got %q, want %q", got, "hello world")
	}
}

func TestUnterminatedStringIsLexError(t *testing.T) {
	_, err := New(`"hello`, "<test>").Tokenize()
	if err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
}

func TestUnterminatedBlockCommentIsLexError(t *testing.T) {
	_, err := New("/* never closed", "<test>").Tokenize()
	if err == nil {
		t.Fatal("expected an error for an unterminated block comment")
	}
}

func TestLineCommentsAreSkipped(t *testing.T) {
	toks, err := New("1 // comment to end of line\n2", "<test>").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Kind{Number, Number, EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

// TestRoundTripLex verifies that concatenating token.Value() across all
// non-EOF tokens reproduces the source modulo stripped whitespace/comments,
// per spec §8.
func TestRoundTripLex(t *testing.T) {
	src := "def x = 1 + 2 * 3\nprint(x)"
	toks, err := New(src, "<test>").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rebuilt string
	for _, tok := range toks {
		if tok.Kind == EOF {
			continue
		}
		rebuilt += tok.Value()
	}
	if rebuilt != "defx=1+2*3print(x)" {
		t.Errorf("round-trip mismatch: got %q", rebuilt)
	}
}
