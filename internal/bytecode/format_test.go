package bytecode

import "testing"

func TestRoundTripSimpleConstants(t *testing.T) {
	b := New()
	b.AddConstant(42.0)
	b.AddConstant("hello")
	b.AddConstant(true)
	b.AddConstant(nil)
	b.AddName("x")
	b.Emit(OpPush, 0)
	top := b.Emit(OpLabel, 1)
	b.Emit(OpJmp, 1)
	b.ResolveLabels()

	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	got, err := FromBytes(data)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	if len(got.Constants) != 4 {
		t.Fatalf("got %d constants, want 4", len(got.Constants))
	}
	if got.Constants[0].(float64) != 42.0 {
		t.Errorf("constant 0: got %v, want 42", got.Constants[0])
	}
	if got.Constants[1].(string) != "hello" {
		t.Errorf("constant 1: got %v, want hello", got.Constants[1])
	}
	if got.Constants[2].(bool) != true {
		t.Errorf("constant 2: got %v, want true", got.Constants[2])
	}
	if got.Constants[3] != nil {
		t.Errorf("constant 3: got %v, want nil", got.Constants[3])
	}
	if len(got.Names) != 1 || got.Names[0] != "x" {
		t.Errorf("got names %v, want [x]", got.Names)
	}
	if len(got.Instructions) != 3 {
		t.Fatalf("got %d instructions, want 3", len(got.Instructions))
	}
	if idx, ok := got.Labels[1]; !ok || idx != top {
		t.Errorf("got label 1 -> %d (ok=%v), want %d", idx, ok, top)
	}
}

// TestRoundTripNestedFuncProto verifies a function-literal constant (with
// its own nested instruction stream and labels) survives Bytes/FromBytes.
func TestRoundTripNestedFuncProto(t *testing.T) {
	inner := New()
	inner.AddConstant(1.0)
	inner.Emit(OpPush, 0)
	inner.Emit(OpRet, 0)
	inner.ResolveLabels()

	proto := &FuncProto{Name: "f", Params: []string{"a", "b"}, Code: inner}

	outer := New()
	idx := outer.AddConstant(proto)
	outer.Emit(OpNewFunc, idx)
	outer.ResolveLabels()

	data, err := outer.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	got, err := FromBytes(data)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	gotProto, ok := got.Constants[0].(*FuncProto)
	if !ok {
		t.Fatalf("expected constant 0 to be *FuncProto, got %T", got.Constants[0])
	}
	if gotProto.Name != "f" {
		t.Errorf("got name %q, want %q", gotProto.Name, "f")
	}
	if len(gotProto.Params) != 2 || gotProto.Params[0] != "a" || gotProto.Params[1] != "b" {
		t.Errorf("got params %v, want [a b]", gotProto.Params)
	}
	if len(gotProto.Code.Instructions) != 2 {
		t.Fatalf("got %d nested instructions, want 2", len(gotProto.Code.Instructions))
	}
	if gotProto.Code.Constants[0].(float64) != 1.0 {
		t.Errorf("nested constant: got %v, want 1", gotProto.Code.Constants[0])
	}
}

func TestFromBytesRejectsBadMagic(t *testing.T) {
	_, err := FromBytes([]byte{0, 0, 0, 0, 0, 0, 0, 1})
	if err == nil {
		t.Fatal("expected an error for a bad magic number")
	}
}

func TestAddConstantDeduplicatesPrimitives(t *testing.T) {
	b := New()
	i1 := b.AddConstant(5.0)
	i2 := b.AddConstant(5.0)
	if i1 != i2 {
		t.Errorf("expected equal primitive constants to dedupe, got indices %d and %d", i1, i2)
	}
}

func TestAddConstantNeverDedupesFuncProto(t *testing.T) {
	b := New()
	p1 := &FuncProto{Name: "f", Code: New()}
	p2 := &FuncProto{Name: "f", Code: New()}
	i1 := b.AddConstant(p1)
	i2 := b.AddConstant(p2)
	if i1 == i2 {
		t.Error("expected distinct FuncProto constants to never be deduplicated")
	}
}

func TestResolveLabelsRecursesIntoFuncProto(t *testing.T) {
	inner := New()
	inner.Emit(OpLabel, 0)
	inner.Emit(OpJmp, 0)
	proto := &FuncProto{Name: "f", Code: inner}

	outer := New()
	outer.AddConstant(proto)
	outer.ResolveLabels()

	if idx, ok := inner.Labels[0]; !ok || idx != 0 {
		t.Errorf("expected nested FuncProto's labels to be resolved, got %v ok=%v", idx, ok)
	}
}
