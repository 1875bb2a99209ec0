package value

import "testing"

func TestDisplayNumberIntegral(t *testing.T) {
	if got := Number(3).Display(); got != "3" {
		t.Errorf("got %q, want %q", got, "3")
	}
	if got := Number(3.5).Display(); got != "3.5" {
		t.Errorf("got %q, want %q", got, "3.5")
	}
}

func TestDisplayList(t *testing.T) {
	v := ListOf([]Value{Number(1), String("a"), Boolean(true)})
	if got, want := v.Display(), "[1, a, true]"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDisplayObjectPreservesInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("b", Number(2))
	o.Set("a", Number(1))
	v := ObjectOf(o)
	if got, want := v.Display(), "{b = 2, a = 1}"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TestTruthy exercises spec §4.4's truthiness table.
func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"zero number", Number(0), false},
		{"nonzero number", Number(1), true},
		{"negative number", Number(-1), true},
		{"false", Boolean(false), false},
		{"true", Boolean(true), true},
		{"empty string", String(""), false},
		{"nonempty string", String("x"), true},
		{"empty list", ListOf(nil), false},
		{"nonempty list", ListOf([]Value{Number(1)}), true},
		{"empty object", ObjectOf(NewObject()), false},
		{"none", None(), false},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestEqualStructural(t *testing.T) {
	a := ListOf([]Value{Number(1), String("x")})
	b := ListOf([]Value{Number(1), String("x")})
	if !Equal(a, b) {
		t.Error("expected structurally equal lists to compare equal")
	}
	c := ListOf([]Value{Number(1), String("y")})
	if Equal(a, c) {
		t.Error("expected differing lists to compare unequal")
	}
}

func TestEqualObjectIgnoresOrder(t *testing.T) {
	o1 := NewObject()
	o1.Set("a", Number(1))
	o1.Set("b", Number(2))
	o2 := NewObject()
	o2.Set("b", Number(2))
	o2.Set("a", Number(1))
	if !Equal(ObjectOf(o1), ObjectOf(o2)) {
		t.Error("expected objects with same fields in different insertion order to be equal")
	}
}

func TestEqualClassInstanceIsPointerIdentity(t *testing.T) {
	class := &Class{Name: "Point"}
	i1 := &ClassInstance{Class: class, Fields: NewObject()}
	i2 := &ClassInstance{Class: class, Fields: NewObject()}
	if Equal(InstanceOf(i1), InstanceOf(i2)) {
		t.Error("expected distinct instances to be unequal even with identical fields")
	}
	if !Equal(InstanceOf(i1), InstanceOf(i1)) {
		t.Error("expected same instance to equal itself")
	}
}

func TestEqualDifferentKinds(t *testing.T) {
	if Equal(Number(0), Boolean(false)) {
		t.Error("expected values of differing kinds to never be equal")
	}
}
