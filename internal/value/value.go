// Package value implements the runtime value model shared by the
// evaluator and the VM: a tagged sum of Number, Boolean, String, List,
// Object, Function, IntrinsicFunction, Class, ClassInstance, ControlFlow,
// and None, per spec §3/§4.4.
//
// Shared-mutable containers (List, Object, Class fields, ClassInstance
// fields) follow shared ownership with interior mutability: they are
// modelled as pointers to a backing struct, so multiple Values holding the
// same List/Object/Class/ClassInstance observe the same storage, the way
// go-mix's objects package models Go-Mix lists/maps as pointer-backed
// runtime objects.
package value

import "fmt"

// Kind tags the variant a Value currently holds.
type Kind int

const (
	KindNone Kind = iota
	KindNumber
	KindBoolean
	KindString
	KindList
	KindObject
	KindFunction
	KindIntrinsic
	KindClass
	KindClassInstance
	KindControlFlow
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	case KindIntrinsic:
		return "intrinsic"
	case KindClass:
		return "class"
	case KindClassInstance:
		return "class_instance"
	case KindControlFlow:
		return "control_flow"
	default:
		return "unknown"
	}
}

// Value is the closed tagged union of every runtime value kind. Only the
// field matching Kind is meaningful.
type Value struct {
	Kind      Kind
	Num       float64
	Bool      bool
	Str       string
	List      *List
	Object    *Object
	Function  *Function
	Intrinsic *Intrinsic
	Class     *Class
	Instance  *ClassInstance
	Control   *ControlFlow
}

// List is a shared-mutable, ordered sequence of values.
type List struct {
	Items []Value
}

// Object is a shared-mutable string-keyed map of values. Order records
// insertion order for stable display; equality is structural and ignores
// it.
type Object struct {
	Fields map[string]Value
	Order  []string
}

// NewObject builds an empty Object ready for field insertion.
func NewObject() *Object {
	return &Object{Fields: make(map[string]Value)}
}

// Set inserts or overwrites a field, tracking insertion order.
func (o *Object) Set(name string, v Value) {
	if _, exists := o.Fields[name]; !exists {
		o.Order = append(o.Order, name)
	}
	o.Fields[name] = v
}

// Get reads a field; ok is false if the field is absent.
func (o *Object) Get(name string) (Value, bool) {
	v, ok := o.Fields[name]
	return v, ok
}

// ControlFlowKind distinguishes the three control-flow markers.
type ControlFlowKind int

const (
	ControlReturn ControlFlowKind = iota
	ControlBreak
	ControlContinue
)

// ControlFlow is the marker value used to propagate break/continue/return
// through statement evaluation, per spec §4.7/§9.
type ControlFlow struct {
	Kind  ControlFlowKind
	Value Value // meaningful only for ControlReturn
}

// --- constructors ---

func None() Value                { return Value{Kind: KindNone} }
func Number(n float64) Value     { return Value{Kind: KindNumber, Num: n} }
func Boolean(b bool) Value       { return Value{Kind: KindBoolean, Bool: b} }
func String(s string) Value      { return Value{Kind: KindString, Str: s} }
func ListOf(items []Value) Value { return Value{Kind: KindList, List: &List{Items: items}} }
func ObjectOf(o *Object) Value   { return Value{Kind: KindObject, Object: o} }
func FunctionOf(f *Function) Value { return Value{Kind: KindFunction, Function: f} }
func IntrinsicOf(i *Intrinsic) Value { return Value{Kind: KindIntrinsic, Intrinsic: i} }
func ClassOf(c *Class) Value     { return Value{Kind: KindClass, Class: c} }
func InstanceOf(ci *ClassInstance) Value { return Value{Kind: KindClassInstance, Instance: ci} }
func ControlOf(cf *ControlFlow) Value { return Value{Kind: KindControlFlow, Control: cf} }

// Display renders a Value's user-facing textual form (used by print and by
// string concatenation coercion, spec §4.4).
func (v Value) Display() string {
	switch v.Kind {
	case KindNone:
		return "none"
	case KindNumber:
		return formatNumber(v.Num)
	case KindBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindString:
		return v.Str
	case KindList:
		parts := make([]string, len(v.List.Items))
		for i, item := range v.List.Items {
			parts[i] = item.Display()
		}
		return "[" + joinComma(parts) + "]"
	case KindObject:
		parts := make([]string, 0, len(v.Object.Order))
		for _, name := range v.Object.Order {
			val, _ := v.Object.Get(name)
			parts = append(parts, name+" = "+val.Display())
		}
		return "{" + joinComma(parts) + "}"
	case KindFunction:
		return "<function>"
	case KindIntrinsic:
		return "<intrinsic " + v.Intrinsic.Name + ">"
	case KindClass:
		return "<class " + v.Class.Name + ">"
	case KindClassInstance:
		return "<" + v.Instance.Class.Name + " instance>"
	case KindControlFlow:
		return "<control_flow>"
	default:
		return "<unknown>"
	}
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}

// Truthy implements spec §4.4's truthiness table.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNumber:
		return v.Num != 0
	case KindBoolean:
		return v.Bool
	case KindString:
		return v.Str != ""
	case KindList:
		return len(v.List.Items) > 0
	case KindObject:
		return len(v.Object.Fields) > 0
	case KindNone:
		return false
	default:
		return true
	}
}

// Equal implements structural equality over current contents, per spec
// §4.4.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNone:
		return true
	case KindNumber:
		return a.Num == b.Num
	case KindBoolean:
		return a.Bool == b.Bool
	case KindString:
		return a.Str == b.Str
	case KindList:
		if len(a.List.Items) != len(b.List.Items) {
			return false
		}
		for i := range a.List.Items {
			if !Equal(a.List.Items[i], b.List.Items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.Object.Fields) != len(b.Object.Fields) {
			return false
		}
		for name, av := range a.Object.Fields {
			bv, ok := b.Object.Get(name)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindClass:
		return a.Class == b.Class
	case KindClassInstance:
		return a.Instance == b.Instance
	case KindFunction:
		return a.Function == b.Function
	case KindIntrinsic:
		return a.Intrinsic == b.Intrinsic
	default:
		return false
	}
}
