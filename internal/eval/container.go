package eval

import (
	"github.com/kristofer/prog/internal/diag"
	"github.com/kristofer/prog/internal/span"
	"github.com/kristofer/prog/internal/value"
)

// indexValue implements `recv[idx]` for List and Object (string-keyed via
// string index), per spec §4.4. A missing entry on a plain object reads as
// none rather than erroring; a list index that is not a number, not an
// integer, negative or past the end is an error, as is a non-string object
// index.
func indexValue(recv, idx value.Value, sp span.Span) (value.Value, error) {
	switch recv.Kind {
	case value.KindList:
		i, ok := numericIndex(idx, len(recv.List.Items))
		if !ok {
			return value.Value{}, diag.New(diag.KindInvalidIndex, sp, "invalid list index")
		}
		return recv.List.Items[i], nil
	case value.KindObject:
		if idx.Kind != value.KindString {
			return value.Value{}, diag.New(diag.KindInvalidIndex, sp, "object index must be a string")
		}
		v, _ := recv.Object.Get(idx.Str)
		return v, nil
	default:
		return value.Value{}, diag.New(diag.KindCannotIndex, sp, "cannot index a "+recv.Kind.String())
	}
}

func numericIndex(idx value.Value, length int) (int, bool) {
	if idx.Kind != value.KindNumber {
		return 0, false
	}
	i := int(idx.Num)
	if float64(i) != idx.Num || i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

// assignIndex implements `recv[idx] = v`. For a list, the index must be a
// non-negative integer; an index at or beyond the current length grows the
// list, padding with none, before the assignment lands, per spec §4.7.
func assignIndex(recv, idx, v value.Value, sp span.Span) error {
	switch recv.Kind {
	case value.KindList:
		if idx.Kind != value.KindNumber {
			return diag.New(diag.KindInvalidIndex, sp, "invalid list index")
		}
		i := int(idx.Num)
		if float64(i) != idx.Num || i < 0 {
			return diag.New(diag.KindInvalidIndex, sp, "invalid list index")
		}
		for i >= len(recv.List.Items) {
			recv.List.Items = append(recv.List.Items, value.None())
		}
		recv.List.Items[i] = v
		return nil
	case value.KindObject:
		if idx.Kind != value.KindString {
			return diag.New(diag.KindInvalidIndex, sp, "object index must be a string")
		}
		recv.Object.Set(idx.Str, v)
		return nil
	default:
		return diag.New(diag.KindCannotIndex, sp, "cannot index a "+recv.Kind.String())
	}
}

// fieldValue implements `recv.name` for Object and ClassInstance, per spec
// §4.4/§4.6: a missing field on a plain object reads as none, but a missing
// field on a class instance is an error. Every other kind falls back to
// its primitive dispatch map (`.len`, `.sub`, ...), per spec §4.7.
func fieldValue(recv value.Value, name string, sp span.Span) (value.Value, error) {
	switch recv.Kind {
	case value.KindObject:
		v, _ := recv.Object.Get(name)
		return v, nil
	case value.KindClassInstance:
		v, ok := recv.Instance.Fields.Get(name)
		if !ok {
			return value.Value{}, diag.New(diag.KindFieldDoesntExist, sp, "field does not exist: "+name)
		}
		return v, nil
	default:
		if m, ok := primitiveMethod(recv, name); ok {
			return value.IntrinsicOf(m), nil
		}
		return value.Value{}, diag.New(diag.KindFieldDoesntExist, sp, "cannot access field of a "+recv.Kind.String())
	}
}

// assignField implements `recv.name = v`. Reassigning a class-instance
// method (a field whose current value is a Function bound with Self) is
// rejected, per spec §7's "cannot reassign class function".
func assignField(recv value.Value, name string, v value.Value, sp span.Span) error {
	switch recv.Kind {
	case value.KindObject:
		recv.Object.Set(name, v)
		return nil
	case value.KindClassInstance:
		existing, ok := recv.Instance.Fields.Get(name)
		if ok && existing.Kind == value.KindFunction && existing.Function.Self != nil {
			return diag.New(diag.KindCannotReassignFn, sp, "cannot reassign class function: "+name)
		}
		recv.Instance.Fields.Set(name, v)
		return nil
	default:
		return diag.New(diag.KindFieldDoesntExist, sp, "cannot assign field of a "+recv.Kind.String())
	}
}
