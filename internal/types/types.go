package types

import "strings"

// Kind tags a type in the inferred type lattice
type Kind int

const (
	KindInteger Kind = iota
	KindByteString
	KindText
	KindBool
	KindUnit
	KindTuple
	KindList
	KindFunction
)

// String returns the lattice name of the kind
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindByteString:
		return "ByteString"
	case KindText:
		return "Text"
	case KindBool:
		return "Bool"
	case KindUnit:
		return "Unit"
	case KindTuple:
		return "Tuple"
	case KindList:
		return "List"
	case KindFunction:
		return "Function"
	default:
		return "unknown"
	}
}

// Type is a concrete type assigned by inference. It never contains
// open type variables.
type Type struct {
	Kind   Kind
	Elems  []*Type // tuple element types, or the single list element type
	Params []*Type // function parameter types
	Ret    *Type   // function return type
}

// Scalar types
var (
	Integer    = &Type{Kind: KindInteger}
	ByteString = &Type{Kind: KindByteString}
	Text       = &Type{Kind: KindText}
	Bool       = &Type{Kind: KindBool}
	Unit       = &Type{Kind: KindUnit}
)

// Tuple builds a fixed-arity tuple type
func Tuple(elems ...*Type) *Type {
	return &Type{Kind: KindTuple, Elems: elems}
}

// List builds a homogeneous list type
func List(elem *Type) *Type {
	return &Type{Kind: KindList, Elems: []*Type{elem}}
}

// Function builds a function type from positional parameter types
func Function(params []*Type, ret *Type) *Type {
	return &Type{Kind: KindFunction, Params: params, Ret: ret}
}

// IsTuple reports whether t is a tuple type
func (t *Type) IsTuple() bool {
	return t != nil && t.Kind == KindTuple
}

// Arity returns the number of tuple elements, or -1 for non-tuples
func (t *Type) Arity() int {
	if !t.IsTuple() {
		return -1
	}
	return len(t.Elems)
}

// Elem returns the list element type, or nil for non-lists
func (t *Type) Elem() *Type {
	if t == nil || t.Kind != KindList || len(t.Elems) != 1 {
		return nil
	}
	return t.Elems[0]
}

// Equal checks structural equality
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	if !equalAll(t.Elems, other.Elems) || !equalAll(t.Params, other.Params) {
		return false
	}
	if t.Kind == KindFunction {
		return t.Ret.Equal(other.Ret)
	}
	return true
}

func equalAll(a, b []*Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// String returns the string representation of the type,
// e.g. Tuple[Integer, Bool] or Function[Integer, Text -> Unit]
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindTuple, KindList:
		return t.Kind.String() + "[" + joinTypes(t.Elems) + "]"
	case KindFunction:
		return "Function[" + joinTypes(t.Params) + " -> " + t.Ret.String() + "]"
	default:
		return t.Kind.String()
	}
}

func joinTypes(ts []*Type) string {
	parts := make([]string, len(ts))
	for i, e := range ts {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
