package machine

import (
	"encoding/hex"
	"math/big"

	"github.com/lhaig/pyscc/internal/ir"
)

// Value is the result of evaluating a term.
type Value interface {
	value()
}

// Integer is an arbitrary precision integer value.
type Integer struct {
	V *big.Int
}

// ByteString is a byte string value.
type ByteString struct {
	V []byte
}

// Text is a unicode string value.
type Text struct {
	V string
}

// Bool is a boolean value.
type Bool struct {
	V bool
}

// Unit is the unit value.
type Unit struct{}

// Closure is a lambda together with the bindings it captured. Params
// holds the parameters not yet supplied.
type Closure struct {
	Params []string
	Body   ir.Term
	Env    *Env
}

// Delayed is a suspended term.
type Delayed struct {
	Body ir.Term
	Env  *Env
}

// Builtin is a builtin reference, possibly forced and partially applied.
type Builtin struct {
	Fun    ir.BuiltinFun
	Forced int
	Args   []Value
}

func (*Integer) value()    {}
func (*ByteString) value() {}
func (*Text) value()       {}
func (*Bool) value()       {}
func (*Unit) value()       {}
func (*Closure) value()    {}
func (*Delayed) value()    {}
func (*Builtin) value()    {}

// Int returns an integer value.
func Int(v int64) *Integer {
	return &Integer{V: big.NewInt(v)}
}

// Render formats a value the way trace messages show it.
func Render(v Value) string {
	switch val := v.(type) {
	case *Integer:
		return val.V.String()
	case *ByteString:
		return "#" + hex.EncodeToString(val.V)
	case *Text:
		return val.V
	case *Bool:
		if val.V {
			return "True"
		}
		return "False"
	case *Unit:
		return "()"
	case *Closure:
		return "<lambda>"
	case *Delayed:
		return "<delay>"
	case *Builtin:
		return "<builtin " + val.Fun.String() + ">"
	default:
		return "<unknown>"
	}
}

// Env is a persistent chain of bindings.
type Env struct {
	name string
	val  Value
	next *Env
}

// Bind returns a new chain with name bound to v on top of e.
func (e *Env) Bind(name string, v Value) *Env {
	return &Env{name: name, val: v, next: e}
}

// Lookup finds the innermost binding of name.
func (e *Env) Lookup(name string) (Value, bool) {
	for cur := e; cur != nil; cur = cur.next {
		if cur.name == name {
			return cur.val, true
		}
	}
	return nil, false
}
