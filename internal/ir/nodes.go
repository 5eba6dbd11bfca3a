package ir

import "math/big"

// Program is a closed term ready for serialization.
type Program struct {
	Term Term
}

// Term is the interface for all nodes of the target lambda calculus.
// Terms are immutable once built and may be shared between parents.
type Term interface {
	termNode()
}

// Var references a lambda parameter or let binding.
type Var struct {
	Name string
}

func (*Var) termNode() {}

// Lambda abstracts over one or more parameters. Multi-parameter lambdas
// are curried: \a b -> t is \a -> \b -> t.
type Lambda struct {
	Params []string
	Body   Term
}

func (*Lambda) termNode() {}

// Apply applies Fn to one or more arguments, left to right.
type Apply struct {
	Fn   Term
	Args []Term
}

func (*Apply) termNode() {}

// Binding is a single let binding.
type Binding struct {
	Name  string
	Value Term
}

// Let binds names in order; later bindings see earlier ones.
type Let struct {
	Bindings []Binding
	Body     Term
}

func (*Let) termNode() {}

// Ite evaluates Cond and then exactly one of the branches.
type Ite struct {
	Cond Term
	Then Term
	Else Term
}

func (*Ite) termNode() {}

// BuiltIn references a primitive of the target machine.
type BuiltIn struct {
	Fun BuiltinFun
}

func (*BuiltIn) termNode() {}

// Integer is an arbitrary precision integer literal.
type Integer struct {
	Value *big.Int
}

func (*Integer) termNode() {}

// ByteString is a byte string literal.
type ByteString struct {
	Value []byte
}

func (*ByteString) termNode() {}

// Text is a unicode string literal.
type Text struct {
	Value string
}

func (*Text) termNode() {}

// Bool is a boolean literal.
type Bool struct {
	Value bool
}

func (*Bool) termNode() {}

// Unit is the unit literal.
type Unit struct{}

func (*Unit) termNode() {}

// Force evaluates a delayed term or instantiates a polymorphic builtin.
type Force struct {
	Term Term
}

func (*Force) termNode() {}

// Delay suspends evaluation of Term until forced.
type Delay struct {
	Term Term
}

func (*Delay) termNode() {}

// Error aborts evaluation.
type Error struct{}

func (*Error) termNode() {}

// --- Constructors ---

// NewVar returns a variable reference.
func NewVar(name string) *Var {
	return &Var{Name: name}
}

// NewLambda returns \params... -> body.
func NewLambda(params []string, body Term) *Lambda {
	return &Lambda{Params: params, Body: body}
}

// NewApply returns (fn args...).
func NewApply(fn Term, args ...Term) *Apply {
	return &Apply{Fn: fn, Args: args}
}

// NewIte returns if cond then a else b.
func NewIte(cond, then, els Term) *Ite {
	return &Ite{Cond: cond, Then: then, Else: els}
}

// NewBuiltIn returns a reference to a builtin.
func NewBuiltIn(fun BuiltinFun) *BuiltIn {
	return &BuiltIn{Fun: fun}
}

// NewInt returns an integer literal.
func NewInt(v int64) *Integer {
	return &Integer{Value: big.NewInt(v)}
}

// NewByteString returns a byte string literal holding the bytes of s.
func NewByteString(s string) *ByteString {
	return &ByteString{Value: []byte(s)}
}
