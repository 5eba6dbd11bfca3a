package ast

import "github.com/lhaig/pyscc/internal/types"

// Node is the base interface for all syntax tree nodes
type Node interface {
	Pos() (line, col int)
	Kind() string
}

// Statement nodes
type Statement interface {
	Node
	stmtNode()
}

// Expression nodes. Type returns the annotation assigned by type
// inference, or nil when the node was never annotated.
type Expression interface {
	Node
	Type() *types.Type
	exprNode()
}

// SliceExpr is the index part of a subscript
type SliceExpr interface {
	Node
	sliceNode()
}

// Context distinguishes reads from writes of a name, tuple or subscript
type Context int

const (
	Load Context = iota
	Store
)

func (c Context) String() string {
	if c == Store {
		return "Store"
	}
	return "Load"
}

// Operator is an arithmetic binary operator
type Operator int

const (
	Add Operator = iota
	Sub
	Mult
	Div
	FloorDiv
	Mod
	Pow
)

func (o Operator) String() string {
	switch o {
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case Mult:
		return "Mult"
	case Div:
		return "Div"
	case FloorDiv:
		return "FloorDiv"
	case Mod:
		return "Mod"
	case Pow:
		return "Pow"
	default:
		return "unknown"
	}
}

// CmpOp is a comparison operator
type CmpOp int

const (
	Eq CmpOp = iota
	NotEq
	Lt
	LtE
	Gt
	GtE
)

func (o CmpOp) String() string {
	switch o {
	case Eq:
		return "Eq"
	case NotEq:
		return "NotEq"
	case Lt:
		return "Lt"
	case LtE:
		return "LtE"
	case Gt:
		return "Gt"
	case GtE:
		return "GtE"
	default:
		return "unknown"
	}
}

// BoolOperator is a short-circuit boolean operator
type BoolOperator int

const (
	And BoolOperator = iota
	Or
)

func (o BoolOperator) String() string {
	if o == Or {
		return "Or"
	}
	return "And"
}

// UnaryOperator is a prefix operator
type UnaryOperator int

const (
	Not UnaryOperator = iota
	USub
)

func (o UnaryOperator) String() string {
	if o == USub {
		return "USub"
	}
	return "Not"
}

// Module is the root of a program
type Module struct {
	Body   []Statement
	Line   int
	Column int
}

func (m *Module) Pos() (int, int) { return m.Line, m.Column }
func (m *Module) Kind() string    { return "Module" }

// Arg is a positional function parameter
type Arg struct {
	Name   string
	Typ    *types.Type
	Line   int
	Column int
}

func (a *Arg) Pos() (int, int) { return a.Line, a.Column }
func (a *Arg) Kind() string    { return "Arg" }

// FunctionDef binds a function value to Name
type FunctionDef struct {
	Name   string
	Params []*Arg
	Body   []Statement
	Line   int
	Column int
}

func (f *FunctionDef) Pos() (int, int) { return f.Line, f.Column }
func (f *FunctionDef) Kind() string    { return "FunctionDef" }
func (f *FunctionDef) stmtNode()       {}

// Assign binds Value to every target
type Assign struct {
	Targets []Expression
	Value   Expression
	Line    int
	Column  int
}

func (a *Assign) Pos() (int, int) { return a.Line, a.Column }
func (a *Assign) Kind() string    { return "Assign" }
func (a *Assign) stmtNode()       {}

// ExprStmt evaluates an expression for its effect
type ExprStmt struct {
	Value  Expression
	Line   int
	Column int
}

func (e *ExprStmt) Pos() (int, int) { return e.Line, e.Column }
func (e *ExprStmt) Kind() string    { return "Expr" }
func (e *ExprStmt) stmtNode()       {}

// Return ends a function body. A nil Value returns None.
type Return struct {
	Value  Expression
	Line   int
	Column int
}

func (r *Return) Pos() (int, int) { return r.Line, r.Column }
func (r *Return) Kind() string    { return "Return" }
func (r *Return) stmtNode()       {}

// Pass does nothing
type Pass struct {
	Line   int
	Column int
}

func (p *Pass) Pos() (int, int) { return p.Line, p.Column }
func (p *Pass) Kind() string    { return "Pass" }
func (p *Pass) stmtNode()       {}

// While repeats Body while Test holds, then runs Orelse
type While struct {
	Test   Expression
	Body   []Statement
	Orelse []Statement
	Line   int
	Column int
}

func (w *While) Pos() (int, int) { return w.Line, w.Column }
func (w *While) Kind() string    { return "While" }
func (w *While) stmtNode()       {}

// For iterates Target over Iter
type For struct {
	Target Expression
	Iter   Expression
	Body   []Statement
	Orelse []Statement
	Line   int
	Column int
}

func (f *For) Pos() (int, int) { return f.Line, f.Column }
func (f *For) Kind() string    { return "For" }
func (f *For) stmtNode()       {}

// If runs Body when Test holds and Orelse otherwise
type If struct {
	Test   Expression
	Body   []Statement
	Orelse []Statement
	Line   int
	Column int
}

func (i *If) Pos() (int, int) { return i.Line, i.Column }
func (i *If) Kind() string    { return "If" }
func (i *If) stmtNode()       {}

// BinOp is an arithmetic expression. Its type is the operand type.
type BinOp struct {
	Left   Expression
	Op     Operator
	Right  Expression
	Typ    *types.Type
	Line   int
	Column int
}

func (b *BinOp) Pos() (int, int)   { return b.Line, b.Column }
func (b *BinOp) Kind() string      { return "BinOp" }
func (b *BinOp) Type() *types.Type { return b.Typ }
func (b *BinOp) exprNode()         {}

// Compare holds a (possibly chained) comparison left op0 c0 op1 c1 ...
type Compare struct {
	Left        Expression
	Ops         []CmpOp
	Comparators []Expression
	Typ         *types.Type
	Line        int
	Column      int
}

func (c *Compare) Pos() (int, int)   { return c.Line, c.Column }
func (c *Compare) Kind() string      { return "Compare" }
func (c *Compare) Type() *types.Type { return c.Typ }
func (c *Compare) exprNode()         {}

// BoolOp is an n-ary and/or
type BoolOp struct {
	Op     BoolOperator
	Values []Expression
	Typ    *types.Type
	Line   int
	Column int
}

func (b *BoolOp) Pos() (int, int)   { return b.Line, b.Column }
func (b *BoolOp) Kind() string      { return "BoolOp" }
func (b *BoolOp) Type() *types.Type { return b.Typ }
func (b *BoolOp) exprNode()         {}

// UnaryOp applies a prefix operator
type UnaryOp struct {
	Op      UnaryOperator
	Operand Expression
	Typ     *types.Type
	Line    int
	Column  int
}

func (u *UnaryOp) Pos() (int, int)   { return u.Line, u.Column }
func (u *UnaryOp) Kind() string      { return "UnaryOp" }
func (u *UnaryOp) Type() *types.Type { return u.Typ }
func (u *UnaryOp) exprNode()         {}

// IfExp is the conditional expression `Body if Test else Orelse`
type IfExp struct {
	Test   Expression
	Body   Expression
	Orelse Expression
	Typ    *types.Type
	Line   int
	Column int
}

func (i *IfExp) Pos() (int, int)   { return i.Line, i.Column }
func (i *IfExp) Kind() string      { return "IfExp" }
func (i *IfExp) Type() *types.Type { return i.Typ }
func (i *IfExp) exprNode()         {}

// Call applies Func to positional Args
type Call struct {
	Func   Expression
	Args   []Expression
	Typ    *types.Type
	Line   int
	Column int
}

func (c *Call) Pos() (int, int)   { return c.Line, c.Column }
func (c *Call) Kind() string      { return "Call" }
func (c *Call) Type() *types.Type { return c.Typ }
func (c *Call) exprNode()         {}

// Name references a variable
type Name struct {
	ID     string
	Ctx    Context
	Typ    *types.Type
	Line   int
	Column int
}

func (n *Name) Pos() (int, int)   { return n.Line, n.Column }
func (n *Name) Kind() string      { return "Name" }
func (n *Name) Type() *types.Type { return n.Typ }
func (n *Name) exprNode()         {}

// Constant is a literal. Value holds one of string (text), []byte,
// int, int64, *big.Int, bool or nil (None).
type Constant struct {
	Value  any
	Typ    *types.Type
	Line   int
	Column int
}

func (c *Constant) Pos() (int, int)   { return c.Line, c.Column }
func (c *Constant) Kind() string      { return "Constant" }
func (c *Constant) Type() *types.Type { return c.Typ }
func (c *Constant) exprNode()         {}

// Subscript is Value[Slice]
type Subscript struct {
	Value  Expression
	Slice  SliceExpr
	Ctx    Context
	Typ    *types.Type
	Line   int
	Column int
}

func (s *Subscript) Pos() (int, int)   { return s.Line, s.Column }
func (s *Subscript) Kind() string      { return "Subscript" }
func (s *Subscript) Type() *types.Type { return s.Typ }
func (s *Subscript) exprNode()         {}

// Tuple is a fixed-arity tuple display, or a destructuring target in
// Store context
type Tuple struct {
	Elts   []Expression
	Ctx    Context
	Typ    *types.Type
	Line   int
	Column int
}

func (t *Tuple) Pos() (int, int)   { return t.Line, t.Column }
func (t *Tuple) Kind() string      { return "Tuple" }
func (t *Tuple) Type() *types.Type { return t.Typ }
func (t *Tuple) exprNode()         {}

// Index is a single-element subscript
type Index struct {
	Value  Expression
	Line   int
	Column int
}

func (i *Index) Pos() (int, int) { return i.Line, i.Column }
func (i *Index) Kind() string    { return "Index" }
func (i *Index) sliceNode()      {}

// Slice is a lower:upper:step subscript. Any bound may be nil.
type Slice struct {
	Lower  Expression
	Upper  Expression
	Step   Expression
	Line   int
	Column int
}

func (s *Slice) Pos() (int, int) { return s.Line, s.Column }
func (s *Slice) Kind() string    { return "Slice" }
func (s *Slice) sliceNode()      {}
