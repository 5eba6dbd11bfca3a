package ir

import (
	"fmt"
	"math/big"

	"github.com/lhaig/pyscc/internal/ast"
	"github.com/lhaig/pyscc/internal/types"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// lowerer transforms a typed syntax tree into a lambda term. Every lowered
// node is a function of the environment at that program point: statements
// map an environment to the next one, expressions map it to a value.
type lowerer struct{}

// Lower transforms a desugared, fully typed module into a closed program:
// the lowered module body applied to the bootstrap environment.
func Lower(mod *ast.Module) (*Program, error) {
	if mod == nil {
		return nil, newError(StructuralViolation, nil, "nil module")
	}
	l := &lowerer{}
	body, err := l.lowerSequence(mod.Body)
	if err != nil {
		return nil, err
	}
	return &Program{Term: NewApply(body, BootstrapEnv())}, nil
}

// LowerExpr lowers a single expression to a term of shape \s -> value.
func LowerExpr(e ast.Expression) (Term, error) {
	l := &lowerer{}
	return l.lowerExpr(e)
}

// --- Statement lowering ---

// lowerSequence composes statements so that the environment produced by
// each statement feeds the next: \s -> stmtN (... (stmt1 s)).
func (l *lowerer) lowerSequence(stmts []ast.Statement) (Term, error) {
	var state Term = NewVar(StateVar)
	for _, s := range stmts {
		compiled, err := l.lowerStmt(s)
		if err != nil {
			return nil, err
		}
		state = NewApply(compiled, state)
	}
	return withState(state), nil
}

func (l *lowerer) lowerStmt(s ast.Statement) (Term, error) {
	switch stmt := s.(type) {
	case *ast.Assign:
		return l.lowerAssign(stmt)

	case *ast.ExprStmt:
		value, err := l.lowerExpr(stmt.Value)
		if err != nil {
			return nil, err
		}
		// the discarded argument is still evaluated before s is returned
		return withState(NewApply(
			NewLambda([]string{"_"}, NewVar(StateVar)),
			atState(value),
		)), nil

	case *ast.FunctionDef:
		fn, err := l.lowerFunction(stmt)
		if err != nil {
			return nil, err
		}
		return withState(extend(NewVar(StateVar), []string{stmt.Name}, []Term{atState(fn)})), nil

	case *ast.Return:
		return nil, newError(UnsupportedSyntax, stmt,
			"return statements are only supported as the last statement of a function body")

	case *ast.Pass:
		return l.lowerSequence(nil)

	case *ast.While:
		return l.lowerWhile(stmt)

	case *ast.If:
		return l.lowerIf(stmt)

	case *ast.For:
		if stmt.Iter != nil && stmt.Iter.Type() != nil && stmt.Iter.Type().Kind == types.KindList {
			return nil, newError(UnsupportedSyntax, stmt, "compilation of list iterators is not supported")
		}
		return nil, newError(UnsupportedSyntax, stmt, "compilation of raw for statements is not supported")

	case nil:
		return nil, newError(StructuralViolation, nil, "nil statement")

	default:
		return nil, newError(UnsupportedSyntax, s, "can not compile %s", s.Kind())
	}
}

func (l *lowerer) lowerAssign(stmt *ast.Assign) (Term, error) {
	if len(stmt.Targets) != 1 {
		return nil, newError(UnsupportedSyntax, stmt, "assignments to more than one target are not supported")
	}
	target, ok := stmt.Targets[0].(*ast.Name)
	if !ok {
		return nil, newError(UnsupportedSyntax, stmt, "assignments to %s targets are not supported", stmt.Targets[0].Kind())
	}
	value, err := l.lowerExpr(stmt.Value)
	if err != nil {
		return nil, err
	}
	return withState(extend(NewVar(StateVar), []string{target.ID}, []Term{atState(value)})), nil
}

// lowerFunction returns \s -> \p0 ... pn -> ret (body (extend s params [p0 ... pn])).
// The body runs in a call-local environment, so its assignments are not
// visible once the call returns.
func (l *lowerer) lowerFunction(fn *ast.FunctionDef) (Term, error) {
	body := slices.Clone(fn.Body)
	var ret *ast.Return
	if len(body) > 0 {
		ret, _ = body[len(body)-1].(*ast.Return)
	}
	if ret != nil {
		body = body[:len(body)-1]
	} else {
		ret = &ast.Return{Line: fn.Line, Column: fn.Column}
	}

	compiledBody, err := l.lowerSequence(body)
	if err != nil {
		return nil, errors.Wrapf(err, "in function %s", fn.Name)
	}
	compiledRet, err := l.lowerReturnValue(ret)
	if err != nil {
		return nil, errors.Wrapf(err, "in function %s", fn.Name)
	}

	names := make([]string, len(fn.Params))
	params := make([]string, len(fn.Params))
	args := make([]Term, len(fn.Params))
	for i, p := range fn.Params {
		names[i] = p.Name
		params[i] = fmt.Sprintf("p%d", i)
		args[i] = NewVar(params[i])
	}
	if len(params) == 0 {
		// called with a single unit argument
		params = []string{"_"}
	}

	callState := extend(NewVar(StateVar), names, args)
	return withState(NewLambda(params,
		NewApply(compiledRet, NewApply(compiledBody, callState)),
	)), nil
}

func (l *lowerer) lowerReturnValue(ret *ast.Return) (Term, error) {
	if ret.Value == nil {
		return withState(&Unit{}), nil
	}
	return l.lowerExpr(ret.Value)
}

// lowerWhile builds the self-applying loop
// \s -> let g = \s f -> if cond s then f (body s) f else s in g s g.
func (l *lowerer) lowerWhile(w *ast.While) (Term, error) {
	if len(w.Orelse) > 0 {
		// no break lowering, so the else block always runs after the loop
		loop := *w
		loop.Orelse = nil
		return l.lowerSequence(append([]ast.Statement{&loop}, w.Orelse...))
	}

	cond, err := l.lowerExpr(w.Test)
	if err != nil {
		return nil, err
	}
	body, err := l.lowerSequence(w.Body)
	if err != nil {
		return nil, err
	}

	g := NewLambda([]string{StateVar, "f"},
		NewIte(
			atState(cond),
			NewApply(NewVar("f"), atState(body), NewVar("f")),
			NewVar(StateVar),
		),
	)
	return withState(&Let{
		Bindings: []Binding{{Name: "g", Value: g}},
		Body:     NewApply(NewVar("g"), NewVar(StateVar), NewVar("g")),
	}), nil
}

func (l *lowerer) lowerIf(stmt *ast.If) (Term, error) {
	cond, err := l.lowerExpr(stmt.Test)
	if err != nil {
		return nil, err
	}
	then, err := l.lowerSequence(stmt.Body)
	if err != nil {
		return nil, err
	}
	els, err := l.lowerSequence(stmt.Orelse)
	if err != nil {
		return nil, err
	}
	return withState(NewIte(atState(cond), atState(then), atState(els))), nil
}

// --- Expression lowering ---

func (l *lowerer) lowerExpr(e ast.Expression) (Term, error) {
	switch expr := e.(type) {
	case *ast.BinOp:
		fun, err := resolveBinOp(expr)
		if err != nil {
			return nil, err
		}
		return l.lowerBuiltinCall(fun, expr.Left, expr.Right)

	case *ast.Compare:
		if len(expr.Ops) != 1 || len(expr.Comparators) != 1 {
			return nil, newError(UnsupportedSyntax, expr, "only single comparisons are supported")
		}
		fun, err := resolveCompare(expr, expr.Ops[0])
		if err != nil {
			return nil, err
		}
		return l.lowerBuiltinCall(fun, expr.Left, expr.Comparators[0])

	case *ast.BoolOp:
		return l.lowerBoolOp(expr)

	case *ast.UnaryOp:
		return l.lowerUnaryOp(expr)

	case *ast.IfExp:
		parts, err := l.lowerExprs(expr.Test, expr.Body, expr.Orelse)
		if err != nil {
			return nil, err
		}
		return withState(NewIte(atState(parts[0]), atState(parts[1]), atState(parts[2]))), nil

	case *ast.Constant:
		lit, err := lowerConstant(expr)
		if err != nil {
			return nil, err
		}
		return withState(lit), nil

	case *ast.Name:
		if expr.Ctx != ast.Load {
			return nil, newError(UnsupportedSyntax, expr, "context %s not supported for name %s", expr.Ctx, expr.ID)
		}
		return withState(lookup(NewVar(StateVar), expr.ID)), nil

	case *ast.Call:
		return l.lowerCall(expr)

	case *ast.Subscript:
		return l.lowerSubscript(expr)

	case *ast.Tuple:
		if expr.Ctx != ast.Load {
			return nil, newError(UnsupportedSyntax, expr, "tuple targets must be rewritten to single assignments")
		}
		if len(expr.Elts) == 0 {
			return nil, newError(StructuralViolation, expr, "empty tuples are not supported")
		}
		elems, err := l.lowerExprs(expr.Elts...)
		if err != nil {
			return nil, err
		}
		for i := range elems {
			elems[i] = atState(elems[i])
		}
		return withState(emulateTuple(elems...)), nil

	case nil:
		return nil, newError(StructuralViolation, nil, "nil expression")

	default:
		return nil, newError(UnsupportedSyntax, e, "can not compile %s", e.Kind())
	}
}

// lowerExprs lowers expressions left to right.
func (l *lowerer) lowerExprs(exprs ...ast.Expression) ([]Term, error) {
	out := make([]Term, len(exprs))
	for i, e := range exprs {
		t, err := l.lowerExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// lowerBuiltinCall returns \s -> builtin (left s) (right s).
func (l *lowerer) lowerBuiltinCall(fun BuiltinFun, left, right ast.Expression) (Term, error) {
	operands, err := l.lowerExprs(left, right)
	if err != nil {
		return nil, err
	}
	return withState(NewApply(NewBuiltIn(fun), atState(operands[0]), atState(operands[1]))), nil
}

func (l *lowerer) lowerCall(call *ast.Call) (Term, error) {
	fn, err := l.lowerExpr(call.Func)
	if err != nil {
		return nil, err
	}
	args, err := l.lowerExprs(call.Args...)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return withState(NewApply(atState(fn), &Unit{})), nil
	}
	for i := range args {
		args[i] = atState(args[i])
	}
	return withState(NewApply(atState(fn), args...)), nil
}

func (l *lowerer) lowerBoolOp(expr *ast.BoolOp) (Term, error) {
	if len(expr.Values) < 2 {
		return nil, newError(StructuralViolation, expr, "%s needs at least two operands", expr.Op)
	}
	for _, v := range expr.Values {
		t, err := typeOf(v)
		if err != nil {
			return nil, err
		}
		if t.Kind != types.KindBool {
			return nil, newError(UnresolvableOperator, expr, "operation %s is not implemented for type %s", expr.Op, t)
		}
	}
	values, err := l.lowerExprs(expr.Values...)
	if err != nil {
		return nil, err
	}

	acc := atState(values[0])
	for _, v := range values[1:] {
		if expr.Op == ast.And {
			acc = NewIte(acc, atState(v), &Bool{Value: false})
		} else {
			acc = NewIte(acc, &Bool{Value: true}, atState(v))
		}
	}
	return withState(acc), nil
}

func (l *lowerer) lowerUnaryOp(expr *ast.UnaryOp) (Term, error) {
	t, err := typeOf(expr.Operand)
	if err != nil {
		return nil, err
	}
	switch {
	case expr.Op == ast.Not && t.Kind == types.KindBool:
		operand, err := l.lowerExpr(expr.Operand)
		if err != nil {
			return nil, err
		}
		return withState(NewIte(atState(operand), &Bool{Value: false}, &Bool{Value: true})), nil
	case expr.Op == ast.USub && t.Kind == types.KindInteger:
		operand, err := l.lowerExpr(expr.Operand)
		if err != nil {
			return nil, err
		}
		return withState(NewApply(NewBuiltIn(SubtractInteger), NewInt(0), atState(operand))), nil
	default:
		return nil, newError(UnresolvableOperator, expr, "operation %s is not implemented for type %s", expr.Op, t)
	}
}

// lowerSubscript projects a constant index out of an encoded tuple.
func (l *lowerer) lowerSubscript(expr *ast.Subscript) (Term, error) {
	idx, ok := expr.Slice.(*ast.Index)
	if !ok {
		return nil, newError(StructuralViolation, expr, "only single index slices are supported")
	}
	vt, err := typeOf(expr.Value)
	if err != nil {
		return nil, err
	}

	switch vt.Kind {
	case types.KindTuple:
		c, ok := idx.Value.(*ast.Constant)
		if !ok {
			return nil, newError(StructuralViolation, expr, "only constant index access for tuples is supported")
		}
		n, ok := constantIndex(c.Value)
		if !ok {
			return nil, newError(StructuralViolation, expr, "tuple index must be an integer constant, got %s", ast.FormatConstant(c.Value))
		}
		size := vt.Arity()
		if n < 0 {
			n += size
		}
		if n < 0 || n >= size {
			return nil, newError(StructuralViolation, expr, "index %s out of range for %s", ast.FormatConstant(c.Value), vt)
		}
		value, err := l.lowerExpr(expr.Value)
		if err != nil {
			return nil, err
		}
		return withState(emulateNth(atState(value), n, size)), nil

	case types.KindList:
		return nil, newError(UnsupportedSyntax, expr, "list index access is not supported")

	default:
		return nil, newError(UnsupportedSyntax, expr, "subscript of %s values is not supported", vt)
	}
}

// --- Helper functions ---

func typeOf(e ast.Expression) (*types.Type, error) {
	if e == nil {
		return nil, newError(StructuralViolation, nil, "nil expression")
	}
	t := e.Type()
	if t == nil {
		return nil, newError(MissingType, e, "%s has no type annotation", e.Kind())
	}
	return t, nil
}

// lowerConstant maps a literal value to the matching IR literal.
func lowerConstant(c *ast.Constant) (Term, error) {
	switch v := c.Value.(type) {
	case nil:
		return &Unit{}, nil
	case bool:
		return &Bool{Value: v}, nil
	case string:
		return &Text{Value: v}, nil
	case []byte:
		return &ByteString{Value: slices.Clone(v)}, nil
	case int:
		return NewInt(int64(v)), nil
	case int64:
		return NewInt(v), nil
	case *big.Int:
		return &Integer{Value: new(big.Int).Set(v)}, nil
	default:
		return nil, newError(UnsupportedLiteral, c, "constants of type %T are not supported", c.Value)
	}
}

func constantIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case *big.Int:
		if n.IsInt64() {
			return int(n.Int64()), true
		}
	}
	return 0, false
}
