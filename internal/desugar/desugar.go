// Package desugar rewrites syntax that has no direct lowering into
// equivalent simpler statements. Every rewrite returns a new tree and
// leaves its input untouched.
package desugar

import (
	"fmt"

	"github.com/lhaig/pyscc/internal/ast"
	"github.com/lhaig/pyscc/internal/types"
)

// Types of the range iteration protocol.
var (
	// RangeStepResult is (hasNext, current, nextState).
	RangeStepResult = types.Tuple(types.Bool, types.Integer, types.Integer)
	// RangeStep advances a range state.
	RangeStep = types.Function([]*types.Type{types.Integer}, RangeStepResult)
	// RangeIterator is (initialState, step).
	RangeIterator = types.Tuple(types.Integer, RangeStep)
	// Range is the type of the range builtin.
	Range = types.Function([]*types.Type{types.Integer}, RangeIterator)
)

// rewriter holds the per-pass temporary counter.
type rewriter struct {
	next int
}

func (r *rewriter) fresh() int {
	n := r.next
	r.next++
	return n
}

// Module applies every rewrite in pipeline order: for loops first, then
// tuple and chained assignments.
func Module(mod *ast.Module) *ast.Module {
	return RewriteTupleAssign(RewriteFor(mod))
}

// walk rebuilds a statement list, replacing each statement with the
// statements expand returns for it. Nested bodies are rewritten first.
func walk(stmts []ast.Statement, expand func(ast.Statement) []ast.Statement) []ast.Statement {
	if stmts == nil {
		return nil
	}
	out := make([]ast.Statement, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, expand(descend(s, expand))...)
	}
	return out
}

// descend returns a shallow copy of s with its nested bodies rewritten.
func descend(s ast.Statement, expand func(ast.Statement) []ast.Statement) ast.Statement {
	switch stmt := s.(type) {
	case *ast.FunctionDef:
		c := *stmt
		c.Body = walk(stmt.Body, expand)
		return &c
	case *ast.While:
		c := *stmt
		c.Body = walk(stmt.Body, expand)
		c.Orelse = walk(stmt.Orelse, expand)
		return &c
	case *ast.For:
		c := *stmt
		c.Body = walk(stmt.Body, expand)
		c.Orelse = walk(stmt.Orelse, expand)
		return &c
	case *ast.If:
		c := *stmt
		c.Body = walk(stmt.Body, expand)
		c.Orelse = walk(stmt.Orelse, expand)
		return &c
	default:
		return s
	}
}

func rewriteModule(mod *ast.Module, expand func(ast.Statement) []ast.Statement) *ast.Module {
	if mod == nil {
		return nil
	}
	return &ast.Module{Body: walk(mod.Body, expand), Line: mod.Line, Column: mod.Column}
}

// --- node builders, positioned at the statement they replace ---

type pos struct{ line, col int }

func at(n ast.Node) pos {
	line, col := n.Pos()
	return pos{line, col}
}

func (p pos) load(id string, typ *types.Type) *ast.Name {
	return &ast.Name{ID: id, Ctx: ast.Load, Typ: typ, Line: p.line, Column: p.col}
}

func (p pos) assign(id string, value ast.Expression) *ast.Assign {
	target := &ast.Name{ID: id, Ctx: ast.Store, Typ: value.Type(), Line: p.line, Column: p.col}
	return &ast.Assign{Targets: []ast.Expression{target}, Value: value, Line: p.line, Column: p.col}
}

func (p pos) index(value ast.Expression, i int, typ *types.Type) *ast.Subscript {
	return &ast.Subscript{
		Value:  value,
		Slice:  &ast.Index{Value: &ast.Constant{Value: i, Typ: types.Integer, Line: p.line, Column: p.col}, Line: p.line, Column: p.col},
		Ctx:    ast.Load,
		Typ:    typ,
		Line:   p.line,
		Column: p.col,
	}
}

func temp(prefix string, n int) string {
	return fmt.Sprintf("__%s%d", prefix, n)
}
