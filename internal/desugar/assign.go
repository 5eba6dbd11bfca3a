package desugar

import (
	"github.com/lhaig/pyscc/internal/ast"
	"github.com/lhaig/pyscc/internal/types"
)

// RewriteTupleAssign splits assignments the lowering only accepts in their
// single name form. `a = b = e` becomes
//
//	__tmpN = e
//	a = __tmpN
//	b = __tmpN
//
// and the tuple target `a, b = e` becomes
//
//	__tmpN = e
//	a = __tmpN[0]
//	b = __tmpN[1]
//
// Nested tuple targets are split recursively. Assignments whose targets
// cannot be split are left for the lowering to reject.
func RewriteTupleAssign(mod *ast.Module) *ast.Module {
	r := &rewriter{}
	return rewriteModule(mod, r.expandAssign)
}

func (r *rewriter) expandAssign(s ast.Statement) []ast.Statement {
	a, ok := s.(*ast.Assign)
	if !ok || len(a.Targets) == 0 || a.Value == nil {
		return []ast.Statement{s}
	}
	if len(a.Targets) == 1 {
		if _, ok := a.Targets[0].(*ast.Name); ok {
			return []ast.Statement{s}
		}
	}
	for _, t := range a.Targets {
		if !splittable(t, a.Value.Type()) {
			return []ast.Statement{s}
		}
	}

	p := at(a)
	if len(a.Targets) == 1 {
		return r.split(p, a.Targets[0], a.Value)
	}

	tmp := temp("tmp", r.fresh())
	out := []ast.Statement{p.assign(tmp, a.Value)}
	for _, t := range a.Targets {
		out = append(out, r.unpack(p, t, p.load(tmp, a.Value.Type()))...)
	}
	return out
}

// split assigns value to target, spilling it into a temporary when the
// target is a tuple.
func (r *rewriter) split(p pos, target ast.Expression, value ast.Expression) []ast.Statement {
	if name, ok := target.(*ast.Name); ok {
		return []ast.Statement{p.assign(name.ID, value)}
	}
	tmp := temp("tmp", r.fresh())
	return append(
		[]ast.Statement{p.assign(tmp, value)},
		r.unpack(p, target, p.load(tmp, value.Type()))...,
	)
}

// unpack assigns src, a name holding an already evaluated value, to target.
func (r *rewriter) unpack(p pos, target ast.Expression, src *ast.Name) []ast.Statement {
	tuple, ok := target.(*ast.Tuple)
	if !ok {
		return []ast.Statement{p.assign(target.(*ast.Name).ID, src)}
	}
	var out []ast.Statement
	for i, elt := range tuple.Elts {
		elem := p.index(src, i, src.Typ.Elems[i])
		out = append(out, r.split(p, elt, elem)...)
	}
	return out
}

// splittable reports whether target is a name or a tuple of splittable
// targets matching the shape of typ.
func splittable(target ast.Expression, typ *types.Type) bool {
	switch t := target.(type) {
	case *ast.Name:
		return true
	case *ast.Tuple:
		if typ.Arity() != len(t.Elts) || len(t.Elts) == 0 {
			return false
		}
		for i, elt := range t.Elts {
			if !splittable(elt, typ.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
