package desugar

import (
	"github.com/lhaig/pyscc/internal/ast"
	"github.com/lhaig/pyscc/internal/types"
)

// RewriteFor turns every `for name in range(n)` loop into a while loop
// driving the range iterator by hand:
//
//	__iterN = range(n)
//	__stateN = __iterN[0]
//	__stepN = __iterN[1]
//	__curN = __stepN(__stateN)
//	while __curN[0]:
//	    name = __curN[1]
//	    body
//	    __stateN = __curN[2]
//	    __curN = __stepN(__stateN)
//
// Loops over anything else, or with a target that is not a plain name, are
// left for the lowering to reject.
func RewriteFor(mod *ast.Module) *ast.Module {
	r := &rewriter{}
	return rewriteModule(mod, r.expandFor)
}

func (r *rewriter) expandFor(s ast.Statement) []ast.Statement {
	loop, ok := s.(*ast.For)
	if !ok {
		return []ast.Statement{s}
	}
	target, ok := loop.Target.(*ast.Name)
	if !ok {
		return []ast.Statement{s}
	}
	limit, ok := rangeLimit(loop.Iter)
	if !ok {
		return []ast.Statement{s}
	}

	n := r.fresh()
	iter, state, step, cur := temp("iter", n), temp("state", n), temp("step", n), temp("cur", n)
	p := at(loop)

	rangeCall := &ast.Call{
		Func:   p.load("range", Range),
		Args:   []ast.Expression{limit},
		Typ:    RangeIterator,
		Line:   p.line,
		Column: p.col,
	}
	advance := func() *ast.Assign {
		return p.assign(cur, &ast.Call{
			Func:   p.load(step, RangeStep),
			Args:   []ast.Expression{p.load(state, types.Integer)},
			Typ:    RangeStepResult,
			Line:   p.line,
			Column: p.col,
		})
	}

	body := make([]ast.Statement, 0, len(loop.Body)+3)
	body = append(body, p.assign(target.ID, p.index(p.load(cur, RangeStepResult), 1, types.Integer)))
	body = append(body, loop.Body...)
	body = append(body,
		p.assign(state, p.index(p.load(cur, RangeStepResult), 2, types.Integer)),
		advance(),
	)

	return []ast.Statement{
		p.assign(iter, rangeCall),
		p.assign(state, p.index(p.load(iter, RangeIterator), 0, types.Integer)),
		p.assign(step, p.index(p.load(iter, RangeIterator), 1, RangeStep)),
		advance(),
		&ast.While{
			Test:   p.index(p.load(cur, RangeStepResult), 0, types.Bool),
			Body:   body,
			Orelse: loop.Orelse,
			Line:   p.line,
			Column: p.col,
		},
	}
}

// rangeLimit returns the argument of a direct single argument range call.
func rangeLimit(e ast.Expression) (ast.Expression, bool) {
	call, ok := e.(*ast.Call)
	if !ok || len(call.Args) != 1 {
		return nil, false
	}
	fn, ok := call.Func.(*ast.Name)
	if !ok || fn.ID != "range" {
		return nil, false
	}
	return call.Args[0], true
}
