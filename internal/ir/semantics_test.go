package ir_test

import (
	"testing"

	"github.com/lhaig/pyscc/internal/ast"
	"github.com/lhaig/pyscc/internal/ir"
	"github.com/lhaig/pyscc/internal/machine"
	"github.com/lhaig/pyscc/internal/types"
	"github.com/pkg/errors"
)

var intToInt = types.Function([]*types.Type{types.Integer}, types.Integer)

func TestModuleWithFunctionCall(t *testing.T) {
	// def f(x: int) -> int:
	//     y = x + 1
	//     return y
	// y = f(2)
	// print(y)
	mod := module(
		&ast.FunctionDef{
			Name:   "f",
			Params: []*ast.Arg{{Name: "x", Typ: types.Integer}},
			Body: []ast.Statement{
				assign("y", binop(load("x", types.Integer), ast.Add, intLit(1), types.Integer)),
				&ast.Return{Value: load("y", types.Integer)},
			},
		},
		assign("y", call(load("f", intToInt), types.Integer, intLit(2))),
		printStmt(load("y", types.Integer)),
	)

	env, m := runModule(t, mod)
	if got := m.Traces(); len(got) != 1 || got[0] != "3" {
		t.Errorf("expected trace [3], got %v", got)
	}
	if got := lookupInt(t, m, env, "y"); got != 3 {
		t.Errorf("y = %d, want 3", got)
	}
}

func TestReassignmentShadows(t *testing.T) {
	env, m := runModule(t, module(assign("x", intLit(1)), assign("x", intLit(2))))
	if got := lookupInt(t, m, env, "x"); got != 2 {
		t.Errorf("x = %d, want 2", got)
	}
}

func TestStatementsRunInOrder(t *testing.T) {
	env, m := runModule(t, module(
		printStmt(intLit(1)),
		assign("a", intLit(10)),
		assign("b", binop(load("a", types.Integer), ast.Mult, intLit(2), types.Integer)),
		printStmt(load("b", types.Integer)),
	))
	if got := m.Traces(); len(got) != 2 || got[0] != "1" || got[1] != "20" {
		t.Errorf("expected traces [1 20], got %v", got)
	}
	if got := lookupInt(t, m, env, "b"); got != 20 {
		t.Errorf("b = %d, want 20", got)
	}
}

func TestExtendFirstDuplicateWins(t *testing.T) {
	env := ir.Extend(ir.EmptyEnv(), []string{"a", "b", "a"}, []ir.Term{ir.NewInt(1), ir.NewInt(2), ir.NewInt(3)})
	m := machine.New(machine.DefaultConfig())
	v, err := m.Eval(env)
	if err != nil {
		t.Fatal(err)
	}
	if got := lookupInt(t, m, v, "a"); got != 1 {
		t.Errorf("a = %d, want 1", got)
	}
	if got := lookupInt(t, m, v, "b"); got != 2 {
		t.Errorf("b = %d, want 2", got)
	}
	if _, err := m.Lookup(v, "c"); !errors.Is(err, machine.ErrEvaluationFailure) {
		t.Errorf("lookup of unbound name should fail, got %v", err)
	}
}

func TestTupleProjection(t *testing.T) {
	for size := 2; size <= 3; size++ {
		elts := make([]ast.Expression, size)
		elemTypes := make([]*types.Type, size)
		for i := range elts {
			elts[i] = intLit(100 + i)
			elemTypes[i] = types.Integer
		}
		tup := &ast.Tuple{Elts: elts, Typ: types.Tuple(elemTypes...)}

		for i := -size; i < size; i++ {
			v := evalExpr(t, &ast.Subscript{Value: tup, Slice: &ast.Index{Value: intLit(i)}, Typ: types.Integer})
			want := 100 + i
			if i < 0 {
				want += size
			}
			if got := machine.Render(v); got != machine.Render(machine.Int(int64(want))) {
				t.Errorf("(%d-tuple)[%d] = %s, want %d", size, i, got, want)
			}
		}
	}
}

func TestTupleThroughVariable(t *testing.T) {
	typ := types.Tuple(types.Integer, types.Text, types.Integer)
	env, m := runModule(t, module(
		assign("t", &ast.Tuple{Elts: []ast.Expression{intLit(1), textLit("two"), intLit(3)}, Typ: typ}),
		assign("y", &ast.Subscript{Value: load("t", typ), Slice: &ast.Index{Value: intLit(2)}, Typ: types.Integer}),
	))
	if got := lookupInt(t, m, env, "y"); got != 3 {
		t.Errorf("y = %d, want 3", got)
	}
}

func countTo(limit int, orelse ...ast.Statement) *ast.Module {
	i := func() *ast.Name { return load("i", types.Integer) }
	return module(
		assign("i", intLit(0)),
		&ast.While{
			Test: compare(i(), ast.Lt, intLit(limit)),
			Body: []ast.Statement{
				assign("i", binop(i(), ast.Add, intLit(1), types.Integer)),
			},
			Orelse: orelse,
		},
	)
}

func TestWhileLoop(t *testing.T) {
	env, m := runModule(t, countTo(3))
	if got := lookupInt(t, m, env, "i"); got != 3 {
		t.Errorf("i = %d, want 3", got)
	}

	env, m = runModule(t, countTo(0))
	if got := lookupInt(t, m, env, "i"); got != 0 {
		t.Errorf("loop with false condition ran: i = %d", got)
	}
}

func TestWhileElseRunsAfterLoop(t *testing.T) {
	env, m := runModule(t, countTo(4, assign("j", binop(load("i", types.Integer), ast.Mult, intLit(10), types.Integer))))
	if got := lookupInt(t, m, env, "j"); got != 40 {
		t.Errorf("j = %d, want 40", got)
	}
}

func TestFunctionLocalsDoNotLeak(t *testing.T) {
	// x = 5
	// def f(a): x = a + 1; return x
	// z = f(5)
	mod := module(
		assign("x", intLit(5)),
		&ast.FunctionDef{
			Name:   "f",
			Params: []*ast.Arg{{Name: "a", Typ: types.Integer}},
			Body: []ast.Statement{
				assign("x", binop(load("a", types.Integer), ast.Add, intLit(1), types.Integer)),
				&ast.Return{Value: load("x", types.Integer)},
			},
		},
		assign("z", call(load("f", intToInt), types.Integer, intLit(5))),
	)
	env, m := runModule(t, mod)
	if got := lookupInt(t, m, env, "z"); got != 6 {
		t.Errorf("z = %d, want 6", got)
	}
	if got := lookupInt(t, m, env, "x"); got != 5 {
		t.Errorf("x = %d after call, want 5", got)
	}
}

func TestFunctionCapturesDefinitionEnvironment(t *testing.T) {
	noArgs := types.Function(nil, types.Integer)
	mod := module(
		assign("x", intLit(1)),
		&ast.FunctionDef{Name: "f", Body: []ast.Statement{&ast.Return{Value: load("x", types.Integer)}}},
		assign("x", intLit(2)),
		assign("r", call(load("f", noArgs), types.Integer)),
	)
	env, m := runModule(t, mod)
	if got := lookupInt(t, m, env, "r"); got != 1 {
		t.Errorf("r = %d, want the value of x at definition time", got)
	}
}

func TestFunctionWithoutReturnYieldsNone(t *testing.T) {
	mod := module(
		&ast.FunctionDef{Name: "h", Body: []ast.Statement{&ast.Pass{}}},
		assign("r", call(load("h", types.Function(nil, types.Unit)), types.Unit)),
	)
	env, m := runModule(t, mod)
	v, err := m.Lookup(env, "r")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.(*machine.Unit); !ok {
		t.Errorf("r = %s, want ()", machine.Render(v))
	}
}

func TestMultipleParameters(t *testing.T) {
	sub := types.Function([]*types.Type{types.Integer, types.Integer}, types.Integer)
	mod := module(
		&ast.FunctionDef{
			Name:   "sub",
			Params: []*ast.Arg{{Name: "a", Typ: types.Integer}, {Name: "b", Typ: types.Integer}},
			Body: []ast.Statement{
				&ast.Return{Value: binop(load("a", types.Integer), ast.Sub, load("b", types.Integer), types.Integer)},
			},
		},
		assign("r", call(load("sub", sub), types.Integer, intLit(10), intLit(3))),
	)
	env, m := runModule(t, mod)
	if got := lookupInt(t, m, env, "r"); got != 7 {
		t.Errorf("r = %d, want 7", got)
	}
}

func TestIfStatement(t *testing.T) {
	branch := func(cond bool) *ast.Module {
		return module(&ast.If{
			Test:   boolLit(cond),
			Body:   []ast.Statement{assign("r", intLit(1))},
			Orelse: []ast.Statement{assign("r", intLit(2))},
		})
	}
	env, m := runModule(t, branch(true))
	if got := lookupInt(t, m, env, "r"); got != 1 {
		t.Errorf("then branch: r = %d", got)
	}
	env, m = runModule(t, branch(false))
	if got := lookupInt(t, m, env, "r"); got != 2 {
		t.Errorf("else branch: r = %d", got)
	}
}

func TestUnboundNameFails(t *testing.T) {
	prog, err := ir.Lower(module(printStmt(load("z", types.Integer))))
	if err != nil {
		t.Fatal(err)
	}
	_, err = machine.New(machine.DefaultConfig()).Run(prog)
	if !errors.Is(err, machine.ErrEvaluationFailure) {
		t.Errorf("expected evaluation failure, got %v", err)
	}
}

func TestExpressionSemantics(t *testing.T) {
	divByZero := compare(binop(intLit(1), ast.FloorDiv, intLit(0), types.Integer), ast.Eq, intLit(0))
	tests := []struct {
		name string
		expr ast.Expression
		want string
	}{
		{"floor division", binop(intLit(-7), ast.FloorDiv, intLit(2), types.Integer), "-4"},
		{"true division", binop(intLit(7), ast.Div, intLit(2), types.Integer), "3"},
		{"modulo", binop(intLit(-7), ast.Mod, intLit(2), types.Integer), "-1"},
		{"text concat", binop(textLit("ab"), ast.Add, textLit("c"), types.Text), "abc"},
		{"bytes concat", binop(bytesLit("a"), ast.Add, bytesLit("b"), types.ByteString), "#6162"},
		{"bytes less", compare(bytesLit("a"), ast.Lt, bytesLit("b")), "True"},
		{"integer lte", compare(intLit(3), ast.LtE, intLit(2)), "False"},
		{"and short circuits", &ast.BoolOp{Op: ast.And, Values: []ast.Expression{boolLit(false), divByZero}, Typ: types.Bool}, "False"},
		{"or short circuits", &ast.BoolOp{Op: ast.Or, Values: []ast.Expression{boolLit(true), divByZero}, Typ: types.Bool}, "True"},
		{"three way and", &ast.BoolOp{Op: ast.And, Values: []ast.Expression{boolLit(true), boolLit(true), boolLit(false)}, Typ: types.Bool}, "False"},
		{"not", &ast.UnaryOp{Op: ast.Not, Operand: boolLit(false), Typ: types.Bool}, "True"},
		{"negate", &ast.UnaryOp{Op: ast.USub, Operand: intLit(5), Typ: types.Integer}, "-5"},
		{"conditional", &ast.IfExp{Test: boolLit(false), Body: divByZero, Orelse: boolLit(true), Typ: types.Bool}, "True"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := machine.Render(evalExpr(t, tt.expr)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPrintPrelude(t *testing.T) {
	m := machine.New(machine.DefaultConfig())
	v, err := m.Eval(ir.NewApply(ir.NewApply(ir.BootstrapEnv(), ir.NewByteString("print")), &ir.Text{Value: "hello"}))
	if err != nil {
		t.Fatal(err)
	}
	if got := machine.Render(v); got != "hello" {
		t.Errorf("print returned %s, want its argument", got)
	}
	if got := m.Traces(); len(got) != 1 || got[0] != "hello" {
		t.Errorf("traces = %v", got)
	}
}

func TestRangePrelude(t *testing.T) {
	rangeOf := func(n int64) ir.Term {
		return ir.NewApply(ir.NewApply(ir.BootstrapEnv(), ir.NewByteString("range")), ir.NewInt(n))
	}
	pick := func(i, size int) ir.Term {
		params := []string{"a", "b", "c"}[:size]
		return ir.NewLambda(params, ir.NewVar(params[i]))
	}

	tests := []struct {
		name string
		term ir.Term
		want string
	}{
		{"initial state", ir.NewApply(rangeOf(3), pick(0, 2)), "0"},
		{"has next", ir.NewApply(ir.NewApply(ir.NewApply(rangeOf(3), pick(1, 2)), ir.NewInt(2)), pick(0, 3)), "True"},
		{"exhausted", ir.NewApply(ir.NewApply(ir.NewApply(rangeOf(3), pick(1, 2)), ir.NewInt(3)), pick(0, 3)), "False"},
		{"current", ir.NewApply(ir.NewApply(ir.NewApply(rangeOf(3), pick(1, 2)), ir.NewInt(2)), pick(1, 3)), "2"},
		{"next state", ir.NewApply(ir.NewApply(ir.NewApply(rangeOf(3), pick(1, 2)), ir.NewInt(2)), pick(2, 3)), "3"},
		{"empty range", ir.NewApply(ir.NewApply(ir.NewApply(rangeOf(0), pick(1, 2)), ir.NewInt(0)), pick(0, 3)), "False"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := machine.New(machine.DefaultConfig()).Eval(tt.term)
			if err != nil {
				t.Fatalf("Eval failed: %v\n%s", err, ir.Dumps(tt.term))
			}
			if got := machine.Render(v); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
