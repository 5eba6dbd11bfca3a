package ir_test

import (
	"testing"

	"github.com/lhaig/pyscc/internal/ast"
	"github.com/lhaig/pyscc/internal/ir"
	"github.com/lhaig/pyscc/internal/machine"
	"github.com/lhaig/pyscc/internal/types"
)

func intLit(v int) *ast.Constant {
	return &ast.Constant{Value: v, Typ: types.Integer}
}

func textLit(v string) *ast.Constant {
	return &ast.Constant{Value: v, Typ: types.Text}
}

func bytesLit(v string) *ast.Constant {
	return &ast.Constant{Value: []byte(v), Typ: types.ByteString}
}

func boolLit(v bool) *ast.Constant {
	return &ast.Constant{Value: v, Typ: types.Bool}
}

func load(id string, typ *types.Type) *ast.Name {
	return &ast.Name{ID: id, Ctx: ast.Load, Typ: typ}
}

func store(id string, typ *types.Type) *ast.Name {
	return &ast.Name{ID: id, Ctx: ast.Store, Typ: typ}
}

func assign(id string, value ast.Expression) *ast.Assign {
	return &ast.Assign{Targets: []ast.Expression{store(id, value.Type())}, Value: value}
}

func binop(left ast.Expression, op ast.Operator, right ast.Expression, typ *types.Type) *ast.BinOp {
	return &ast.BinOp{Left: left, Op: op, Right: right, Typ: typ}
}

func compare(left ast.Expression, op ast.CmpOp, right ast.Expression) *ast.Compare {
	return &ast.Compare{Left: left, Ops: []ast.CmpOp{op}, Comparators: []ast.Expression{right}, Typ: types.Bool}
}

func call(fn ast.Expression, typ *types.Type, args ...ast.Expression) *ast.Call {
	return &ast.Call{Func: fn, Args: args, Typ: typ}
}

func printStmt(e ast.Expression) *ast.ExprStmt {
	fnType := types.Function([]*types.Type{e.Type()}, e.Type())
	return &ast.ExprStmt{Value: call(load("print", fnType), e.Type(), e)}
}

func module(stmts ...ast.Statement) *ast.Module {
	return &ast.Module{Body: stmts}
}

// runModule lowers mod, evaluates it and returns the final environment
// together with the machine that produced it.
func runModule(t *testing.T, mod *ast.Module) (machine.Value, *machine.Machine) {
	t.Helper()
	prog, err := ir.Lower(mod)
	if err != nil {
		t.Fatalf("Lower failed: %v", err)
	}
	if errs := ir.Validate(prog); len(errs) > 0 {
		t.Fatalf("lowered program is invalid: %v", errs)
	}
	m := machine.New(machine.DefaultConfig())
	env, err := m.Run(prog)
	if err != nil {
		t.Fatalf("Run failed: %v\n%s", err, prog)
	}
	return env, m
}

// evalExpr lowers e and evaluates it against the bootstrap environment.
func evalExpr(t *testing.T, e ast.Expression) machine.Value {
	t.Helper()
	term, err := ir.LowerExpr(e)
	if err != nil {
		t.Fatalf("LowerExpr failed: %v", err)
	}
	v, err := machine.New(machine.DefaultConfig()).Eval(ir.NewApply(term, ir.BootstrapEnv()))
	if err != nil {
		t.Fatalf("Eval failed: %v\n%s", err, ir.Dumps(term))
	}
	return v
}

func lookupInt(t *testing.T, m *machine.Machine, env machine.Value, name string) int64 {
	t.Helper()
	v, err := m.Lookup(env, name)
	if err != nil {
		t.Fatalf("lookup %s failed: %v", name, err)
	}
	i, ok := v.(*machine.Integer)
	if !ok {
		t.Fatalf("%s is %s, not an integer", name, machine.Render(v))
	}
	return i.V.Int64()
}

func wantLowerError(t *testing.T, err error, kind ir.ErrorKind) *ir.LowerError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	le, ok := ir.AsLowerError(err)
	if !ok {
		t.Fatalf("expected LowerError, got %T: %v", err, err)
	}
	if le.Kind != kind {
		t.Fatalf("expected %s error, got %s: %s", kind, le.Kind, le.Msg)
	}
	return le
}
