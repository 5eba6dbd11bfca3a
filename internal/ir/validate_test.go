package ir_test

import (
	"strings"
	"testing"

	"github.com/lhaig/pyscc/internal/ast"
	"github.com/lhaig/pyscc/internal/ir"
	"github.com/lhaig/pyscc/internal/types"
)

func TestValidateLoweredProgram(t *testing.T) {
	prog, err := ir.Lower(module(
		assign("x", intLit(1)),
		printStmt(binop(load("x", types.Integer), ast.Add, intLit(2), types.Integer)),
	))
	if err != nil {
		t.Fatal(err)
	}
	if errs := ir.Validate(prog); len(errs) != 0 {
		t.Errorf("expected no validation errors, got: %v", errs)
	}
}

func TestValidateReportsProblems(t *testing.T) {
	tests := []struct {
		name string
		prog *ir.Program
		want string
	}{
		{"nil program", nil, "program has nil term"},
		{"nil term", &ir.Program{}, "program has nil term"},
		{"free variables", &ir.Program{Term: ir.NewApply(ir.NewVar("b"), ir.NewVar("a"))}, "program has free variables: a, b"},
		{"lambda without params", &ir.Program{Term: ir.NewLambda(nil, &ir.Unit{})}, "lambda has no parameters"},
		{"empty param", &ir.Program{Term: ir.NewLambda([]string{""}, &ir.Unit{})}, "empty parameter name"},
		{"apply without args", &ir.Program{Term: ir.NewApply(ir.NewLambda([]string{"x"}, ir.NewVar("x")))}, "application has no arguments"},
		{"let without bindings", &ir.Program{Term: &ir.Let{Body: &ir.Unit{}}}, "let has no bindings"},
		{"nil integer", &ir.Program{Term: &ir.Integer{}}, "integer literal has nil value"},
		{"nested nil", &ir.Program{Term: ir.NewIte(&ir.Bool{Value: true}, nil, &ir.Unit{})}, "program > then: nil term"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ir.Validate(tt.prog)
			found := false
			for _, e := range errs {
				if strings.Contains(e, tt.want) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected error containing %q, got: %v", tt.want, errs)
			}
		})
	}
}

func TestFreeVars(t *testing.T) {
	tests := []struct {
		name string
		term ir.Term
		want []string
	}{
		{"closed lambda", ir.NewLambda([]string{"x"}, ir.NewVar("x")), nil},
		{"free in body", ir.NewLambda([]string{"x"}, ir.NewApply(ir.NewVar("x"), ir.NewVar("y"))), []string{"y"}},
		{
			"let is sequential",
			&ir.Let{
				Bindings: []ir.Binding{{Name: "a", Value: ir.NewVar("b")}, {Name: "b", Value: ir.NewVar("a")}},
				Body:     ir.NewVar("b"),
			},
			[]string{"b"},
		},
		{"under delay", &ir.Delay{Term: &ir.Force{Term: ir.NewVar("z")}}, []string{"z"}},
		{"bootstrap", ir.BootstrapEnv(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			free := ir.FreeVars(tt.term)
			if free.Size() != len(tt.want) {
				t.Fatalf("expected free vars %v, got %v", tt.want, free.Slice())
			}
			for _, name := range tt.want {
				if !free.Contains(name) {
					t.Errorf("expected %s to be free, got %v", name, free.Slice())
				}
			}
		})
	}
}

func TestProgramHash(t *testing.T) {
	a := &ir.Program{Term: ir.NewLambda([]string{"x"}, ir.NewVar("x"))}
	b := &ir.Program{Term: ir.NewLambda([]string{"x"}, ir.NewVar("x"))}
	c := &ir.Program{Term: ir.NewLambda([]string{"y"}, ir.NewVar("y"))}

	if got := a.Hash(); len(got) != 2*ir.ScriptHashSize {
		t.Errorf("hash %q has %d hex digits, want %d", got, len(got), 2*ir.ScriptHashSize)
	}
	if a.Hash() != b.Hash() {
		t.Errorf("equal programs hash differently")
	}
	if a.Hash() == c.Hash() {
		t.Errorf("different programs share hash %s", a.Hash())
	}
}

func TestDumps(t *testing.T) {
	tests := []struct {
		term ir.Term
		want string
	}{
		{nil, "<nil>"},
		{&ir.Error{}, "(error)"},
		{&ir.Unit{}, "()"},
		{&ir.Bool{Value: false}, "False"},
		{&ir.Text{Value: "a\"b"}, `"a\"b"`},
		{ir.NewByteString(""), "#"},
		{&ir.Delay{Term: ir.NewInt(-1)}, "(delay -1)"},
		{&ir.Force{Term: ir.NewBuiltIn(ir.Trace)}, "(force (builtin trace))"},
		{
			&ir.Let{
				Bindings: []ir.Binding{{Name: "g", Value: ir.NewInt(1)}, {Name: "h", Value: ir.NewInt(2)}},
				Body:     ir.NewVar("g"),
			},
			"(let g = 1; h = 2 in g)",
		},
		{ir.NewLambda([]string{"a", "b"}, ir.NewApply(ir.NewVar("a"), ir.NewVar("b"))), `(\a b -> (a b))`},
	}

	for _, tt := range tests {
		if got := ir.Dumps(tt.term); got != tt.want {
			t.Errorf("Dumps = %s, want %s", got, tt.want)
		}
	}
}

func TestBuiltinMetadata(t *testing.T) {
	for _, b := range ir.Builtins() {
		if b.String() == "unknown" {
			t.Errorf("builtin %d has no name", b)
		}
		if b.Arity() < 1 {
			t.Errorf("builtin %s has arity %d", b, b.Arity())
		}
	}
	if ir.Trace.Forces() != 1 || ir.AddInteger.Forces() != 0 {
		t.Errorf("unexpected force counts")
	}
}
