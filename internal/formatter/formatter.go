package formatter

import (
	"fmt"
	"strings"

	"github.com/lhaig/pyscc/internal/ast"
	"github.com/lhaig/pyscc/internal/types"
)

// Format takes a module and returns it as Python source. Type annotations
// are kept only on function parameters.
func Format(mod *ast.Module) string {
	f := &formatter{}
	if mod != nil {
		f.formatBlock(mod.Body)
	}
	return f.sb.String()
}

type formatter struct {
	sb     strings.Builder
	indent int
}

// --- helpers ---

func (f *formatter) emitLine(s string) {
	f.sb.WriteString(f.indentStr())
	f.sb.WriteString(s)
	f.sb.WriteString("\n")
}

func (f *formatter) emitLinef(format string, args ...any) {
	f.emitLine(fmt.Sprintf(format, args...))
}

func (f *formatter) incIndent() { f.indent++ }
func (f *formatter) decIndent() { f.indent-- }

func (f *formatter) indentStr() string {
	return strings.Repeat("    ", f.indent)
}

// --- statements ---

// formatSuite emits an indented block; an empty one becomes pass.
func (f *formatter) formatSuite(stmts []ast.Statement) {
	f.incIndent()
	if len(stmts) == 0 {
		f.emitLine("pass")
	}
	f.formatBlock(stmts)
	f.decIndent()
}

func (f *formatter) formatBlock(stmts []ast.Statement) {
	for _, stmt := range stmts {
		f.formatStmt(stmt)
	}
}

func (f *formatter) formatStmt(s ast.Statement) {
	switch stmt := s.(type) {
	case *ast.FunctionDef:
		params := make([]string, len(stmt.Params))
		for i, p := range stmt.Params {
			params[i] = p.Name
			if p.Typ != nil {
				params[i] += ": " + typeName(p.Typ)
			}
		}
		f.emitLinef("def %s(%s):", stmt.Name, strings.Join(params, ", "))
		f.formatSuite(stmt.Body)

	case *ast.Assign:
		targets := make([]string, len(stmt.Targets))
		for i, t := range stmt.Targets {
			targets[i] = f.formatExpr(t) + " = "
		}
		f.emitLine(strings.Join(targets, "") + f.formatExpr(stmt.Value))

	case *ast.ExprStmt:
		f.emitLine(f.formatExpr(stmt.Value))

	case *ast.Return:
		if stmt.Value != nil {
			f.emitLinef("return %s", f.formatExpr(stmt.Value))
		} else {
			f.emitLine("return")
		}

	case *ast.Pass:
		f.emitLine("pass")

	case *ast.While:
		f.emitLinef("while %s:", f.formatExpr(stmt.Test))
		f.formatSuite(stmt.Body)
		f.formatElse(stmt.Orelse)

	case *ast.For:
		f.emitLinef("for %s in %s:", f.formatExpr(stmt.Target), f.formatExpr(stmt.Iter))
		f.formatSuite(stmt.Body)
		f.formatElse(stmt.Orelse)

	case *ast.If:
		f.emitLinef("if %s:", f.formatExpr(stmt.Test))
		f.formatSuite(stmt.Body)
		f.formatElse(stmt.Orelse)

	case nil:
		f.emitLine("<nil>")

	default:
		f.emitLine("<" + s.Kind() + ">")
	}
}

func (f *formatter) formatElse(orelse []ast.Statement) {
	if len(orelse) == 0 {
		return
	}
	f.emitLine("else:")
	f.formatSuite(orelse)
}

// --- expressions ---

func (f *formatter) formatExpr(e ast.Expression) string {
	return f.formatExprPrec(e, 0)
}

// formatExprPrec formats an expression, wrapping in parens if needed based on parent precedence.
func (f *formatter) formatExprPrec(e ast.Expression, parentPrec int) string {
	switch expr := e.(type) {
	case *ast.BinOp:
		prec := precedence(expr.Op)
		leftPrec, rightPrec := prec, prec+1 // +1 for left-associativity
		if expr.Op == ast.Pow {
			leftPrec, rightPrec = prec+1, prec
		}
		left := f.formatExprPrec(expr.Left, leftPrec)
		right := f.formatExprPrec(expr.Right, rightPrec)
		return wrap(fmt.Sprintf("%s %s %s", left, operatorString(expr.Op), right), prec, parentPrec)

	case *ast.Compare:
		parts := []string{f.formatExprPrec(expr.Left, precCompare+1)}
		for i, op := range expr.Ops {
			var right string
			if i < len(expr.Comparators) {
				right = f.formatExprPrec(expr.Comparators[i], precCompare+1)
			}
			parts = append(parts, cmpString(op), right)
		}
		return wrap(strings.Join(parts, " "), precCompare, parentPrec)

	case *ast.BoolOp:
		prec, op := precAnd, "and"
		if expr.Op == ast.Or {
			prec, op = precOr, "or"
		}
		values := make([]string, len(expr.Values))
		for i, v := range expr.Values {
			values[i] = f.formatExprPrec(v, prec+1)
		}
		return wrap(strings.Join(values, " "+op+" "), prec, parentPrec)

	case *ast.UnaryOp:
		if expr.Op == ast.Not {
			return wrap("not "+f.formatExprPrec(expr.Operand, precNot), precNot, parentPrec)
		}
		return wrap("-"+f.formatExprPrec(expr.Operand, precUnary), precUnary, parentPrec)

	case *ast.IfExp:
		s := fmt.Sprintf("%s if %s else %s",
			f.formatExprPrec(expr.Body, precIfExp+1),
			f.formatExprPrec(expr.Test, precIfExp+1),
			f.formatExprPrec(expr.Orelse, precIfExp))
		return wrap(s, precIfExp, parentPrec)

	case *ast.Call:
		args := make([]string, len(expr.Args))
		for i, arg := range expr.Args {
			args[i] = f.formatExpr(arg)
		}
		return fmt.Sprintf("%s(%s)", f.formatExprPrec(expr.Func, precAtom), strings.Join(args, ", "))

	case *ast.Subscript:
		return fmt.Sprintf("%s[%s]", f.formatExprPrec(expr.Value, precAtom), f.formatSlice(expr.Slice))

	case *ast.Tuple:
		elems := make([]string, len(expr.Elts))
		for i, el := range expr.Elts {
			elems[i] = f.formatExpr(el)
		}
		if len(elems) == 1 {
			return "(" + elems[0] + ",)"
		}
		return "(" + strings.Join(elems, ", ") + ")"

	case *ast.Name:
		return expr.ID

	case *ast.Constant:
		return ast.FormatConstant(expr.Value)

	case nil:
		return "<nil>"

	default:
		return "<" + e.Kind() + ">"
	}
}

func (f *formatter) formatSlice(s ast.SliceExpr) string {
	switch sl := s.(type) {
	case *ast.Index:
		return f.formatExpr(sl.Value)
	case *ast.Slice:
		part := func(e ast.Expression) string {
			if e == nil {
				return ""
			}
			return f.formatExpr(e)
		}
		out := part(sl.Lower) + ":" + part(sl.Upper)
		if sl.Step != nil {
			out += ":" + part(sl.Step)
		}
		return out
	default:
		return "<nil>"
	}
}

func wrap(s string, prec, parentPrec int) string {
	if prec < parentPrec {
		return "(" + s + ")"
	}
	return s
}

// Python precedence levels, loosest first.
const (
	precIfExp = iota + 1
	precOr
	precAnd
	precNot
	precCompare
	precAdd
	precMul
	precUnary
	precPow
	precAtom
)

func precedence(op ast.Operator) int {
	switch op {
	case ast.Add, ast.Sub:
		return precAdd
	case ast.Mult, ast.Div, ast.FloorDiv, ast.Mod:
		return precMul
	case ast.Pow:
		return precPow
	default:
		return 0
	}
}

func operatorString(op ast.Operator) string {
	switch op {
	case ast.Add:
		return "+"
	case ast.Sub:
		return "-"
	case ast.Mult:
		return "*"
	case ast.Div:
		return "/"
	case ast.FloorDiv:
		return "//"
	case ast.Mod:
		return "%"
	case ast.Pow:
		return "**"
	default:
		return "?"
	}
}

func cmpString(op ast.CmpOp) string {
	switch op {
	case ast.Eq:
		return "=="
	case ast.NotEq:
		return "!="
	case ast.Lt:
		return "<"
	case ast.LtE:
		return "<="
	case ast.Gt:
		return ">"
	case ast.GtE:
		return ">="
	default:
		return "?"
	}
}

// typeName renders an inferred type as a Python annotation.
func typeName(t *types.Type) string {
	switch t.Kind {
	case types.KindInteger:
		return "int"
	case types.KindByteString:
		return "bytes"
	case types.KindText:
		return "str"
	case types.KindBool:
		return "bool"
	case types.KindUnit:
		return "None"
	case types.KindTuple:
		return "tuple[" + typeNames(t.Elems) + "]"
	case types.KindList:
		return "list[" + typeNames(t.Elems) + "]"
	case types.KindFunction:
		ret := "None"
		if t.Ret != nil {
			ret = typeName(t.Ret)
		}
		return "Callable[[" + typeNames(t.Params) + "], " + ret + "]"
	default:
		return t.String()
	}
}

func typeNames(ts []*types.Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = typeName(t)
	}
	return strings.Join(names, ", ")
}
