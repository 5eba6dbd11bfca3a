package linter

import (
	"strings"
	"unicode"

	"github.com/lhaig/pyscc/internal/ast"
	"github.com/lhaig/pyscc/internal/diagnostic"
)

// reservedPrefix marks names the desugaring passes synthesize.
const reservedPrefix = "__"

// Linter performs style and best-practice checks on a module.
// It reports warnings (never errors) using the diagnostic system.
type Linter struct {
	mod  *ast.Module
	diag *diagnostic.Diagnostics
}

// Lint runs all lint rules on the given module and returns diagnostics.
// It expects the tree as written, before desugaring.
func Lint(mod *ast.Module) *diagnostic.Diagnostics {
	l := &Linter{
		mod:  mod,
		diag: diagnostic.New(),
	}
	if mod == nil {
		return l.diag
	}

	l.lintBlock(mod.Body)
	return l.diag
}

// lintBlock applies the statement rules to stmts and every nested block.
func (l *Linter) lintBlock(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			l.lintFunction(s)
		case *ast.Assign:
			for _, t := range s.Targets {
				l.checkReservedTarget(t)
			}
		case *ast.ExprStmt:
			l.checkDiscardedExpression(s)
		case *ast.While:
			l.lintBlock(s.Body)
			l.lintBlock(s.Orelse)
		case *ast.For:
			l.checkReservedTarget(s.Target)
			l.lintBlock(s.Body)
			l.lintBlock(s.Orelse)
		case *ast.If:
			l.lintBlock(s.Body)
			l.lintBlock(s.Orelse)
		}
	}
}

func (l *Linter) lintFunction(fn *ast.FunctionDef) {
	l.checkEmptyFunctionBody(fn)
	l.checkFunctionNaming(fn.Name, fn.Line, fn.Column)
	l.checkReservedName(fn.Name, fn.Line, fn.Column)
	for _, p := range fn.Params {
		l.checkReservedName(p.Name, p.Line, p.Column)
	}

	usedNames := l.collectUsedNames(fn.Body)
	l.checkUnusedParams(fn.Name, fn.Params, usedNames)
	l.checkUnusedVariables(fn.Body, usedNames)
	l.lintBlock(fn.Body)
}

// --- Lint rules ---

// checkEmptyFunctionBody warns if a function body does nothing.
func (l *Linter) checkEmptyFunctionBody(fn *ast.FunctionDef) {
	for _, s := range fn.Body {
		if _, ok := s.(*ast.Pass); !ok {
			return
		}
	}
	l.diag.Warningf(fn.Line, fn.Column, "function '%s' has an empty body", fn.Name)
}

// checkFunctionNaming warns if a function name is not snake_case.
func (l *Linter) checkFunctionNaming(name string, line, col int) {
	if !isSnakeCase(name) {
		l.diag.Warningf(line, col,
			"function '%s' should use snake_case naming", name)
	}
}

// checkReservedName warns about user names that may collide with
// compiler temporaries.
func (l *Linter) checkReservedName(name string, line, col int) {
	if strings.HasPrefix(name, reservedPrefix) {
		l.diag.Warningf(line, col,
			"name '%s' uses the reserved prefix '%s'", name, reservedPrefix)
	}
}

func (l *Linter) checkReservedTarget(target ast.Expression) {
	switch t := target.(type) {
	case *ast.Name:
		l.checkReservedName(t.ID, t.Line, t.Column)
	case *ast.Tuple:
		for _, e := range t.Elts {
			l.checkReservedTarget(e)
		}
	}
}

// checkDiscardedExpression warns about expression statements whose value
// is computed and thrown away. Calls are exempt since print is called
// for its trace.
func (l *Linter) checkDiscardedExpression(stmt *ast.ExprStmt) {
	if stmt.Value == nil {
		return
	}
	if _, ok := stmt.Value.(*ast.Call); !ok {
		l.diag.Warningf(stmt.Line, stmt.Column, "expression result is discarded")
	}
}

// checkUnusedParams warns about function parameters that are never read in the body.
func (l *Linter) checkUnusedParams(scopeName string, params []*ast.Arg, usedNames map[string]bool) {
	for _, p := range params {
		if !usedNames[p.Name] {
			l.diag.Warningf(p.Line, p.Column,
				"parameter '%s' in '%s' is never used", p.Name, scopeName)
		}
	}
}

// checkUnusedVariables warns about local names that are assigned but never
// read. Function locals are dropped when the call returns, so such an
// assignment has no effect.
func (l *Linter) checkUnusedVariables(stmts []ast.Statement, usedNames map[string]bool) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.Assign:
			for _, t := range s.Targets {
				if name, ok := t.(*ast.Name); ok && !usedNames[name.ID] {
					l.diag.Warningf(s.Line, s.Column,
						"variable '%s' is assigned but never used", name.ID)
				}
			}
		case *ast.While:
			l.checkUnusedVariables(s.Body, usedNames)
			l.checkUnusedVariables(s.Orelse, usedNames)
		case *ast.For:
			l.checkUnusedVariables(s.Body, usedNames)
			l.checkUnusedVariables(s.Orelse, usedNames)
		case *ast.If:
			l.checkUnusedVariables(s.Body, usedNames)
			l.checkUnusedVariables(s.Orelse, usedNames)
		}
	}
}

// --- Name collection helpers ---

// collectUsedNames walks all expressions in a slice of statements and collects
// all identifier names that are read (referenced).
func (l *Linter) collectUsedNames(stmts []ast.Statement) map[string]bool {
	used := make(map[string]bool)
	for _, stmt := range stmts {
		l.collectUsedNamesFromStmt(stmt, used)
	}
	return used
}

func (l *Linter) collectUsedNamesFromStmt(stmt ast.Statement, used map[string]bool) {
	switch s := stmt.(type) {
	case *ast.Assign:
		// targets are writes, only the value reads names
		l.collectUsedNamesFromExpr(s.Value, used)
	case *ast.ExprStmt:
		l.collectUsedNamesFromExpr(s.Value, used)
	case *ast.Return:
		l.collectUsedNamesFromExpr(s.Value, used)
	case *ast.While:
		l.collectUsedNamesFromExpr(s.Test, used)
		l.collectUsedNamesFromStmts(s.Body, used)
		l.collectUsedNamesFromStmts(s.Orelse, used)
	case *ast.For:
		l.collectUsedNamesFromExpr(s.Iter, used)
		l.collectUsedNamesFromStmts(s.Body, used)
		l.collectUsedNamesFromStmts(s.Orelse, used)
	case *ast.If:
		l.collectUsedNamesFromExpr(s.Test, used)
		l.collectUsedNamesFromStmts(s.Body, used)
		l.collectUsedNamesFromStmts(s.Orelse, used)
	case *ast.FunctionDef:
		// a nested definition captures the enclosing environment
		l.collectUsedNamesFromStmts(s.Body, used)
	}
}

func (l *Linter) collectUsedNamesFromStmts(stmts []ast.Statement, used map[string]bool) {
	for _, s := range stmts {
		l.collectUsedNamesFromStmt(s, used)
	}
}

func (l *Linter) collectUsedNamesFromExpr(expr ast.Expression, used map[string]bool) {
	switch e := expr.(type) {
	case *ast.Name:
		if e.Ctx == ast.Load {
			used[e.ID] = true
		}
	case *ast.BinOp:
		l.collectUsedNamesFromExpr(e.Left, used)
		l.collectUsedNamesFromExpr(e.Right, used)
	case *ast.Compare:
		l.collectUsedNamesFromExpr(e.Left, used)
		for _, c := range e.Comparators {
			l.collectUsedNamesFromExpr(c, used)
		}
	case *ast.BoolOp:
		for _, v := range e.Values {
			l.collectUsedNamesFromExpr(v, used)
		}
	case *ast.UnaryOp:
		l.collectUsedNamesFromExpr(e.Operand, used)
	case *ast.IfExp:
		l.collectUsedNamesFromExpr(e.Test, used)
		l.collectUsedNamesFromExpr(e.Body, used)
		l.collectUsedNamesFromExpr(e.Orelse, used)
	case *ast.Call:
		l.collectUsedNamesFromExpr(e.Func, used)
		for _, a := range e.Args {
			l.collectUsedNamesFromExpr(a, used)
		}
	case *ast.Subscript:
		l.collectUsedNamesFromExpr(e.Value, used)
		if idx, ok := e.Slice.(*ast.Index); ok {
			l.collectUsedNamesFromExpr(idx.Value, used)
		}
	case *ast.Tuple:
		for _, el := range e.Elts {
			l.collectUsedNamesFromExpr(el, used)
		}
	}
}

// --- Naming convention helpers ---

// isSnakeCase returns true if the name follows snake_case conventions:
// lowercase letters, digits, and underscores only, not starting with a digit.
func isSnakeCase(name string) bool {
	if len(name) == 0 {
		return false
	}
	for i, r := range name {
		if i == 0 && unicode.IsDigit(r) {
			return false
		}
		if !unicode.IsLower(r) && r != '_' && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
