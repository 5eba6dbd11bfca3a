package ast

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/kr/pretty"
)

// Print returns a tree-like string representation of the syntax tree for
// debugging. Expressions are suffixed with their type annotation.
func Print(node Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, node Node, indent int) {
	if node == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *Module:
		sb.WriteString(prefix + "Module\n")
		printBlock(sb, "", n.Body, indent+1)

	case *FunctionDef:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Name + ": " + p.Typ.String()
		}
		sb.WriteString(fmt.Sprintf("%sFunctionDef: %s(%s)\n", prefix, n.Name, strings.Join(params, ", ")))
		printBlock(sb, "Body", n.Body, indent+1)

	case *Assign:
		sb.WriteString(prefix + "Assign\n")
		sb.WriteString(prefix + "  Targets:\n")
		for _, t := range n.Targets {
			printNode(sb, t, indent+2)
		}
		sb.WriteString(prefix + "  Value:\n")
		printNode(sb, n.Value, indent+2)

	case *ExprStmt:
		sb.WriteString(prefix + "Expr\n")
		printNode(sb, n.Value, indent+1)

	case *Return:
		sb.WriteString(prefix + "Return\n")
		printNode(sb, n.Value, indent+1)

	case *Pass:
		sb.WriteString(prefix + "Pass\n")

	case *While:
		sb.WriteString(prefix + "While\n")
		sb.WriteString(prefix + "  Test:\n")
		printNode(sb, n.Test, indent+2)
		printBlock(sb, "Body", n.Body, indent+1)
		printBlock(sb, "Else", n.Orelse, indent+1)

	case *For:
		sb.WriteString(prefix + "For\n")
		sb.WriteString(prefix + "  Target:\n")
		printNode(sb, n.Target, indent+2)
		sb.WriteString(prefix + "  Iter:\n")
		printNode(sb, n.Iter, indent+2)
		printBlock(sb, "Body", n.Body, indent+1)
		printBlock(sb, "Else", n.Orelse, indent+1)

	case *If:
		sb.WriteString(prefix + "If\n")
		sb.WriteString(prefix + "  Test:\n")
		printNode(sb, n.Test, indent+2)
		printBlock(sb, "Body", n.Body, indent+1)
		printBlock(sb, "Else", n.Orelse, indent+1)

	case *BinOp:
		sb.WriteString(fmt.Sprintf("%sBinOp: %s%s\n", prefix, n.Op, typeSuffix(n)))
		printNode(sb, n.Left, indent+1)
		printNode(sb, n.Right, indent+1)

	case *Compare:
		ops := make([]string, len(n.Ops))
		for i, op := range n.Ops {
			ops[i] = op.String()
		}
		sb.WriteString(fmt.Sprintf("%sCompare: %s%s\n", prefix, strings.Join(ops, " "), typeSuffix(n)))
		printNode(sb, n.Left, indent+1)
		for _, c := range n.Comparators {
			printNode(sb, c, indent+1)
		}

	case *BoolOp:
		sb.WriteString(fmt.Sprintf("%sBoolOp: %s%s\n", prefix, n.Op, typeSuffix(n)))
		for _, v := range n.Values {
			printNode(sb, v, indent+1)
		}

	case *UnaryOp:
		sb.WriteString(fmt.Sprintf("%sUnaryOp: %s%s\n", prefix, n.Op, typeSuffix(n)))
		printNode(sb, n.Operand, indent+1)

	case *IfExp:
		sb.WriteString(fmt.Sprintf("%sIfExp%s\n", prefix, typeSuffix(n)))
		printNode(sb, n.Test, indent+1)
		printNode(sb, n.Body, indent+1)
		printNode(sb, n.Orelse, indent+1)

	case *Call:
		sb.WriteString(fmt.Sprintf("%sCall%s\n", prefix, typeSuffix(n)))
		printNode(sb, n.Func, indent+1)
		for _, a := range n.Args {
			printNode(sb, a, indent+1)
		}

	case *Name:
		ctx := ""
		if n.Ctx == Store {
			ctx = " (store)"
		}
		sb.WriteString(fmt.Sprintf("%sName: %s%s%s\n", prefix, n.ID, ctx, typeSuffix(n)))

	case *Constant:
		sb.WriteString(fmt.Sprintf("%sConstant: %s%s\n", prefix, FormatConstant(n.Value), typeSuffix(n)))

	case *Subscript:
		sb.WriteString(fmt.Sprintf("%sSubscript%s\n", prefix, typeSuffix(n)))
		printNode(sb, n.Value, indent+1)
		printNode(sb, n.Slice, indent+1)

	case *Tuple:
		sb.WriteString(fmt.Sprintf("%sTuple%s\n", prefix, typeSuffix(n)))
		for _, e := range n.Elts {
			printNode(sb, e, indent+1)
		}

	case *Index:
		sb.WriteString(prefix + "Index\n")
		printNode(sb, n.Value, indent+1)

	case *Slice:
		sb.WriteString(prefix + "Slice\n")
		printNode(sb, n.Lower, indent+1)
		printNode(sb, n.Upper, indent+1)
		printNode(sb, n.Step, indent+1)

	default:
		sb.WriteString(fmt.Sprintf("%s%s\n", prefix, node.Kind()))
	}
}

func printBlock(sb *strings.Builder, label string, stmts []Statement, indent int) {
	if len(stmts) == 0 {
		return
	}
	if label != "" {
		sb.WriteString(strings.Repeat("  ", indent) + label + ":\n")
		indent++
	}
	for _, s := range stmts {
		printNode(sb, s, indent)
	}
}

func typeSuffix(e Expression) string {
	if e.Type() == nil {
		return ""
	}
	return " : " + e.Type().String()
}

// FormatConstant renders a constant value the way it would be written in
// source.
func FormatConstant(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case bool:
		if val {
			return "True"
		}
		return "False"
	case string:
		return strconv.Quote(val)
	case []byte:
		return "b" + strconv.Quote(string(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case *big.Int:
		return val.String()
	default:
		return pretty.Sprint(val)
	}
}
