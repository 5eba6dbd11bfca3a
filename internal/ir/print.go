package ir

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// Dumps renders a term in a deterministic textual syntax:
//
//	(\s -> (s #78))
//	(let g = (\s f -> ...) in (g s g))
//	(if c then a else b)
//	(builtin addInteger)
func Dumps(t Term) string {
	var sb strings.Builder
	dump(&sb, t)
	return sb.String()
}

// String renders the program term.
func (p *Program) String() string {
	return Dumps(p.Term)
}

func dump(sb *strings.Builder, t Term) {
	switch n := t.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *Var:
		sb.WriteString(n.Name)
	case *Lambda:
		sb.WriteString(`(\`)
		sb.WriteString(strings.Join(n.Params, " "))
		sb.WriteString(" -> ")
		dump(sb, n.Body)
		sb.WriteString(")")
	case *Apply:
		sb.WriteString("(")
		dump(sb, n.Fn)
		for _, a := range n.Args {
			sb.WriteString(" ")
			dump(sb, a)
		}
		sb.WriteString(")")
	case *Let:
		sb.WriteString("(let ")
		for i, b := range n.Bindings {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(b.Name)
			sb.WriteString(" = ")
			dump(sb, b.Value)
		}
		sb.WriteString(" in ")
		dump(sb, n.Body)
		sb.WriteString(")")
	case *Ite:
		sb.WriteString("(if ")
		dump(sb, n.Cond)
		sb.WriteString(" then ")
		dump(sb, n.Then)
		sb.WriteString(" else ")
		dump(sb, n.Else)
		sb.WriteString(")")
	case *BuiltIn:
		sb.WriteString("(builtin ")
		sb.WriteString(n.Fun.String())
		sb.WriteString(")")
	case *Integer:
		sb.WriteString(n.Value.String())
	case *ByteString:
		sb.WriteString("#")
		sb.WriteString(hex.EncodeToString(n.Value))
	case *Text:
		sb.WriteString(strconv.Quote(n.Value))
	case *Bool:
		if n.Value {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case *Unit:
		sb.WriteString("()")
	case *Force:
		sb.WriteString("(force ")
		dump(sb, n.Term)
		sb.WriteString(")")
	case *Delay:
		sb.WriteString("(delay ")
		dump(sb, n.Term)
		sb.WriteString(")")
	case *Error:
		sb.WriteString("(error)")
	default:
		sb.WriteString("<unknown>")
	}
}
