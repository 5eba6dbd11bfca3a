package ir

import (
	"fmt"

	"github.com/lhaig/pyscc/internal/ast"
	"github.com/pkg/errors"
)

// ErrorKind classifies a lowering failure.
type ErrorKind int

const (
	UnsupportedSyntax ErrorKind = iota
	UnresolvableOperator
	UnsupportedLiteral
	StructuralViolation
	MissingType
)

func (k ErrorKind) String() string {
	switch k {
	case UnsupportedSyntax:
		return "unsupported syntax"
	case UnresolvableOperator:
		return "unresolvable operator"
	case UnsupportedLiteral:
		return "unsupported literal"
	case StructuralViolation:
		return "structural violation"
	case MissingType:
		return "missing type annotation"
	default:
		return "unknown"
	}
}

// LowerError reports why a node could not be lowered. Lowering stops at
// the first one.
type LowerError struct {
	Kind   ErrorKind
	Node   string // kind of the offending node
	Line   int
	Column int
	Msg    string
}

func (e *LowerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newError(kind ErrorKind, node ast.Node, format string, args ...interface{}) error {
	e := &LowerError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
	if node != nil {
		e.Node = node.Kind()
		e.Line, e.Column = node.Pos()
	}
	return errors.WithStack(e)
}

// AsLowerError extracts the LowerError from a possibly wrapped error.
func AsLowerError(err error) (*LowerError, bool) {
	var le *LowerError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
