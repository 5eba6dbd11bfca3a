package machine

import (
	"bytes"
	"math/big"
	"unicode/utf8"

	"github.com/lhaig/pyscc/internal/ir"
	"github.com/pkg/errors"
)

func (m *Machine) callBuiltin(fun ir.BuiltinFun, args []Value) (Value, error) {
	switch fun {
	case ir.AddInteger, ir.SubtractInteger, ir.MultiplyInteger,
		ir.DivideInteger, ir.QuotientInteger, ir.RemainderInteger, ir.ModInteger:
		a, b, err := integers(fun, args)
		if err != nil {
			return nil, err
		}
		r, err := arith(fun, a, b)
		if err != nil {
			return nil, err
		}
		return &Integer{V: r}, nil

	case ir.EqualsInteger, ir.LessThanInteger, ir.LessThanEqualsInteger:
		a, b, err := integers(fun, args)
		if err != nil {
			return nil, err
		}
		c := a.Cmp(b)
		switch fun {
		case ir.EqualsInteger:
			return &Bool{V: c == 0}, nil
		case ir.LessThanInteger:
			return &Bool{V: c < 0}, nil
		default:
			return &Bool{V: c <= 0}, nil
		}

	case ir.AppendByteString, ir.EqualsByteString, ir.LessThanByteString:
		a, okA := args[0].(*ByteString)
		b, okB := args[1].(*ByteString)
		if !okA || !okB {
			return nil, typeMismatch(fun, args)
		}
		switch fun {
		case ir.AppendByteString:
			out := make([]byte, 0, len(a.V)+len(b.V))
			return &ByteString{V: append(append(out, a.V...), b.V...)}, nil
		case ir.EqualsByteString:
			return &Bool{V: bytes.Equal(a.V, b.V)}, nil
		default:
			return &Bool{V: bytes.Compare(a.V, b.V) < 0}, nil
		}

	case ir.AppendString, ir.EqualsString:
		a, okA := args[0].(*Text)
		b, okB := args[1].(*Text)
		if !okA || !okB {
			return nil, typeMismatch(fun, args)
		}
		if fun == ir.AppendString {
			return &Text{V: a.V + b.V}, nil
		}
		return &Bool{V: a.V == b.V}, nil

	case ir.EncodeUtf8:
		s, ok := args[0].(*Text)
		if !ok {
			return nil, typeMismatch(fun, args)
		}
		return &ByteString{V: []byte(s.V)}, nil

	case ir.DecodeUtf8:
		b, ok := args[0].(*ByteString)
		if !ok || !utf8.Valid(b.V) {
			return nil, typeMismatch(fun, args)
		}
		return &Text{V: string(b.V)}, nil

	case ir.Trace:
		m.traces = append(m.traces, Render(args[0]))
		return args[1], nil

	default:
		return nil, errors.Wrapf(ErrEvaluationFailure, "unknown builtin %s", fun)
	}
}

func integers(fun ir.BuiltinFun, args []Value) (*big.Int, *big.Int, error) {
	a, okA := args[0].(*Integer)
	b, okB := args[1].(*Integer)
	if !okA || !okB {
		return nil, nil, typeMismatch(fun, args)
	}
	return a.V, b.V, nil
}

// arith implements the integer builtins. divideInteger and modInteger
// round toward negative infinity, quotientInteger and remainderInteger
// toward zero.
func arith(fun ir.BuiltinFun, a, b *big.Int) (*big.Int, error) {
	r := new(big.Int)
	switch fun {
	case ir.AddInteger:
		return r.Add(a, b), nil
	case ir.SubtractInteger:
		return r.Sub(a, b), nil
	case ir.MultiplyInteger:
		return r.Mul(a, b), nil
	}

	if b.Sign() == 0 {
		return nil, errors.Wrapf(ErrEvaluationFailure, "%s by zero", fun)
	}
	q, rem := new(big.Int).QuoRem(a, b, new(big.Int))
	// floor adjustment when the remainder and divisor differ in sign
	floorFix := rem.Sign() != 0 && rem.Sign() != b.Sign()
	switch fun {
	case ir.QuotientInteger:
		return q, nil
	case ir.RemainderInteger:
		return rem, nil
	case ir.DivideInteger:
		if floorFix {
			q.Sub(q, big.NewInt(1))
		}
		return q, nil
	default:
		if floorFix {
			rem.Add(rem, b)
		}
		return rem, nil
	}
}

func typeMismatch(fun ir.BuiltinFun, args []Value) error {
	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = Render(a)
	}
	return errors.Wrapf(ErrEvaluationFailure, "%s applied to %v", fun, rendered)
}
