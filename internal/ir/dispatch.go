package ir

import (
	"github.com/lhaig/pyscc/internal/ast"
	"github.com/lhaig/pyscc/internal/types"
)

// BinOpTable maps an arithmetic operator and its operand type to the
// builtin implementing it.
var BinOpTable = map[ast.Operator]map[types.Kind]BuiltinFun{
	ast.Add: {
		types.KindInteger:    AddInteger,
		types.KindByteString: AppendByteString,
		types.KindText:       AppendString,
	},
	ast.Sub: {
		types.KindInteger: SubtractInteger,
	},
	ast.Mult: {
		types.KindInteger: MultiplyInteger,
	},
	ast.Div: {
		types.KindInteger: DivideInteger,
	},
	ast.FloorDiv: {
		types.KindInteger: DivideInteger,
	},
	ast.Mod: {
		types.KindInteger: RemainderInteger,
	},
}

// CmpTable maps a comparison operator and the type of its left operand to
// the builtin implementing it.
var CmpTable = map[ast.CmpOp]map[types.Kind]BuiltinFun{
	ast.Eq: {
		types.KindInteger:    EqualsInteger,
		types.KindByteString: EqualsByteString,
		types.KindText:       EqualsString,
	},
	ast.Lt: {
		types.KindInteger:    LessThanInteger,
		types.KindByteString: LessThanByteString,
	},
	ast.LtE: {
		types.KindInteger: LessThanEqualsInteger,
	},
}

func resolveBinOp(node *ast.BinOp) (BuiltinFun, error) {
	opmap, ok := BinOpTable[node.Op]
	if !ok {
		return 0, newError(UnresolvableOperator, node, "operation %s is not implemented", node.Op)
	}
	if node.Typ == nil {
		return 0, newError(MissingType, node, "operation %s has no type annotation", node.Op)
	}
	fun, ok := opmap[node.Typ.Kind]
	if !ok {
		return 0, newError(UnresolvableOperator, node, "operation %s is not implemented for type %s", node.Op, node.Typ)
	}
	return fun, nil
}

func resolveCompare(node *ast.Compare, op ast.CmpOp) (BuiltinFun, error) {
	opmap, ok := CmpTable[op]
	if !ok {
		return 0, newError(UnresolvableOperator, node, "comparison %s is not implemented", op)
	}
	left := node.Left.Type()
	if left == nil {
		return 0, newError(MissingType, node.Left, "left operand of comparison %s has no type annotation", op)
	}
	fun, ok := opmap[left.Kind]
	if !ok {
		return 0, newError(UnresolvableOperator, node, "comparison %s is not implemented for type %s", op, left)
	}
	return fun, nil
}
