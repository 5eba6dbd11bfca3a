package ir

// BuiltinFun identifies a primitive of the target machine.
type BuiltinFun int

const (
	AddInteger BuiltinFun = iota
	SubtractInteger
	MultiplyInteger
	DivideInteger
	QuotientInteger
	RemainderInteger
	ModInteger
	EqualsInteger
	LessThanInteger
	LessThanEqualsInteger
	AppendByteString
	EqualsByteString
	LessThanByteString
	AppendString
	EqualsString
	EncodeUtf8
	DecodeUtf8
	Trace
)

type builtinInfo struct {
	name   string
	arity  int
	forces int // type instantiations expected before application
}

var builtinTable = map[BuiltinFun]builtinInfo{
	AddInteger:            {"addInteger", 2, 0},
	SubtractInteger:       {"subtractInteger", 2, 0},
	MultiplyInteger:       {"multiplyInteger", 2, 0},
	DivideInteger:         {"divideInteger", 2, 0},
	QuotientInteger:       {"quotientInteger", 2, 0},
	RemainderInteger:      {"remainderInteger", 2, 0},
	ModInteger:            {"modInteger", 2, 0},
	EqualsInteger:         {"equalsInteger", 2, 0},
	LessThanInteger:       {"lessThanInteger", 2, 0},
	LessThanEqualsInteger: {"lessThanEqualsInteger", 2, 0},
	AppendByteString:      {"appendByteString", 2, 0},
	EqualsByteString:      {"equalsByteString", 2, 0},
	LessThanByteString:    {"lessThanByteString", 2, 0},
	AppendString:          {"appendString", 2, 0},
	EqualsString:          {"equalsString", 2, 0},
	EncodeUtf8:            {"encodeUtf8", 1, 0},
	DecodeUtf8:            {"decodeUtf8", 1, 0},
	Trace:                 {"trace", 2, 1},
}

// String returns the builtin's name in the target's textual syntax.
func (b BuiltinFun) String() string {
	if info, ok := builtinTable[b]; ok {
		return info.name
	}
	return "unknown"
}

// Arity returns the number of arguments the builtin consumes.
func (b BuiltinFun) Arity() int {
	return builtinTable[b].arity
}

// Forces returns how many times the builtin must be forced before it
// accepts arguments.
func (b BuiltinFun) Forces() int {
	return builtinTable[b].forces
}

// Builtins lists every builtin in declaration order.
func Builtins() []BuiltinFun {
	all := make([]BuiltinFun, 0, len(builtinTable))
	for b := AddInteger; b <= Trace; b++ {
		all = append(all, b)
	}
	return all
}
