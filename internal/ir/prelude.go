package ir

// Prelude is a value installed in the bootstrap environment.
type Prelude struct {
	Name  string
	Value Term
}

// Preludes returns the builtin bindings of the bootstrap environment, in
// installation order.
func Preludes() []Prelude {
	return []Prelude{
		{Name: "print", Value: printValue()},
		{Name: "range", Value: rangeValue()},
	}
}

// printValue traces its argument and returns it. Builtin application is
// strict, so the argument is fully evaluated before the trace fires.
func printValue() Term {
	return NewLambda([]string{"x"},
		NewApply(&Force{Term: NewBuiltIn(Trace)}, NewVar("x"), NewVar("x")),
	)
}

// rangeValue returns the pair (initial state, step) where step maps a
// state to the triple (hasNext, current, next state).
func rangeValue() Term {
	step := NewLambda([]string{"state"},
		emulateTuple(
			NewApply(NewBuiltIn(LessThanInteger), NewVar("state"), NewVar("limit")),
			NewVar("state"),
			NewApply(NewBuiltIn(AddInteger), NewVar("state"), NewInt(1)),
		),
	)
	return NewLambda([]string{"limit"}, emulateTuple(NewInt(0), step))
}

// BootstrapEnv returns the initial environment: every prelude binding over
// a base that fails on any other name.
func BootstrapEnv() Term {
	preludes := Preludes()
	names := make([]string, len(preludes))
	values := make([]Term, len(preludes))
	for i, p := range preludes {
		names[i] = p.Name
		values[i] = p.Value
	}
	return extend(emptyEnv(), names, values)
}
