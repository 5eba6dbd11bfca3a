package ir

import "fmt"

// StateVar is the parameter every lowered term abstracts over: the
// environment function mapping a variable name to its current value.
const StateVar = "s"

const queryVar = "x"

// lookup returns the value bound to name in env.
func lookup(env Term, name string) Term {
	return NewApply(env, NewByteString(name))
}

// extend returns an environment that answers names[i] with values[i] and
// defers every other query to env. Names are tested in the given order,
// so the first occurrence of a duplicated name wins.
func extend(env Term, names []string, values []Term) Term {
	var chain Term = NewApply(env, NewVar(queryVar))
	for i := len(names) - 1; i >= 0; i-- {
		chain = NewIte(
			NewApply(NewBuiltIn(EqualsByteString), NewVar(queryVar), NewByteString(names[i])),
			values[i],
			chain,
		)
	}
	return NewLambda([]string{queryVar}, chain)
}

// emptyEnv answers every query with a failure.
func emptyEnv() Term {
	return NewLambda([]string{queryVar}, &Error{})
}

// emulateTuple encodes elems as \f -> f e0 ... en.
func emulateTuple(elems ...Term) Term {
	return NewLambda([]string{"f"}, NewApply(NewVar("f"), elems...))
}

// emulateNth projects element n out of an encoded tuple of the given size.
func emulateNth(tuple Term, n, size int) Term {
	params := make([]string, size)
	for i := range params {
		params[i] = fmt.Sprintf("v%d", i)
	}
	return NewApply(tuple, NewLambda(params, NewVar(params[n])))
}

// withState wraps body as \s -> body.
func withState(body Term) Term {
	return NewLambda([]string{StateVar}, body)
}

// atState applies a lowered term to the current environment.
func atState(t Term) Term {
	return NewApply(t, NewVar(StateVar))
}
