package ir

// Test hooks for the environment encoding.
var (
	Extend   = extend
	EmptyEnv = emptyEnv
)
