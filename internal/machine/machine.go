// Package machine is a strict reference evaluator for ir terms. It plays
// the role of the on-chain reduction engine in tests and dry runs.
package machine

import (
	"github.com/lhaig/pyscc/internal/ir"
	"github.com/pkg/errors"
)

var (
	// ErrEvaluationFailure is returned when a program reduces to an error
	// term or misuses a value.
	ErrEvaluationFailure = errors.New("evaluation failure")

	// ErrBudgetExceeded is returned when evaluation runs out of steps or
	// nests deeper than allowed.
	ErrBudgetExceeded = errors.New("execution budget exceeded")
)

// Config bounds an evaluation.
type Config struct {
	Budget   int // maximum number of reduction steps
	MaxDepth int // maximum nesting of evaluation frames
}

// DefaultConfig returns limits suited for tests and dry runs.
func DefaultConfig() Config {
	return Config{
		Budget:   1_000_000,
		MaxDepth: 50_000,
	}
}

// Machine evaluates terms. It is not safe for concurrent use.
type Machine struct {
	cfg    Config
	steps  int
	depth  int
	traces []string
}

// New creates a machine with the given limits.
func New(cfg Config) *Machine {
	return &Machine{cfg: cfg}
}

// Eval reduces a closed term to a value.
func (m *Machine) Eval(t ir.Term) (Value, error) {
	return m.eval(t, nil)
}

// Run evaluates a program.
func (m *Machine) Run(p *ir.Program) (Value, error) {
	if p == nil {
		return nil, errors.Wrap(ErrEvaluationFailure, "nil program")
	}
	return m.Eval(p.Term)
}

// Apply applies a function value to arguments, one at a time.
func (m *Machine) Apply(fn Value, args ...Value) (Value, error) {
	var err error
	for _, a := range args {
		fn, err = m.apply(fn, a)
		if err != nil {
			return nil, err
		}
	}
	return fn, nil
}

// Lookup queries an environment value for the binding of name.
func (m *Machine) Lookup(env Value, name string) (Value, error) {
	return m.Apply(env, &ByteString{V: []byte(name)})
}

// Traces returns the messages emitted by trace so far, oldest first.
func (m *Machine) Traces() []string {
	return m.traces
}

// Steps returns the number of reduction steps taken so far.
func (m *Machine) Steps() int {
	return m.steps
}

func (m *Machine) eval(t ir.Term, env *Env) (Value, error) {
	m.steps++
	if m.cfg.Budget > 0 && m.steps > m.cfg.Budget {
		return nil, errors.Wrapf(ErrBudgetExceeded, "after %d steps", m.cfg.Budget)
	}
	m.depth++
	defer func() { m.depth-- }()
	if m.cfg.MaxDepth > 0 && m.depth > m.cfg.MaxDepth {
		return nil, errors.Wrapf(ErrBudgetExceeded, "nesting deeper than %d", m.cfg.MaxDepth)
	}

	switch n := t.(type) {
	case *ir.Var:
		v, ok := env.Lookup(n.Name)
		if !ok {
			return nil, errors.Wrapf(ErrEvaluationFailure, "free variable %s", n.Name)
		}
		return v, nil

	case *ir.Lambda:
		if len(n.Params) == 0 {
			return nil, errors.Wrap(ErrEvaluationFailure, "lambda without parameters")
		}
		return &Closure{Params: n.Params, Body: n.Body, Env: env}, nil

	case *ir.Apply:
		fn, err := m.eval(n.Fn, env)
		if err != nil {
			return nil, err
		}
		for _, a := range n.Args {
			arg, err := m.eval(a, env)
			if err != nil {
				return nil, err
			}
			fn, err = m.apply(fn, arg)
			if err != nil {
				return nil, err
			}
		}
		return fn, nil

	case *ir.Let:
		scope := env
		for _, b := range n.Bindings {
			v, err := m.eval(b.Value, scope)
			if err != nil {
				return nil, err
			}
			scope = scope.Bind(b.Name, v)
		}
		return m.eval(n.Body, scope)

	case *ir.Ite:
		c, err := m.eval(n.Cond, env)
		if err != nil {
			return nil, err
		}
		b, ok := c.(*Bool)
		if !ok {
			return nil, errors.Wrapf(ErrEvaluationFailure, "condition is %s, not a boolean", Render(c))
		}
		if b.V {
			return m.eval(n.Then, env)
		}
		return m.eval(n.Else, env)

	case *ir.BuiltIn:
		return &Builtin{Fun: n.Fun}, nil

	case *ir.Integer:
		return &Integer{V: n.Value}, nil

	case *ir.ByteString:
		return &ByteString{V: n.Value}, nil

	case *ir.Text:
		return &Text{V: n.Value}, nil

	case *ir.Bool:
		return &Bool{V: n.Value}, nil

	case *ir.Unit:
		return &Unit{}, nil

	case *ir.Delay:
		return &Delayed{Body: n.Term, Env: env}, nil

	case *ir.Force:
		v, err := m.eval(n.Term, env)
		if err != nil {
			return nil, err
		}
		return m.force(v)

	case *ir.Error:
		return nil, errors.Wrap(ErrEvaluationFailure, "error term reached")

	default:
		return nil, errors.Wrapf(ErrEvaluationFailure, "unknown term %T", t)
	}
}

func (m *Machine) force(v Value) (Value, error) {
	switch val := v.(type) {
	case *Delayed:
		return m.eval(val.Body, val.Env)
	case *Builtin:
		if len(val.Args) > 0 || val.Forced >= val.Fun.Forces() {
			return nil, errors.Wrapf(ErrEvaluationFailure, "builtin %s forced too often", val.Fun)
		}
		return &Builtin{Fun: val.Fun, Forced: val.Forced + 1}, nil
	default:
		return nil, errors.Wrapf(ErrEvaluationFailure, "cannot force %s", Render(v))
	}
}

func (m *Machine) apply(fn, arg Value) (Value, error) {
	switch f := fn.(type) {
	case *Closure:
		scope := f.Env.Bind(f.Params[0], arg)
		if len(f.Params) > 1 {
			return &Closure{Params: f.Params[1:], Body: f.Body, Env: scope}, nil
		}
		return m.eval(f.Body, scope)

	case *Builtin:
		if f.Forced < f.Fun.Forces() {
			return nil, errors.Wrapf(ErrEvaluationFailure, "builtin %s applied before being forced", f.Fun)
		}
		args := make([]Value, len(f.Args), len(f.Args)+1)
		copy(args, f.Args)
		args = append(args, arg)
		if len(args) < f.Fun.Arity() {
			return &Builtin{Fun: f.Fun, Forced: f.Forced, Args: args}, nil
		}
		return m.callBuiltin(f.Fun, args)

	default:
		return nil, errors.Wrapf(ErrEvaluationFailure, "cannot apply %s", Render(fn))
	}
}
