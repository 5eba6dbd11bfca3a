package compiler

import (
	"io"
	"log/slog"
	"strings"

	"github.com/lhaig/pyscc/internal/ast"
	"github.com/lhaig/pyscc/internal/desugar"
	"github.com/lhaig/pyscc/internal/diagnostic"
	"github.com/lhaig/pyscc/internal/formatter"
	"github.com/lhaig/pyscc/internal/ir"
	"github.com/lhaig/pyscc/internal/linter"
	"github.com/lhaig/pyscc/internal/machine"
	"github.com/pkg/errors"
)

// Config controls the compilation pipeline
type Config struct {
	// ValidateOutput runs ir.Validate on the lowered program and reports
	// every problem as an error diagnostic.
	ValidateOutput bool
	Logger         *slog.Logger
}

// DefaultConfig validates output and discards log records
func DefaultConfig() Config {
	return Config{
		ValidateOutput: true,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

// Result holds the output of a compilation
type Result struct {
	Diagnostics *diagnostic.Diagnostics
	Program     *ir.Program // nil when compilation failed
	Source      string      // desugared module rendered as Python
	Dump        string
	Hash        string
}

// Compile runs the full pipeline: lint -> desugar -> lower -> validate.
// Lowering stops at the first error; no program is produced then.
func Compile(mod *ast.Module, cfg Config) *Result {
	log := cfg.logger()
	res := &Result{Diagnostics: diagnostic.New()}

	if mod == nil {
		res.Diagnostics.Errorf(0, 0, "no module to compile")
		return res
	}

	for _, w := range linter.Lint(mod).All() {
		res.Diagnostics.Add(w)
	}
	log.Debug("linted module", "warnings", res.Diagnostics.WarningCount())

	mod = desugar.RewriteFor(mod)
	log.Debug("desugared for loops", "statements", len(mod.Body))
	mod = desugar.RewriteTupleAssign(mod)
	log.Debug("desugared assignments", "statements", len(mod.Body))
	res.Source = formatter.Format(mod)
	log.Debug("desugared source", "source", res.Source)

	prog, err := ir.Lower(mod)
	if err != nil {
		log.Debug("lowering failed", "error", err)
		res.Diagnostics.Add(fromError(err))
		return res
	}
	log.Debug("lowered module")

	if cfg.ValidateOutput {
		for _, msg := range ir.Validate(prog) {
			res.Diagnostics.Errorf(0, 0, "%s", msg)
		}
		if res.Diagnostics.HasErrors() {
			log.Debug("validation failed", "errors", res.Diagnostics.ErrorCount())
			return res
		}
	}

	res.Program = prog
	res.Dump = prog.String()
	res.Hash = prog.Hash()
	log.Debug("compiled", "hash", res.Hash, "size", len(res.Dump))
	return res
}

// Execution is the outcome of running a compiled module
type Execution struct {
	*Result
	Env    machine.Value // final environment of the module
	Traces []string
	Steps  int
}

// Run compiles mod and reduces it in the reference machine.
func Run(mod *ast.Module, cfg Config, mcfg machine.Config) (*Execution, error) {
	res := Compile(mod, cfg)
	exec := &Execution{Result: res}
	if res.Program == nil {
		return exec, errors.Errorf("compilation errors:\n%s", res.Diagnostics.Format("input"))
	}

	m := machine.New(mcfg)
	env, err := m.Run(res.Program)
	exec.Traces = m.Traces()
	exec.Steps = m.Steps()
	cfg.logger().Debug("evaluated", "steps", exec.Steps, "traces", len(exec.Traces))
	if err != nil {
		return exec, errors.Wrap(err, "evaluation")
	}
	exec.Env = env
	return exec, nil
}

// fromError converts a lowering failure into a diagnostic, keeping any
// context the lowering wrapped around it.
func fromError(err error) diagnostic.Diagnostic {
	le, ok := ir.AsLowerError(err)
	if !ok {
		return diagnostic.Diagnostic{Severity: diagnostic.Error, Message: err.Error()}
	}
	context := strings.TrimSuffix(err.Error(), le.Error())
	return diagnostic.Diagnostic{
		Severity: diagnostic.Error,
		Kind:     le.Kind.String(),
		Node:     le.Node,
		Message:  context + le.Msg,
		Line:     le.Line,
		Column:   le.Column,
		Hint:     hint(le),
	}
}

func hint(le *ir.LowerError) string {
	switch {
	case le.Kind == ir.MissingType:
		return "annotate the tree with inferred types before compiling"
	case le.Kind == ir.UnresolvableOperator && le.Node == "BinOp":
		return "arithmetic is lowered for Integer operands, Add also for ByteString and Text"
	case le.Kind == ir.UnresolvableOperator && le.Node == "Compare":
		return "only Eq, Lt and LtE comparisons are lowered"
	case le.Kind == ir.UnsupportedSyntax && le.Node == "For":
		return "only for loops over range(n) with a name target are lowered"
	default:
		return ""
	}
}
