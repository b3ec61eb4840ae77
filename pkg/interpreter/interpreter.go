package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/oarkflow/log"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
)

const (
	// DefaultDecimalScale is the number of fractional digits kept by decimal
	// division.
	DefaultDecimalScale int32 = 16
	// DefaultMaxCallDepth bounds nested function invocations.
	DefaultMaxCallDepth = 10000
)

// Interpreter executes checked programs. Builtins live in a root environment;
// each program runs in a fresh child of it.
type Interpreter struct {
	global   *runtime.Environment
	stdout   io.Writer
	scale    int32
	maxDepth int
	depth    int
	logger   *log.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStdout redirects the output of print.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.stdout = w
		}
	}
}

// WithDecimalScale sets the fractional digits kept by decimal division.
func WithDecimalScale(scale int32) Option {
	return func(i *Interpreter) {
		if scale >= 0 {
			i.scale = scale
		}
	}
}

// WithLogger enables diagnostics logging. A nil logger disables it.
func WithLogger(logger *log.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

// WithMaxCallDepth bounds nested invocations before StackOverflowError.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		if depth > 0 {
			i.maxDepth = depth
		}
	}
}

// New returns an interpreter with print registered in its root environment.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global:   runtime.NewEnvironment(nil),
		stdout:   os.Stdout,
		scale:    DefaultDecimalScale,
		maxDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.initBuiltins()
	return i
}

// GlobalEnvironment returns the root environment holding the builtins.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Execute runs a whole program: globals in order, then function definitions,
// then main/0. The value returned by main is the program result.
func (i *Interpreter) Execute(src *ast.Source) (runtime.Value, error) {
	if src == nil {
		return nil, fmt.Errorf("interpreter: source is nil")
	}
	env := i.global.Extend()
	for _, global := range src.Globals {
		if err := i.DefineGlobal(env, global); err != nil {
			return nil, err
		}
	}
	for _, fn := range src.Functions {
		if err := i.DefineFunction(env, fn); err != nil {
			return nil, err
		}
	}
	entry, err := env.LookupFunction("main", 0)
	if err != nil {
		return nil, fail(src, &MissingEntryPointError{})
	}
	return entry.Invoke(nil)
}

// DefineGlobal evaluates a global's initializer (Nil when absent) and binds it
// in env with the declared mutability.
func (i *Interpreter) DefineGlobal(env *runtime.Environment, global *ast.Global) error {
	value, err := i.evaluateOptional(global.Value, env)
	if err != nil {
		return err
	}
	if _, err := env.DeclareVariable(global.Name, global.Name, nil, global.Mutable, value); err != nil {
		return fail(global, err)
	}
	return nil
}

// DefineFunction binds fn in env as a closure over env.
func (i *Interpreter) DefineFunction(env *runtime.Environment, fn *ast.Function) error {
	defining := env
	_, err := env.DeclareFunctionArity(fn.Name, fn.Name, len(fn.Parameters), nil, nil, func(args []runtime.Value) (runtime.Value, error) {
		return i.invokeFunction(fn, defining, args)
	})
	if err != nil {
		return fail(fn, err)
	}
	return nil
}

// ExecStatement runs one top-level statement in env. Expression statements
// yield their value; every other statement yields Nil.
func (i *Interpreter) ExecStatement(env *runtime.Environment, stmt ast.Statement) (runtime.Value, error) {
	if exprStmt, ok := stmt.(*ast.ExpressionStatement); ok {
		return i.evaluateExpression(exprStmt.Expression, env)
	}
	result, err := i.executeStatement(stmt, env)
	if err != nil {
		return nil, err
	}
	if result.returning {
		return nil, fail(stmt, &ReturnOutsideFunctionError{})
	}
	return runtime.Nil, nil
}

// Evaluate computes a standalone expression in env.
func (i *Interpreter) Evaluate(env *runtime.Environment, expr ast.Expression) (runtime.Value, error) {
	return i.evaluateExpression(expr, env)
}
