package driver

import (
	"fmt"
	"sort"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/interpreter"
	"plc/interpreter-go/pkg/parser"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/typechecker"
)

// Session evaluates interactive input one entry at a time. Globals, functions,
// and statements from earlier entries stay visible to later ones.
//
// Each accepted input gets its own scope layered on top of the previous one,
// so a later input may redefine a name. An input that fails is discarded
// whole: nothing it declared stays visible.
type Session struct {
	checker  *typechecker.Checker
	interp   *interpreter.Interpreter
	checkEnv *runtime.Environment
	runEnv   *runtime.Environment
}

// NewSession starts an interactive session using p's settings.
func (p *Pipeline) NewSession() *Session {
	checker := p.newChecker()
	interp := p.newInterpreter()
	return &Session{
		checker:  checker,
		interp:   interp,
		checkEnv: checker.Scope().Extend(),
		runEnv:   interp.GlobalEnvironment().Extend(),
	}
}

// Eval parses input as a sequence of globals, functions, and statements,
// checks them all, then executes them in order. Value is the result of the
// last expression statement, or nil when there was none. A parse error with
// parser.IsIncomplete means more input is needed.
func (s *Session) Eval(input string) Result {
	entries, err := parser.ParseEntries(input)
	if err != nil {
		return Result{Stage: StageParse, Err: err}
	}

	checkScope := s.checkEnv.Extend()
	for _, entry := range entries {
		if err := s.checkEntry(checkScope, entry); err != nil {
			return Result{Stage: StageCheck, Err: err}
		}
	}

	runScope := s.runEnv.Extend()
	var last runtime.Value
	for _, entry := range entries {
		value, err := s.runEntry(runScope, entry)
		if err != nil {
			return Result{Stage: StageRun, Err: err}
		}
		if _, ok := entry.(*ast.ExpressionStatement); ok {
			last = value
		}
	}
	s.checkEnv = checkScope
	s.runEnv = runScope
	return Result{Stage: StageRun, Value: last}
}

// Bindings returns the variables defined by accepted inputs, sorted by name.
// A redefined name reports its latest binding.
func (s *Session) Bindings() []*runtime.Variable {
	root := s.interp.GlobalEnvironment()
	seen := make(map[string]bool)
	var names []string
	for env := s.runEnv; env != nil && env != root; env = env.Parent() {
		for _, name := range env.Keys() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)

	vars := make([]*runtime.Variable, 0, len(names))
	for _, name := range names {
		if v, err := s.runEnv.LookupVariable(name); err == nil {
			vars = append(vars, v)
		}
	}
	return vars
}

func (s *Session) checkEntry(env *runtime.Environment, entry ast.Node) error {
	switch n := entry.(type) {
	case *ast.Global:
		return s.checker.CheckGlobal(env, n)
	case *ast.Function:
		return s.checker.CheckFunction(env, n)
	case ast.Statement:
		return s.checker.CheckStatement(env, n)
	default:
		return fmt.Errorf("session: unsupported entry %s", entry.NodeType())
	}
}

func (s *Session) runEntry(env *runtime.Environment, entry ast.Node) (runtime.Value, error) {
	switch n := entry.(type) {
	case *ast.Global:
		return runtime.Nil, s.interp.DefineGlobal(env, n)
	case *ast.Function:
		return runtime.Nil, s.interp.DefineFunction(env, n)
	case ast.Statement:
		return s.interp.ExecStatement(env, n)
	default:
		return nil, fmt.Errorf("session: unsupported entry %s", entry.NodeType())
	}
}
