package runtime

import (
	"fmt"
	"sort"

	"plc/interpreter-go/pkg/types"
)

// Variable is a named binding. Type is nil for bindings created by the
// evaluator, which does not track static types.
type Variable struct {
	Name    string
	JvmName string
	Type    *types.Type
	Mutable bool
	Value   Value
}

// SetValue replaces the bound value.
func (v *Variable) SetValue(value Value) {
	v.Value = value
}

// Function is a callable binding keyed by name and arity.
type Function struct {
	Name           string
	JvmName        string
	Arity          int
	ParameterTypes []*types.Type
	ReturnType     *types.Type
	Impl           Callable
}

// Invoke calls the underlying implementation.
func (f *Function) Invoke(args []Value) (Value, error) {
	if f.Impl == nil {
		return Nil, nil
	}
	return f.Impl(args)
}

type functionKey struct {
	name  string
	arity int
}

// Environment provides lexical scoping for variables and functions. Lookups
// walk outward through parents; the innermost definition wins. Children hold
// a shared reference to their parent and only the leaf being walked is mutated.
type Environment struct {
	variables map[string]*Variable
	functions map[functionKey]*Function
	parent    *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		variables: make(map[string]*Variable),
		functions: make(map[functionKey]*Function),
		parent:    parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Extend creates a child scope of the current environment.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

// DeclareVariable inserts a binding in the current scope, shadowing outer
// bindings of the same name.
func (e *Environment) DeclareVariable(name, jvmName string, typ *types.Type, mutable bool, value Value) (*Variable, error) {
	if _, ok := e.variables[name]; ok {
		return nil, &DuplicateBindingError{Name: name, Arity: -1}
	}
	if value == nil {
		value = Nil
	}
	variable := &Variable{Name: name, JvmName: jvmName, Type: typ, Mutable: mutable, Value: value}
	e.variables[name] = variable
	return variable, nil
}

// DeclareFunction inserts a function keyed on (name, arity) in the current scope.
func (e *Environment) DeclareFunction(name, jvmName string, parameterTypes []*types.Type, returnType *types.Type, impl Callable) (*Function, error) {
	return e.DeclareFunctionArity(name, jvmName, len(parameterTypes), parameterTypes, returnType, impl)
}

// DeclareFunctionArity is DeclareFunction for callers that do not track
// parameter types.
func (e *Environment) DeclareFunctionArity(name, jvmName string, arity int, parameterTypes []*types.Type, returnType *types.Type, impl Callable) (*Function, error) {
	key := functionKey{name: name, arity: arity}
	if _, ok := e.functions[key]; ok {
		return nil, &DuplicateBindingError{Name: name, Arity: arity}
	}
	fn := &Function{
		Name:           name,
		JvmName:        jvmName,
		Arity:          arity,
		ParameterTypes: parameterTypes,
		ReturnType:     returnType,
		Impl:           impl,
	}
	e.functions[key] = fn
	return fn, nil
}

// LookupVariable retrieves a binding, searching outward through the scope chain.
func (e *Environment) LookupVariable(name string) (*Variable, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.variables[name]; ok {
			return v, nil
		}
	}
	return nil, &UnresolvedNameError{Name: name, Arity: -1}
}

// LookupFunction retrieves a function by name and arity, searching outward.
func (e *Environment) LookupFunction(name string, arity int) (*Function, error) {
	key := functionKey{name: name, arity: arity}
	for env := e; env != nil; env = env.parent {
		if fn, ok := env.functions[key]; ok {
			return fn, nil
		}
	}
	return nil, &UnresolvedNameError{Name: name, Arity: arity}
}

// HasInCurrentScope reports whether the variable exists in the current scope.
func (e *Environment) HasInCurrentScope(name string) bool {
	_, ok := e.variables[name]
	return ok
}

// Keys returns the variable names declared directly in this scope, sorted.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.variables))
	for k := range e.variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DuplicateBindingError reports a second definition in the same scope.
// Arity is -1 for variables.
type DuplicateBindingError struct {
	Name  string
	Arity int
}

func (e *DuplicateBindingError) Error() string {
	if e.Arity < 0 {
		return fmt.Sprintf("variable '%s' is already defined in this scope", e.Name)
	}
	return fmt.Sprintf("function '%s/%d' is already defined in this scope", e.Name, e.Arity)
}

// UnresolvedNameError reports a name that no enclosing scope defines.
// Arity is -1 for variables.
type UnresolvedNameError struct {
	Name  string
	Arity int
}

func (e *UnresolvedNameError) Error() string {
	if e.Arity < 0 {
		return fmt.Sprintf("undefined variable '%s'", e.Name)
	}
	return fmt.Sprintf("undefined function '%s/%d'", e.Name, e.Arity)
}
