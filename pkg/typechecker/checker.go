package typechecker

import (
	"fmt"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/types"
)

// Checker performs the static pass over a parsed program. It annotates every
// expression with its resolved type and every declaration, access, and call
// with its binding, stopping at the first violation.
type Checker struct {
	root *runtime.Environment
}

// New returns a checker whose root scope holds the builtin functions.
func New() *Checker {
	c := &Checker{root: runtime.NewEnvironment(nil)}
	c.declareBuiltin("print", "System.out.println", []*types.Type{types.Any}, types.Nil)
	return c
}

// Scope exposes the builtin root scope. Interactive sessions extend it once and
// check each entry against the extension.
func (c *Checker) Scope() *runtime.Environment {
	return c.root
}

// Check analyzes a whole program in a fresh child of the root scope.
func (c *Checker) Check(src *ast.Source) error {
	if src == nil {
		return fmt.Errorf("typechecker: source is nil")
	}
	return c.checkSource(c.root.Extend(), src)
}

// CheckGlobal analyzes one global declaration in env.
func (c *Checker) CheckGlobal(env *runtime.Environment, global *ast.Global) error {
	return c.checkGlobal(env, global)
}

// CheckFunction analyzes one function definition in env.
func (c *Checker) CheckFunction(env *runtime.Environment, fn *ast.Function) error {
	return c.checkFunction(env, fn)
}

// CheckStatement analyzes a statement outside of any function, so RETURN is
// rejected.
func (c *Checker) CheckStatement(env *runtime.Environment, stmt ast.Statement) error {
	return c.checkStatement(env, stmt, nil)
}

// CheckExpression analyzes a standalone expression and returns its type.
func (c *Checker) CheckExpression(env *runtime.Environment, expr ast.Expression) (*types.Type, error) {
	return c.checkExpression(env, expr)
}

// functionContext describes the function whose body is being walked.
type functionContext struct {
	returnType *types.Type
}

func (c *Checker) declareBuiltin(name, jvmName string, parameterTypes []*types.Type, returnType *types.Type) {
	// Builtins are registered once on a fresh root; a clash is a programming error.
	if _, err := c.root.DeclareFunction(name, jvmName, parameterTypes, returnType, nil); err != nil {
		panic(fmt.Sprintf("typechecker: %v", err))
	}
}

// fail wraps err with the node it was raised at. Errors that already carry a
// node pass through unchanged.
func fail(node ast.Node, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Diagnostic); ok {
		return err
	}
	return &Diagnostic{Node: node, Err: err}
}

func lookupType(node ast.Node, name string) (*types.Type, error) {
	typ, err := types.Lookup(name)
	if err != nil {
		return nil, fail(node, err)
	}
	return typ, nil
}
