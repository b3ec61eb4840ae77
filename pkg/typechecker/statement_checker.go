package typechecker

import (
	"fmt"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/types"
)

// checkBlock checks statements in order against env, which the caller has
// already created for the block.
func (c *Checker) checkBlock(env *runtime.Environment, stmts []ast.Statement, fn *functionContext) error {
	for _, stmt := range stmts {
		if err := c.checkStatement(env, stmt, fn); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStatement(env *runtime.Environment, stmt ast.Statement, fn *functionContext) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		call, ok := s.Expression.(*ast.Call)
		if !ok {
			return fail(s, &InvalidStatementError{Reason: "only function calls may be used as statements"})
		}
		_, err := c.checkExpression(env, call)
		return err
	case *ast.Declaration:
		return c.checkDeclaration(env, s)
	case *ast.Assignment:
		return c.checkAssignment(env, s)
	case *ast.If:
		return c.checkIf(env, s, fn)
	case *ast.Switch:
		return c.checkSwitch(env, s, fn)
	case *ast.While:
		return c.checkWhile(env, s, fn)
	case *ast.Return:
		return c.checkReturn(env, s, fn)
	case *ast.Case:
		return fail(s, &InvalidStatementError{Reason: "CASE outside of SWITCH"})
	case nil:
		return fmt.Errorf("typechecker: nil statement")
	default:
		return fmt.Errorf("typechecker: unsupported statement %T", stmt)
	}
}

// LET bindings are always mutable.
func (c *Checker) checkDeclaration(env *runtime.Environment, decl *ast.Declaration) error {
	typ, err := c.bindingType(env, decl, decl.Name, decl.TypeName, decl.Value)
	if err != nil {
		return err
	}
	variable, err := env.DeclareVariable(decl.Name, decl.Name, typ, true, nil)
	if err != nil {
		return fail(decl, err)
	}
	decl.Variable = variable
	return nil
}

// checkAssignment validates types only. Mutability is enforced when the
// assignment runs.
func (c *Checker) checkAssignment(env *runtime.Environment, assign *ast.Assignment) error {
	receiver, ok := assign.Receiver.(*ast.Access)
	if !ok {
		return fail(assign, &InvalidAssignmentTargetError{})
	}
	target, err := c.checkExpression(env, receiver)
	if err != nil {
		return err
	}
	valueType, err := c.checkExpression(env, assign.Value)
	if err != nil {
		return err
	}
	if err := types.RequireAssignable(target, valueType); err != nil {
		return fail(assign.Value, err)
	}
	return nil
}

// checkReturn compares each RETURN against the enclosing signature; there is
// no flow analysis.
func (c *Checker) checkReturn(env *runtime.Environment, ret *ast.Return, fn *functionContext) error {
	if fn == nil {
		return fail(ret, &ReturnOutsideFunctionError{})
	}
	typ, err := c.checkExpression(env, ret.Value)
	if err != nil {
		return err
	}
	if err := types.RequireAssignable(fn.returnType, typ); err != nil {
		return fail(ret, err)
	}
	return nil
}
