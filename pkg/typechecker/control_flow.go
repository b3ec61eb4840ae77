package typechecker

import (
	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/types"
)

func (c *Checker) checkCondition(env *runtime.Environment, cond ast.Expression) error {
	typ, err := c.checkExpression(env, cond)
	if err != nil {
		return err
	}
	if err := types.RequireAssignable(types.Boolean, typ); err != nil {
		return fail(cond, err)
	}
	return nil
}

func (c *Checker) checkIf(env *runtime.Environment, stmt *ast.If, fn *functionContext) error {
	if err := c.checkCondition(env, stmt.Condition); err != nil {
		return err
	}
	if len(stmt.Then) == 0 {
		return fail(stmt, &EmptyBlockError{Construct: "IF"})
	}
	if err := c.checkBlock(env.Extend(), stmt.Then, fn); err != nil {
		return err
	}
	return c.checkBlock(env.Extend(), stmt.Else, fn)
}

// checkSwitch requires exactly the last case to be the DEFAULT.
func (c *Checker) checkSwitch(env *runtime.Environment, stmt *ast.Switch, fn *functionContext) error {
	condType, err := c.checkExpression(env, stmt.Condition)
	if err != nil {
		return err
	}
	if len(stmt.Cases) == 0 {
		return fail(stmt, &SwitchStructureError{Index: 0, Message: "SWITCH must end with a DEFAULT case"})
	}
	last := len(stmt.Cases) - 1
	for i, kase := range stmt.Cases {
		switch {
		case kase.IsDefault() && i != last:
			return fail(kase, &SwitchStructureError{Index: i, Message: "only the last case may omit its value"})
		case !kase.IsDefault() && i == last:
			return fail(kase, &SwitchStructureError{Index: i, Message: "the DEFAULT case must not have a value"})
		case !kase.IsDefault():
			valueType, err := c.checkExpression(env, kase.Value)
			if err != nil {
				return err
			}
			if err := types.RequireAssignable(condType, valueType); err != nil {
				return fail(kase.Value, err)
			}
		}
		if err := c.checkBlock(env.Extend(), kase.Statements, fn); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkWhile(env *runtime.Environment, stmt *ast.While, fn *functionContext) error {
	if err := c.checkCondition(env, stmt.Condition); err != nil {
		return err
	}
	return c.checkBlock(env.Extend(), stmt.Statements, fn)
}
