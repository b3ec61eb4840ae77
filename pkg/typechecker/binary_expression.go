package typechecker

import (
	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/types"
)

func (c *Checker) checkBinary(env *runtime.Environment, expr *ast.Binary) (*types.Type, error) {
	left, err := c.checkExpression(env, expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.checkExpression(env, expr.Right)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "&&", "||":
		if err := requireBoth(expr, types.Boolean, left, right); err != nil {
			return nil, err
		}
		return types.Boolean, nil
	case "<", ">", "==", "!=":
		if err := requireBoth(expr, types.Comparable, left, right); err != nil {
			return nil, err
		}
		if left != right {
			return nil, fail(expr.Right, &types.TypeMismatchError{Target: left, Source: right})
		}
		return types.Boolean, nil
	case "+":
		if left == types.String || right == types.String {
			return types.String, nil
		}
		return numericResult(expr, left, right)
	case "-", "*", "/":
		return numericResult(expr, left, right)
	case "^":
		if err := requireBoth(expr, types.Integer, left, right); err != nil {
			return nil, err
		}
		return types.Integer, nil
	default:
		return nil, fail(expr, &UnknownOperatorError{Operator: expr.Operator})
	}
}

func requireBoth(expr *ast.Binary, target, left, right *types.Type) error {
	if err := types.RequireAssignable(target, left); err != nil {
		return fail(expr.Left, err)
	}
	if err := types.RequireAssignable(target, right); err != nil {
		return fail(expr.Right, err)
	}
	return nil
}

// numericResult requires both operands to be Integer or both Decimal.
func numericResult(expr *ast.Binary, left, right *types.Type) (*types.Type, error) {
	if left != types.Integer && left != types.Decimal {
		return nil, fail(expr.Left, &types.TypeMismatchError{Target: types.Integer, Source: left})
	}
	if err := types.RequireAssignable(left, right); err != nil {
		return nil, fail(expr.Right, err)
	}
	return left, nil
}
