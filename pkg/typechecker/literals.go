package typechecker

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/types"
)

var (
	minInt32 = big.NewInt(math.MinInt32)
	maxInt32 = big.NewInt(math.MaxInt32)
)

// checkExpression types expr, records the result on the node, and returns it.
func (c *Checker) checkExpression(env *runtime.Environment, expr ast.Expression) (*types.Type, error) {
	var (
		typ *types.Type
		err error
	)
	switch e := expr.(type) {
	case *ast.Literal:
		typ, err = checkLiteral(e)
	case *ast.Group:
		typ, err = c.checkExpression(env, e.Expression)
	case *ast.Binary:
		typ, err = c.checkBinary(env, e)
	case *ast.Access:
		typ, err = c.checkAccess(env, e)
	case *ast.Call:
		typ, err = c.checkCall(env, e)
	case *ast.ListLiteral:
		typ, err = c.checkList(env, e)
	case nil:
		return nil, fmt.Errorf("typechecker: nil expression")
	default:
		return nil, fmt.Errorf("typechecker: unsupported expression %T", expr)
	}
	if err != nil {
		return nil, err
	}
	expr.SetResolvedType(typ)
	return typ, nil
}

func checkLiteral(lit *ast.Literal) (*types.Type, error) {
	switch v := lit.Value.(type) {
	case nil:
		return types.Nil, nil
	case bool:
		return types.Boolean, nil
	case *big.Int:
		if v.Cmp(minInt32) < 0 || v.Cmp(maxInt32) > 0 {
			return nil, fail(lit, &LiteralRangeError{Literal: v.String(), Reason: "is outside the 32-bit signed integer range"})
		}
		return types.Integer, nil
	case decimal.Decimal:
		f, _ := v.Float64()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fail(lit, &LiteralRangeError{Literal: v.String(), Reason: "is not representable as a double"})
		}
		return types.Decimal, nil
	case rune:
		return types.Character, nil
	case string:
		return types.String, nil
	default:
		return nil, fail(lit, fmt.Errorf("unsupported literal %T", lit.Value))
	}
}

// checkAccess types the optional index before resolving the name. The
// result is the variable's type, which for a list is its element type.
func (c *Checker) checkAccess(env *runtime.Environment, access *ast.Access) (*types.Type, error) {
	if access.Offset != nil {
		offsetType, err := c.checkExpression(env, access.Offset)
		if err != nil {
			return nil, err
		}
		if err := types.RequireAssignable(types.Integer, offsetType); err != nil {
			return nil, fail(access.Offset, err)
		}
	}
	variable, err := env.LookupVariable(access.Name)
	if err != nil {
		return nil, fail(access, err)
	}
	access.Variable = variable
	return variable.Type, nil
}

// checkCall resolves the function by name and argument count, then checks the
// arguments left to right.
func (c *Checker) checkCall(env *runtime.Environment, call *ast.Call) (*types.Type, error) {
	fn, err := env.LookupFunction(call.Name, len(call.Arguments))
	if err != nil {
		return nil, fail(call, err)
	}
	for i, arg := range call.Arguments {
		argType, err := c.checkExpression(env, arg)
		if err != nil {
			return nil, err
		}
		if err := types.RequireAssignable(fn.ParameterTypes[i], argType); err != nil {
			return nil, fail(arg, err)
		}
	}
	call.Function = fn
	return fn.ReturnType, nil
}

// checkList takes the first element's type as the list type; later elements
// are typed but not compared against it.
func (c *Checker) checkList(env *runtime.Environment, list *ast.ListLiteral) (*types.Type, error) {
	typ := types.Any
	for i, el := range list.Elements {
		elType, err := c.checkExpression(env, el)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			typ = elType
		}
	}
	return typ, nil
}
