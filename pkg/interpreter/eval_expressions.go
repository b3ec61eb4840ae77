package interpreter

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return literalValue(n)
	case *ast.Group:
		return i.evaluateExpression(n.Expression, env)
	case *ast.Binary:
		return i.evaluateBinary(n, env)
	case *ast.Access:
		return i.evaluateAccess(n, env)
	case *ast.Call:
		return i.evaluateCall(n, env)
	case *ast.ListLiteral:
		return i.evaluateList(n, env)
	case nil:
		return nil, fmt.Errorf("interpreter: expression is nil")
	default:
		return nil, fail(node, fmt.Errorf("unsupported expression type: %s", node.NodeType()))
	}
}

// evaluateOptional yields Nil for an absent initializer.
func (i *Interpreter) evaluateOptional(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if expr == nil {
		return runtime.Nil, nil
	}
	return i.evaluateExpression(expr, env)
}

func literalValue(lit *ast.Literal) (runtime.Value, error) {
	switch v := lit.Value.(type) {
	case nil:
		return runtime.Nil, nil
	case bool:
		return runtime.Bool(v), nil
	case *big.Int:
		return runtime.Integer(v), nil
	case decimal.Decimal:
		return runtime.Decimal(v), nil
	case rune:
		return runtime.Char(v), nil
	case string:
		return runtime.String(v), nil
	default:
		return nil, fail(lit, fmt.Errorf("unsupported literal %T", lit.Value))
	}
}

func (i *Interpreter) evaluateAccess(access *ast.Access, env *runtime.Environment) (runtime.Value, error) {
	variable, err := env.LookupVariable(access.Name)
	if err != nil {
		return nil, fail(access, err)
	}
	if access.Offset == nil {
		return variable.Value, nil
	}
	list, index, err := i.resolveElement(access, variable, env)
	if err != nil {
		return nil, err
	}
	return list.Elements[index], nil
}

// resolveElement evaluates the offset of an indexed access and checks it
// against the current length of the list bound to variable.
func (i *Interpreter) resolveElement(access *ast.Access, variable *runtime.Variable, env *runtime.Environment) (*runtime.ListValue, int, error) {
	offset, err := i.evaluateExpression(access.Offset, env)
	if err != nil {
		return nil, 0, err
	}
	index, ok := offset.(runtime.IntegerValue)
	if !ok {
		return nil, 0, fail(access, &IndexTypeError{Name: access.Name, Reason: fmt.Sprintf("index is %s, not Integer", offset.Kind())})
	}
	list, ok := variable.Value.(*runtime.ListValue)
	if !ok {
		return nil, 0, fail(access, &IndexTypeError{Name: access.Name, Reason: fmt.Sprintf("value is %s, not a list", variable.Value.Kind())})
	}
	if index.Val.Sign() < 0 || !index.Val.IsInt64() || index.Val.Int64() >= int64(list.Len()) {
		return nil, 0, fail(access, &IndexOutOfRangeError{Name: access.Name, Index: index.Val.String(), Length: list.Len()})
	}
	return list, int(index.Val.Int64()), nil
}

func (i *Interpreter) evaluateList(list *ast.ListLiteral, env *runtime.Environment) (runtime.Value, error) {
	elements := make([]runtime.Value, 0, len(list.Elements))
	for _, el := range list.Elements {
		value, err := i.evaluateExpression(el, env)
		if err != nil {
			return nil, err
		}
		elements = append(elements, value)
	}
	return &runtime.ListValue{Elements: elements}, nil
}
