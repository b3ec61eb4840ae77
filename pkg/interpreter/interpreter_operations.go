package interpreter

import (
	"fmt"
	"math/big"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateBinary(expr *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	switch expr.Operator {
	case "&&", "||":
		return i.evaluateLogical(expr, env)
	}
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	value, err := i.applyBinaryOperator(expr.Operator, left, right)
	if err != nil {
		return nil, fail(expr, err)
	}
	return value, nil
}

// evaluateLogical only evaluates the right operand when the left one does not
// decide the result.
func (i *Interpreter) evaluateLogical(expr *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(runtime.BoolValue)
	if !ok {
		return nil, fail(expr, &ArithmeticTypeError{Operator: expr.Operator, Left: left.Kind(), Right: runtime.KindBoolean})
	}
	if expr.Operator == "&&" && !lb.Val {
		return runtime.Bool(false), nil
	}
	if expr.Operator == "||" && lb.Val {
		return runtime.Bool(true), nil
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	rb, ok := right.(runtime.BoolValue)
	if !ok {
		return nil, fail(expr, &ArithmeticTypeError{Operator: expr.Operator, Left: left.Kind(), Right: right.Kind()})
	}
	return runtime.Bool(rb.Val), nil
}

func (i *Interpreter) applyBinaryOperator(op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "==":
		return runtime.Bool(runtime.Equal(left, right)), nil
	case "!=":
		return runtime.Bool(!runtime.Equal(left, right)), nil
	case "<", ">":
		cmp, ok := runtime.Compare(left, right)
		if !ok {
			return nil, &ArithmeticTypeError{Operator: op, Left: left.Kind(), Right: right.Kind()}
		}
		if op == "<" {
			return runtime.Bool(cmp < 0), nil
		}
		return runtime.Bool(cmp > 0), nil
	case "+":
		if left.Kind() == runtime.KindString || right.Kind() == runtime.KindString {
			return runtime.String(runtime.Format(left) + runtime.Format(right)), nil
		}
		return i.applyArithmetic(op, left, right)
	case "-", "*", "/":
		return i.applyArithmetic(op, left, right)
	case "^":
		base, lok := left.(runtime.IntegerValue)
		exp, rok := right.(runtime.IntegerValue)
		if !lok || !rok {
			return nil, &ArithmeticTypeError{Operator: op, Left: left.Kind(), Right: right.Kind()}
		}
		return power(base.Val, exp.Val)
	default:
		return nil, fmt.Errorf("unknown operator '%s'", op)
	}
}

// applyArithmetic handles + - * / on two integers or two decimals.
func (i *Interpreter) applyArithmetic(op string, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.IntegerValue:
		r, ok := right.(runtime.IntegerValue)
		if !ok {
			break
		}
		return integerArithmetic(op, l.Val, r.Val)
	case runtime.DecimalValue:
		r, ok := right.(runtime.DecimalValue)
		if !ok {
			break
		}
		switch op {
		case "+":
			return runtime.Decimal(l.Val.Add(r.Val)), nil
		case "-":
			return runtime.Decimal(l.Val.Sub(r.Val)), nil
		case "*":
			return runtime.Decimal(l.Val.Mul(r.Val)), nil
		case "/":
			if r.Val.IsZero() {
				return nil, &DivisionByZeroError{}
			}
			return runtime.Decimal(trimQuotient(divideHalfEven(l.Val, r.Val, i.scale))), nil
		}
	}
	return nil, &ArithmeticTypeError{Operator: op, Left: left.Kind(), Right: right.Kind()}
}

func integerArithmetic(op string, left, right *big.Int) (runtime.Value, error) {
	result := new(big.Int)
	switch op {
	case "+":
		result.Add(left, right)
	case "-":
		result.Sub(left, right)
	case "*":
		result.Mul(left, right)
	case "/":
		if right.Sign() == 0 {
			return nil, &DivisionByZeroError{}
		}
		// Quo truncates toward zero.
		result.Quo(left, right)
	default:
		return nil, fmt.Errorf("unknown operator '%s'", op)
	}
	return runtime.IntegerValue{Val: result}, nil
}
