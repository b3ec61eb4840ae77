package interpreter

import (
	"fmt"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateCall(call *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		value, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}
	fn, err := env.LookupFunction(call.Name, len(args))
	if err != nil {
		return nil, fail(call, err)
	}
	result, err := fn.Invoke(args)
	if err != nil {
		return nil, fail(call, err)
	}
	if result == nil {
		return runtime.Nil, nil
	}
	return result, nil
}

// invokeFunction runs fn's body in a child of the scope it was defined in,
// with each parameter bound to its argument. A body that finishes without
// RETURN yields Nil.
func (i *Interpreter) invokeFunction(fn *ast.Function, defining *runtime.Environment, args []runtime.Value) (runtime.Value, error) {
	if len(args) != len(fn.Parameters) {
		return nil, fail(fn, fmt.Errorf("function '%s' expects %d arguments, got %d", fn.Name, len(fn.Parameters), len(args)))
	}
	if i.depth >= i.maxDepth {
		if i.logger != nil {
			i.logger.Error().Str("function", fn.Name).Int("depth", i.depth).Msg("call depth exceeded")
		}
		return nil, fail(fn, &StackOverflowError{Function: fn.Name, Depth: i.maxDepth})
	}
	i.depth++
	defer func() { i.depth-- }()

	scope := defining.Extend()
	for idx, name := range fn.Parameters {
		if _, err := scope.DeclareVariable(name, name, nil, true, args[idx]); err != nil {
			return nil, fail(fn, err)
		}
	}
	result, err := i.executeBlock(fn.Statements, scope)
	if err != nil {
		return nil, err
	}
	if result.returning {
		return result.value, nil
	}
	return runtime.Nil, nil
}
