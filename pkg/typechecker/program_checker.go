package typechecker

import (
	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/types"
)

// checkSource walks globals before functions so every function body can see
// every global. The entry point is verified last so other errors surface first.
func (c *Checker) checkSource(env *runtime.Environment, src *ast.Source) error {
	for _, global := range src.Globals {
		if err := c.checkGlobal(env, global); err != nil {
			return err
		}
	}
	for _, fn := range src.Functions {
		if err := c.checkFunction(env, fn); err != nil {
			return err
		}
	}
	if _, err := env.LookupFunction("main", 0); err != nil {
		return fail(src, &MissingEntryPointError{})
	}
	return nil
}

func (c *Checker) checkGlobal(env *runtime.Environment, global *ast.Global) error {
	typ, err := c.bindingType(env, global, global.Name, global.TypeName, global.Value)
	if err != nil {
		return err
	}
	variable, err := env.DeclareVariable(global.Name, global.Name, typ, global.Mutable, nil)
	if err != nil {
		return fail(global, err)
	}
	global.Variable = variable
	return nil
}

// bindingType resolves the type of a global or LET binding. A declared type
// must accept the initializer; otherwise the initializer's type is adopted.
func (c *Checker) bindingType(env *runtime.Environment, node ast.Node, name, typeName string, value ast.Expression) (*types.Type, error) {
	var valueType *types.Type
	if value != nil {
		t, err := c.checkExpression(env, value)
		if err != nil {
			return nil, err
		}
		valueType = t
	}
	if typeName == "" {
		if valueType == nil {
			return nil, fail(node, &MissingTypeError{Name: name})
		}
		return valueType, nil
	}
	declared, err := lookupType(node, typeName)
	if err != nil {
		return nil, err
	}
	if valueType != nil {
		if err := types.RequireAssignable(declared, valueType); err != nil {
			return nil, fail(value, err)
		}
	}
	return declared, nil
}

// checkFunction declares the signature before walking the body so the
// function may call itself.
func (c *Checker) checkFunction(env *runtime.Environment, fn *ast.Function) error {
	if len(fn.Parameters) != len(fn.ParameterTypeNames) {
		return fail(fn, &InvalidStatementError{Reason: "every parameter needs a type"})
	}
	parameterTypes := make([]*types.Type, len(fn.ParameterTypeNames))
	for i, name := range fn.ParameterTypeNames {
		typ, err := lookupType(fn, name)
		if err != nil {
			return err
		}
		parameterTypes[i] = typ
	}
	returnType := types.Nil
	if fn.ReturnTypeName != "" {
		typ, err := lookupType(fn, fn.ReturnTypeName)
		if err != nil {
			return err
		}
		returnType = typ
	}
	if fn.Name == "main" && len(fn.Parameters) == 0 && fn.ReturnTypeName != "" {
		if err := types.RequireAssignable(types.Integer, returnType); err != nil {
			return fail(fn, err)
		}
	}

	record, err := env.DeclareFunction(fn.Name, fn.Name, parameterTypes, returnType, nil)
	if err != nil {
		return fail(fn, err)
	}
	fn.Function = record

	body := env.Extend()
	for i, name := range fn.Parameters {
		if _, err := body.DeclareVariable(name, name, parameterTypes[i], true, nil); err != nil {
			return fail(fn, err)
		}
	}
	return c.checkBlock(body, fn.Statements, &functionContext{returnType: returnType})
}
