package interpreter

import (
	"fmt"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
)

// executeBlock runs statements in env until one of them returns.
func (i *Interpreter) executeBlock(statements []ast.Statement, env *runtime.Environment) (completion, error) {
	for _, stmt := range statements {
		result, err := i.executeStatement(stmt, env)
		if err != nil {
			return normal, err
		}
		if result.returning {
			return result, nil
		}
	}
	return normal, nil
}

func (i *Interpreter) executeStatement(node ast.Statement, env *runtime.Environment) (completion, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		if _, err := i.evaluateExpression(n.Expression, env); err != nil {
			return normal, err
		}
		return normal, nil
	case *ast.Declaration:
		return normal, i.executeDeclaration(n, env)
	case *ast.Assignment:
		return normal, i.executeAssignment(n, env)
	case *ast.If:
		return i.executeIf(n, env)
	case *ast.Switch:
		return i.executeSwitch(n, env)
	case *ast.While:
		return i.executeWhile(n, env)
	case *ast.Return:
		value, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return normal, err
		}
		return returning(value), nil
	case *ast.Case:
		return normal, fail(n, fmt.Errorf("CASE outside of SWITCH"))
	default:
		return normal, fail(node, fmt.Errorf("unsupported statement type: %s", node.NodeType()))
	}
}

func (i *Interpreter) executeDeclaration(decl *ast.Declaration, env *runtime.Environment) error {
	value, err := i.evaluateOptional(decl.Value, env)
	if err != nil {
		return err
	}
	// A WHILE body runs its declarations once per iteration in the same scope;
	// later runs re-initialize the binding made by the first.
	if env.HasInCurrentScope(decl.Name) {
		existing, err := env.LookupVariable(decl.Name)
		if err != nil {
			return fail(decl, err)
		}
		existing.Mutable = true
		existing.SetValue(value)
		return nil
	}
	if _, err := env.DeclareVariable(decl.Name, decl.Name, nil, true, value); err != nil {
		return fail(decl, err)
	}
	return nil
}

func (i *Interpreter) executeAssignment(assign *ast.Assignment, env *runtime.Environment) error {
	receiver, ok := assign.Receiver.(*ast.Access)
	if !ok {
		return fail(assign, &InvalidAssignmentTargetError{Node: assign.Receiver.NodeType()})
	}
	variable, err := env.LookupVariable(receiver.Name)
	if err != nil {
		return fail(receiver, err)
	}
	value, err := i.evaluateExpression(assign.Value, env)
	if err != nil {
		return err
	}
	if !variable.Mutable {
		return fail(assign, &ImmutableAssignmentError{Name: variable.Name})
	}
	if receiver.Offset == nil {
		variable.SetValue(value)
		return nil
	}
	list, index, err := i.resolveElement(receiver, variable, env)
	if err != nil {
		return err
	}
	list.Elements[index] = value
	return nil
}

func (i *Interpreter) executeIf(stmt *ast.If, env *runtime.Environment) (completion, error) {
	cond, err := i.evaluateCondition("IF", stmt.Condition, env)
	if err != nil {
		return normal, err
	}
	if cond {
		return i.executeBlock(stmt.Then, env.Extend())
	}
	return i.executeBlock(stmt.Else, env.Extend())
}

func (i *Interpreter) executeSwitch(stmt *ast.Switch, env *runtime.Environment) (completion, error) {
	subject, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return normal, err
	}
	var fallback *ast.Case
	for _, c := range stmt.Cases {
		if c.IsDefault() {
			fallback = c
			continue
		}
		candidate, err := i.evaluateExpression(c.Value, env)
		if err != nil {
			return normal, err
		}
		if runtime.Equal(subject, candidate) {
			return i.executeBlock(c.Statements, env.Extend())
		}
	}
	if fallback == nil {
		return normal, nil
	}
	return i.executeBlock(fallback.Statements, env.Extend())
}

// executeWhile shares one child scope across all iterations, so declarations
// made in the body persist from one iteration to the next.
func (i *Interpreter) executeWhile(loop *ast.While, env *runtime.Environment) (completion, error) {
	scope := env.Extend()
	for {
		cond, err := i.evaluateCondition("WHILE", loop.Condition, scope)
		if err != nil {
			return normal, err
		}
		if !cond {
			return normal, nil
		}
		result, err := i.executeBlock(loop.Statements, scope)
		if err != nil || result.returning {
			return result, err
		}
	}
}

func (i *Interpreter) evaluateCondition(construct string, expr ast.Expression, env *runtime.Environment) (bool, error) {
	value, err := i.evaluateExpression(expr, env)
	if err != nil {
		return false, err
	}
	b, ok := value.(runtime.BoolValue)
	if !ok {
		return false, fail(expr, &ConditionTypeError{Construct: construct, Actual: value.Kind()})
	}
	return b.Val, nil
}
