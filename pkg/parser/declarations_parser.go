package parser

import (
	"plc/interpreter-go/pkg/ast"
)

func (ctx *parseContext) parseSource() (*ast.Source, error) {
	start := ctx.start()
	globals := make([]*ast.Global, 0)
	functions := make([]*ast.Function, 0)
	for ctx.peek("LIST") || ctx.peek("VAR") || ctx.peek("VAL") {
		global, err := ctx.parseGlobal()
		if err != nil {
			return nil, err
		}
		globals = append(globals, global)
	}
	for ctx.peek("FUN") {
		fn, err := ctx.parseFunction()
		if err != nil {
			return nil, err
		}
		functions = append(functions, fn)
	}
	return finish(ctx, ast.NewSource(globals, functions), start), nil
}

// parseGlobal parses LIST, VAR, and VAL declarations including the
// terminating semicolon.
func (ctx *parseContext) parseGlobal() (*ast.Global, error) {
	start := ctx.start()
	var (
		global *ast.Global
		err    error
	)
	switch {
	case ctx.match("LIST"):
		global, err = ctx.parseList()
	case ctx.match("VAR"):
		global, err = ctx.parseMutable()
	case ctx.match("VAL"):
		global, err = ctx.parseImmutable()
	default:
		return nil, ctx.errorf("expected LIST, VAR, or VAL")
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.expect(";", "';' after global declaration"); err != nil {
		return nil, err
	}
	return finish(ctx, global, start), nil
}

func (ctx *parseContext) parseList() (*ast.Global, error) {
	name, typeName, err := ctx.parseBinding("list name")
	if err != nil {
		return nil, err
	}
	if err := ctx.expect("=", "'=' after list name"); err != nil {
		return nil, err
	}
	listStart := ctx.start()
	if err := ctx.expect("[", "'[' to open list"); err != nil {
		return nil, err
	}
	list, err := ctx.parseListTail(listStart)
	if err != nil {
		return nil, err
	}
	return ast.NewGlobal(name, typeName, true, list), nil
}

func (ctx *parseContext) parseMutable() (*ast.Global, error) {
	name, typeName, err := ctx.parseBinding("variable name")
	if err != nil {
		return nil, err
	}
	var value ast.Expression
	if ctx.match("=") {
		if value, err = ctx.parseExpression(); err != nil {
			return nil, err
		}
	}
	return ast.NewGlobal(name, typeName, true, value), nil
}

func (ctx *parseContext) parseImmutable() (*ast.Global, error) {
	name, typeName, err := ctx.parseBinding("value name")
	if err != nil {
		return nil, err
	}
	if err := ctx.expect("=", "'=' after value name"); err != nil {
		return nil, err
	}
	value, err := ctx.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewGlobal(name, typeName, false, value), nil
}

// parseBinding reads `identifier (':' identifier)?`.
func (ctx *parseContext) parseBinding(what string) (string, string, error) {
	name, err := ctx.expectIdentifier(what)
	if err != nil {
		return "", "", err
	}
	if !ctx.match(":") {
		return name, "", nil
	}
	typeName, err := ctx.expectIdentifier("type name")
	if err != nil {
		return "", "", err
	}
	return name, typeName, nil
}

func (ctx *parseContext) parseFunction() (*ast.Function, error) {
	start := ctx.start()
	if err := ctx.expect("FUN", "FUN"); err != nil {
		return nil, err
	}
	name, err := ctx.expectIdentifier("function name")
	if err != nil {
		return nil, err
	}
	if err := ctx.expect("(", "'(' after function name"); err != nil {
		return nil, err
	}
	parameters := make([]string, 0)
	parameterTypes := make([]string, 0)
	if !ctx.match(")") {
		for {
			param, err := ctx.expectIdentifier("parameter name")
			if err != nil {
				return nil, err
			}
			if err := ctx.expect(":", "':' after parameter name"); err != nil {
				return nil, err
			}
			typeName, err := ctx.expectIdentifier("parameter type")
			if err != nil {
				return nil, err
			}
			parameters = append(parameters, param)
			parameterTypes = append(parameterTypes, typeName)
			if ctx.match(")") {
				break
			}
			if err := ctx.expect(",", "',' or ')' in parameter list"); err != nil {
				return nil, err
			}
		}
	}
	returnType := ""
	if ctx.match(":") {
		if returnType, err = ctx.expectIdentifier("return type"); err != nil {
			return nil, err
		}
	}
	if err := ctx.expect("DO", "DO before function body"); err != nil {
		return nil, err
	}
	body, err := ctx.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := ctx.expect("END", "END after function body"); err != nil {
		return nil, err
	}
	return finish(ctx, ast.NewFunction(name, parameters, parameterTypes, returnType, body), start), nil
}
