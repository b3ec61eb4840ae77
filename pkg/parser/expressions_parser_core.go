package parser

import (
	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/lexer"
)

func (ctx *parseContext) parseExpression() (ast.Expression, error) {
	return ctx.parseLogical()
}

// Each precedence level is left associative.

func (ctx *parseContext) parseLogical() (ast.Expression, error) {
	return ctx.parseBinaryLevel(ctx.parseComparison, "&&", "||")
}

func (ctx *parseContext) parseComparison() (ast.Expression, error) {
	return ctx.parseBinaryLevel(ctx.parseAdditive, "<", ">", "==", "!=")
}

func (ctx *parseContext) parseAdditive() (ast.Expression, error) {
	return ctx.parseBinaryLevel(ctx.parseMultiplicative, "+", "-")
}

func (ctx *parseContext) parseMultiplicative() (ast.Expression, error) {
	return ctx.parseBinaryLevel(ctx.parsePrimary, "*", "/", "^")
}

func (ctx *parseContext) parseBinaryLevel(operand func() (ast.Expression, error), operators ...string) (ast.Expression, error) {
	start := ctx.start()
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		operator, ok := ctx.matchOperator(operators)
		if !ok {
			return left, nil
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = finish(ctx, ast.NewBinary(operator, left, right), start)
	}
}

func (ctx *parseContext) matchOperator(operators []string) (string, bool) {
	if !ctx.peek(lexer.Operator) {
		return "", false
	}
	literal := ctx.get(0).Literal
	for _, op := range operators {
		if literal == op {
			ctx.index++
			return op, true
		}
	}
	return "", false
}

func (ctx *parseContext) parsePrimary() (ast.Expression, error) {
	start := ctx.start()
	if !ctx.has(0) {
		return nil, ctx.errorf("expected expression")
	}
	tok := ctx.get(0)
	switch tok.Kind {
	case lexer.Integer, lexer.Decimal, lexer.Character, lexer.String:
		lit, err := ctx.parseLiteral(tok)
		if err != nil {
			return nil, err
		}
		ctx.index++
		return finish(ctx, lit, start), nil
	case lexer.Identifier:
		return ctx.parseIdentifierExpression(start)
	}
	switch {
	case ctx.match("("):
		inner, err := ctx.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := ctx.expect(")", "')' to close group"); err != nil {
			return nil, err
		}
		return finish(ctx, ast.NewGroup(inner), start), nil
	case ctx.match("["):
		return ctx.parseListTail(start)
	}
	return nil, ctx.errorf("expected expression")
}

func (ctx *parseContext) parseIdentifierExpression(start int) (ast.Expression, error) {
	name := ctx.get(0).Literal
	ctx.index++
	switch name {
	case "NIL":
		return finish(ctx, ast.NewLiteral(nil), start), nil
	case "TRUE":
		return finish(ctx, ast.NewLiteral(true), start), nil
	case "FALSE":
		return finish(ctx, ast.NewLiteral(false), start), nil
	}
	if ctx.match("(") {
		args, err := ctx.parseArguments(")", "function call")
		if err != nil {
			return nil, err
		}
		return finish(ctx, ast.NewCall(name, args), start), nil
	}
	if ctx.match("[") {
		offset, err := ctx.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := ctx.expect("]", "']' after index"); err != nil {
			return nil, err
		}
		return finish(ctx, ast.NewAccess(name, offset), start), nil
	}
	return finish(ctx, ast.NewAccess(name, nil), start), nil
}

// parseListTail parses the elements of a list literal after its '['.
func (ctx *parseContext) parseListTail(start int) (*ast.ListLiteral, error) {
	elements, err := ctx.parseArguments("]", "list literal")
	if err != nil {
		return nil, err
	}
	return finish(ctx, ast.NewListLiteral(elements), start), nil
}

// parseArguments reads a comma separated expression list through closer.
// Leading and trailing commas are rejected.
func (ctx *parseContext) parseArguments(closer, what string) ([]ast.Expression, error) {
	out := make([]ast.Expression, 0)
	if ctx.match(closer) {
		return out, nil
	}
	for {
		expr, err := ctx.parseExpression()
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
		if ctx.match(closer) {
			return out, nil
		}
		if err := ctx.expect(",", "',' or '"+closer+"' in "+what); err != nil {
			return nil, err
		}
	}
}
