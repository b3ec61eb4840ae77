package parser

import (
	"plc/interpreter-go/pkg/ast"
)

// parseBlock reads statements up to, but not including, a closing keyword.
func (ctx *parseContext) parseBlock() ([]ast.Statement, error) {
	statements := make([]ast.Statement, 0)
	for !ctx.atBlockEnd() {
		if !ctx.has(0) {
			return nil, ctx.errorf("expected END")
		}
		stmt, err := ctx.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

func (ctx *parseContext) atBlockEnd() bool {
	return ctx.peek("END") || ctx.peek("ELSE") || ctx.peek("CASE") || ctx.peek("DEFAULT")
}

func (ctx *parseContext) parseStatement() (ast.Statement, error) {
	switch {
	case ctx.peek("LET"):
		return ctx.parseDeclaration()
	case ctx.peek("SWITCH"):
		return ctx.parseSwitch()
	case ctx.peek("IF"):
		return ctx.parseIf()
	case ctx.peek("WHILE"):
		return ctx.parseWhile()
	case ctx.peek("RETURN"):
		return ctx.parseReturn()
	default:
		return ctx.parseExpressionOrAssignment()
	}
}

func (ctx *parseContext) parseDeclaration() (*ast.Declaration, error) {
	start := ctx.start()
	ctx.match("LET")
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
	if err := ctx.expect(";", "';' after declaration"); err != nil {
		return nil, err
	}
	return finish(ctx, ast.NewDeclaration(name, typeName, value), start), nil
}

func (ctx *parseContext) parseSwitch() (*ast.Switch, error) {
	start := ctx.start()
	ctx.match("SWITCH")
	condition, err := ctx.parseExpression()
	if err != nil {
		return nil, err
	}
	cases := make([]*ast.Case, 0)
	for ctx.peek("CASE") {
		caseStart := ctx.start()
		ctx.match("CASE")
		value, err := ctx.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := ctx.expect(":", "':' after case value"); err != nil {
			return nil, err
		}
		body, err := ctx.parseBlock()
		if err != nil {
			return nil, err
		}
		cases = append(cases, finish(ctx, ast.NewCase(value, body), caseStart))
	}
	defaultStart := ctx.start()
	if err := ctx.expect("DEFAULT", "CASE or DEFAULT in SWITCH"); err != nil {
		return nil, err
	}
	body, err := ctx.parseBlock()
	if err != nil {
		return nil, err
	}
	cases = append(cases, finish(ctx, ast.NewCase(nil, body), defaultStart))
	if err := ctx.expect("END", "END after SWITCH"); err != nil {
		return nil, err
	}
	return finish(ctx, ast.NewSwitch(condition, cases), start), nil
}

func (ctx *parseContext) parseIf() (*ast.If, error) {
	start := ctx.start()
	ctx.match("IF")
	condition, err := ctx.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := ctx.expect("DO", "DO after IF condition"); err != nil {
		return nil, err
	}
	then, err := ctx.parseBlock()
	if err != nil {
		return nil, err
	}
	otherwise := make([]ast.Statement, 0)
	if ctx.match("ELSE") {
		if otherwise, err = ctx.parseBlock(); err != nil {
			return nil, err
		}
	}
	if err := ctx.expect("END", "END after IF"); err != nil {
		return nil, err
	}
	return finish(ctx, ast.NewIf(condition, then, otherwise), start), nil
}

func (ctx *parseContext) parseWhile() (*ast.While, error) {
	start := ctx.start()
	ctx.match("WHILE")
	condition, err := ctx.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := ctx.expect("DO", "DO after WHILE condition"); err != nil {
		return nil, err
	}
	body, err := ctx.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := ctx.expect("END", "END after WHILE"); err != nil {
		return nil, err
	}
	return finish(ctx, ast.NewWhile(condition, body), start), nil
}

func (ctx *parseContext) parseReturn() (*ast.Return, error) {
	start := ctx.start()
	ctx.match("RETURN")
	value, err := ctx.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := ctx.expect(";", "';' after RETURN value"); err != nil {
		return nil, err
	}
	return finish(ctx, ast.NewReturn(value), start), nil
}

// parseExpressionOrAssignment leaves receiver validation to the checker.
func (ctx *parseContext) parseExpressionOrAssignment() (ast.Statement, error) {
	start := ctx.start()
	expr, err := ctx.parseExpression()
	if err != nil {
		return nil, err
	}
	if ctx.match("=") {
		value, err := ctx.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := ctx.expect(";", "';' after assignment"); err != nil {
			return nil, err
		}
		return finish(ctx, ast.NewAssignment(expr, value), start), nil
	}
	if err := ctx.expect(";", "';' after expression"); err != nil {
		return nil, err
	}
	return finish(ctx, ast.NewExpressionStatement(expr), start), nil
}
