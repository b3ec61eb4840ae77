package parser

import (
	"plc/interpreter-go/pkg/ast"
)

// ParseSource parses a whole program: globals followed by functions.
func ParseSource(source string) (*ast.Source, error) {
	ctx, err := newParseContext(source)
	if err != nil {
		return nil, err
	}
	src, err := ctx.parseSource()
	if err != nil {
		return nil, err
	}
	if ctx.has(0) {
		return nil, ctx.errorf("expected LIST, VAR, VAL, or FUN")
	}
	return src, nil
}

// ParseStatement parses exactly one statement.
func ParseStatement(source string) (ast.Statement, error) {
	ctx, err := newParseContext(source)
	if err != nil {
		return nil, err
	}
	stmt, err := ctx.parseStatement()
	if err != nil {
		return nil, err
	}
	if ctx.has(0) {
		return nil, ctx.errorf("unexpected trailing input")
	}
	return stmt, nil
}

// ParseExpression parses exactly one expression.
func ParseExpression(source string) (ast.Expression, error) {
	ctx, err := newParseContext(source)
	if err != nil {
		return nil, err
	}
	expr, err := ctx.parseExpression()
	if err != nil {
		return nil, err
	}
	if ctx.has(0) {
		return nil, ctx.errorf("unexpected trailing input")
	}
	return expr, nil
}

// ParseEntries parses interactive input: any mix of globals, functions, and
// statements in source order. Each entry is an *ast.Global, an *ast.Function,
// or an ast.Statement.
func ParseEntries(source string) ([]ast.Node, error) {
	ctx, err := newParseContext(source)
	if err != nil {
		return nil, err
	}
	var entries []ast.Node
	for ctx.has(0) {
		switch {
		case ctx.peek("LIST"), ctx.peek("VAR"), ctx.peek("VAL"):
			global, err := ctx.parseGlobal()
			if err != nil {
				return nil, err
			}
			entries = append(entries, global)
		case ctx.peek("FUN"):
			fn, err := ctx.parseFunction()
			if err != nil {
				return nil, err
			}
			entries = append(entries, fn)
		default:
			stmt, err := ctx.parseStatement()
			if err != nil {
				return nil, err
			}
			entries = append(entries, stmt)
		}
	}
	return entries, nil
}
