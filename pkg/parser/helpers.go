package parser

import (
	"errors"
	"fmt"
	"sort"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/lexer"
)

// Error reports a syntax error. Incomplete is set when the input ended
// before the construct being parsed was closed.
type Error struct {
	Offset     int
	Line       int
	Column     int
	Message    string
	Incomplete bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("parser: %d:%d: %s", e.Line, e.Column, e.Message)
}

// IsIncomplete reports whether err is a syntax error caused by input ending
// early, so more lines could complete it.
func IsIncomplete(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Incomplete
}

// parseContext carries the token stream and source text shared by the rule
// functions. index always points at the next unconsumed token.
type parseContext struct {
	source     string
	tokens     []lexer.Token
	index      int
	lineStarts []int
}

func newParseContext(source string) (*parseContext, error) {
	ctx := &parseContext{source: source, lineStarts: []int{0}}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			ctx.lineStarts = append(ctx.lineStarts, i+1)
		}
	}
	tokens, err := lexer.Lex(source)
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			return nil, ctx.errorAt(lexErr.Offset, lexErr.Message, lexErr.AtEOF)
		}
		return nil, err
	}
	ctx.tokens = tokens
	return ctx, nil
}

func (ctx *parseContext) position(offset int) ast.Position {
	line := sort.Search(len(ctx.lineStarts), func(i int) bool { return ctx.lineStarts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return ast.Position{Offset: offset, Line: line + 1, Column: offset - ctx.lineStarts[line] + 1}
}

func (ctx *parseContext) errorAt(offset int, message string, incomplete bool) *Error {
	pos := ctx.position(offset)
	return &Error{Offset: offset, Line: pos.Line, Column: pos.Column, Message: message, Incomplete: incomplete}
}

// errorf reports a failure at the next token, or at end of input.
func (ctx *parseContext) errorf(format string, args ...any) *Error {
	message := fmt.Sprintf(format, args...)
	if !ctx.has(0) {
		return ctx.errorAt(len(ctx.source), message+", found end of input", true)
	}
	tok := ctx.tokens[ctx.index]
	return ctx.errorAt(tok.Offset, fmt.Sprintf("%s, found '%s'", message, tok.Literal), false)
}

func (ctx *parseContext) has(offset int) bool { return ctx.index+offset < len(ctx.tokens) }

func (ctx *parseContext) get(offset int) lexer.Token { return ctx.tokens[ctx.index+offset] }

// peek reports whether the upcoming tokens match patterns. A lexer.Kind
// matches the token kind; a string matches the literal text.
func (ctx *parseContext) peek(patterns ...any) bool {
	for i, pattern := range patterns {
		if !ctx.has(i) {
			return false
		}
		tok := ctx.get(i)
		switch p := pattern.(type) {
		case lexer.Kind:
			if tok.Kind != p {
				return false
			}
		case string:
			if tok.Literal != p || tok.Kind == lexer.String || tok.Kind == lexer.Character {
				return false
			}
		default:
			panic(fmt.Sprintf("parser: invalid pattern %T", pattern))
		}
	}
	return true
}

// match is peek that also consumes the matched tokens.
func (ctx *parseContext) match(patterns ...any) bool {
	if !ctx.peek(patterns...) {
		return false
	}
	ctx.index += len(patterns)
	return true
}

func (ctx *parseContext) expect(literal, what string) error {
	if ctx.match(literal) {
		return nil
	}
	return ctx.errorf("expected %s", what)
}

func (ctx *parseContext) expectIdentifier(what string) (string, error) {
	if !ctx.peek(lexer.Identifier) {
		return "", ctx.errorf("expected %s", what)
	}
	name := ctx.get(0).Literal
	ctx.index++
	return name, nil
}

// start returns the offset of the next token, the beginning of the node
// about to be parsed.
func (ctx *parseContext) start() int {
	if ctx.has(0) {
		return ctx.get(0).Offset
	}
	return len(ctx.source)
}

type spanned interface {
	SetSpan(ast.Span)
}

// finish stamps node with a span from start to the end of the last consumed token.
func finish[T spanned](ctx *parseContext, node T, start int) T {
	end := start
	if ctx.index > 0 {
		end = ctx.tokens[ctx.index-1].End()
	}
	node.SetSpan(ast.Span{Start: ctx.position(start), End: ctx.position(end)})
	return node
}
