package parser

import (
	"math/big"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/lexer"
)

// parseLiteral converts a literal token into its node without consuming it.
// Range checks belong to the type checker, so every well-formed number is kept
// at full precision here.
func (ctx *parseContext) parseLiteral(tok lexer.Token) (*ast.Literal, error) {
	switch tok.Kind {
	case lexer.Integer:
		value, ok := new(big.Int).SetString(tok.Literal, 10)
		if !ok {
			return nil, ctx.errorAt(tok.Offset, "invalid integer literal '"+tok.Literal+"'", false)
		}
		return ast.NewLiteral(value), nil
	case lexer.Decimal:
		value, err := decimal.NewFromString(tok.Literal)
		if err != nil {
			return nil, ctx.errorAt(tok.Offset, "invalid decimal literal '"+tok.Literal+"'", false)
		}
		return ast.NewLiteral(value), nil
	case lexer.Character:
		body := lexer.Unescape(tok.Literal[1 : len(tok.Literal)-1])
		r, _ := utf8.DecodeRuneInString(body)
		return ast.NewLiteral(r), nil
	case lexer.String:
		return ast.NewLiteral(lexer.Unescape(tok.Literal[1 : len(tok.Literal)-1])), nil
	default:
		return nil, ctx.errorAt(tok.Offset, "expected literal", false)
	}
}
