package generator

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"plc/interpreter-go/pkg/ast"
)

func (g *generator) expression(node ast.Expression) {
	switch n := node.(type) {
	case *ast.Literal:
		g.literal(n)
	case *ast.Group:
		g.print("(")
		g.expression(n.Expression)
		g.print(")")
	case *ast.Binary:
		if n.Operator == "^" {
			g.print("Math.pow(")
			g.expression(n.Left)
			g.print(", ")
			g.expression(n.Right)
			g.print(")")
			return
		}
		g.expression(n.Left)
		g.print(" ", n.Operator, " ")
		g.expression(n.Right)
	case *ast.Access:
		g.print(n.Name)
		if n.Offset != nil {
			g.print("[")
			g.expression(n.Offset)
			g.print("]")
		}
	case *ast.Call:
		if n.Function == nil {
			g.fail(n, "call to '%s' has no resolved function", n.Name)
			return
		}
		g.print(n.Function.JvmName, "(")
		g.expressionList(n.Arguments)
		g.print(")")
	case *ast.ListLiteral:
		g.print("{")
		g.expressionList(n.Elements)
		g.print("}")
	case nil:
		g.fail(nil, "missing expression")
	default:
		g.fail(node, "unsupported expression %s", node.NodeType())
	}
}

func (g *generator) expressionList(exprs []ast.Expression) {
	for i, expr := range exprs {
		g.expression(expr)
		if i != len(exprs)-1 {
			g.print(", ")
		}
	}
}

func (g *generator) literal(lit *ast.Literal) {
	switch v := lit.Value.(type) {
	case nil:
		g.print("null")
	case bool:
		if v {
			g.print("true")
		} else {
			g.print("false")
		}
	case *big.Int:
		g.print(v.String())
	case decimal.Decimal:
		// Keep the digits as written, so 1.0 stays 1.0.
		if v.Exponent() < 0 {
			g.print(v.StringFixed(-v.Exponent()))
		} else {
			g.print(v.String())
		}
	case rune:
		g.print("'", escapeJava(string(v), '\''), "'")
	case string:
		g.print("\"", escapeJava(v, '"'), "\"")
	default:
		g.fail(lit, "unsupported literal %T", lit.Value)
	}
}

// escapeJava renders s as the body of a Java literal delimited by quote.
func escapeJava(s string, quote rune) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case quote:
			b.WriteRune('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
