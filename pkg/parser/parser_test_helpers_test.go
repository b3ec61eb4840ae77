package parser

import (
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"plc/interpreter-go/pkg/ast"
)

func checkSpan(t testing.TB, label string, span ast.Span, startLine, startCol, endLine, endCol int) {
	t.Helper()
	if span.Start.Line != startLine || span.Start.Column != startCol {
		t.Fatalf("%s start span mismatch: got (%d,%d), want (%d,%d)", label, span.Start.Line, span.Start.Column, startLine, startCol)
	}
	if span.End.Line != endLine || span.End.Column != endCol {
		t.Fatalf("%s end span mismatch: got (%d,%d), want (%d,%d)", label, span.End.Line, span.End.Column, endLine, endCol)
	}
}

// render prints a span-free form of a tree so parsed output can be compared
// with trees built by the ast DSL.
func render(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Source:
		parts := []string{"source"}
		for _, g := range n.Globals {
			parts = append(parts, render(g))
		}
		for _, f := range n.Functions {
			parts = append(parts, render(f))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *ast.Global:
		keyword := "VAL"
		if n.Mutable {
			keyword = "VAR"
		}
		return fmt.Sprintf("(%s %s:%s %s)", keyword, n.Name, n.TypeName, renderOptional(n.Value))
	case *ast.Function:
		params := make([]string, len(n.Parameters))
		for i := range n.Parameters {
			params[i] = n.Parameters[i] + ":" + n.ParameterTypeNames[i]
		}
		return fmt.Sprintf("(FUN %s(%s):%s %s)", n.Name, strings.Join(params, ","), n.ReturnTypeName, renderBlock(n.Statements))
	case *ast.ExpressionStatement:
		return fmt.Sprintf("(expr %s)", render(n.Expression))
	case *ast.Declaration:
		return fmt.Sprintf("(LET %s:%s %s)", n.Name, n.TypeName, renderOptional(n.Value))
	case *ast.Assignment:
		return fmt.Sprintf("(= %s %s)", render(n.Receiver), render(n.Value))
	case *ast.If:
		return fmt.Sprintf("(IF %s %s %s)", render(n.Condition), renderBlock(n.Then), renderBlock(n.Else))
	case *ast.Switch:
		parts := []string{"SWITCH", render(n.Condition)}
		for _, c := range n.Cases {
			parts = append(parts, render(c))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *ast.Case:
		if n.IsDefault() {
			return fmt.Sprintf("(DEFAULT %s)", renderBlock(n.Statements))
		}
		return fmt.Sprintf("(CASE %s %s)", render(n.Value), renderBlock(n.Statements))
	case *ast.While:
		return fmt.Sprintf("(WHILE %s %s)", render(n.Condition), renderBlock(n.Statements))
	case *ast.Return:
		return fmt.Sprintf("(RETURN %s)", render(n.Value))
	case *ast.Literal:
		switch v := n.Value.(type) {
		case nil:
			return "NIL"
		case bool:
			return strings.ToUpper(fmt.Sprint(v))
		case *big.Int:
			return v.String()
		case decimal.Decimal:
			return v.String() + "d"
		case rune:
			return fmt.Sprintf("%q", v)
		case string:
			return fmt.Sprintf("%q", v)
		}
		return fmt.Sprintf("?%T", n.Value)
	case *ast.Group:
		return fmt.Sprintf("(group %s)", render(n.Expression))
	case *ast.Binary:
		return fmt.Sprintf("(%s %s %s)", n.Operator, render(n.Left), render(n.Right))
	case *ast.Access:
		if n.Offset != nil {
			return fmt.Sprintf("%s[%s]", n.Name, render(n.Offset))
		}
		return n.Name
	case *ast.Call:
		return fmt.Sprintf("%s(%s)", n.Name, renderList(n.Arguments))
	case *ast.ListLiteral:
		return "[" + renderList(n.Elements) + "]"
	}
	return fmt.Sprintf("?%T", node)
}

func renderOptional(expr ast.Expression) string {
	if expr == nil {
		return "-"
	}
	return render(expr)
}

func renderBlock(stmts []ast.Statement) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = render(s)
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func renderList(exprs []ast.Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = render(e)
	}
	return strings.Join(parts, ", ")
}

func assertParsesTo(t *testing.T, label string, got, want ast.Node) {
	t.Helper()
	if g, w := render(got), render(want); g != w {
		t.Fatalf("%s: tree mismatch\n got: %s\nwant: %s", label, g, w)
	}
}
