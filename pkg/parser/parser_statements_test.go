package parser

import (
	"testing"

	"plc/interpreter-go/pkg/ast"
)

func TestParseStatements(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   ast.Statement
	}{
		{"ExpressionStatement", "print(x);", ast.Print(ast.ID("x"))},
		{"DeclarationBare", "LET x: Integer;", ast.Let("x", "Integer", nil)},
		{"DeclarationInferred", "LET x = 1;", ast.Let("x", "", ast.Int(1))},
		{"Assignment", "x = y + 1;", ast.Assign(ast.ID("x"), ast.Bin("+", ast.ID("y"), ast.Int(1)))},
		{"IndexedAssignment", "xs[0] = 2;", ast.Assign(ast.Idx("xs", ast.Int(0)), ast.Int(2))},
		{"If", "IF c DO f(); END", ast.IfStmt(ast.ID("c"), ast.Block(ast.ExprStmt(ast.CallExpr("f"))))},
		{"IfElse", "IF c DO f(); ELSE g(); END",
			ast.IfStmt(ast.ID("c"), ast.Block(ast.ExprStmt(ast.CallExpr("f"))), ast.ExprStmt(ast.CallExpr("g")))},
		{"While", "WHILE i < 3 DO i = i + 1; END",
			ast.WhileStmt(ast.Bin("<", ast.ID("i"), ast.Int(3)),
				ast.Assign(ast.ID("i"), ast.Bin("+", ast.ID("i"), ast.Int(1))))},
		{"Return", "RETURN 0;", ast.Ret(ast.Int(0))},
		{"Switch", "SWITCH x CASE 1: f(); CASE 2: DEFAULT g(); END",
			ast.Sw(ast.ID("x"),
				ast.CaseOf(ast.Int(1), ast.ExprStmt(ast.CallExpr("f"))),
				ast.CaseOf(ast.Int(2)),
				ast.Default(ast.ExprStmt(ast.CallExpr("g"))))},
	}
	for _, tc := range cases {
		got, err := ParseStatement(tc.source)
		if err != nil {
			t.Fatalf("%s: parse error %v", tc.name, err)
		}
		assertParsesTo(t, tc.name, got, tc.want)
	}
}

func TestParseStatementErrors(t *testing.T) {
	cases := []struct {
		name       string
		source     string
		incomplete bool
	}{
		{"MissingSemicolon", "f() g();", false},
		{"MissingDo", "IF c f(); END", false},
		{"UnclosedIf", "IF c DO f();", true},
		{"SwitchWithoutDefault", "SWITCH x CASE 1: f(); END", false},
		{"UnclosedWhile", "WHILE TRUE DO", true},
	}
	for _, tc := range cases {
		_, err := ParseStatement(tc.source)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if IsIncomplete(err) != tc.incomplete {
			t.Fatalf("%s: expected incomplete=%v, got %v", tc.name, tc.incomplete, err)
		}
	}
}

func TestParseSource(t *testing.T) {
	source := `LIST xs: Integer = [1, 2];
VAR count = 0;
VAL name: String = "plc";
FUN add(a: Integer, b: Integer): Integer DO
    RETURN a + b;
END
FUN main(): Integer DO
    print(add(xs[0], xs[1]));
    RETURN 0;
END
`
	got, err := ParseSource(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := ast.Src(
		[]*ast.Global{
			ast.Lst("xs", "Integer", ast.Int(1), ast.Int(2)),
			ast.Var("count", "", ast.Int(0)),
			ast.Val("name", "String", ast.Str("plc")),
		},
		ast.Fn("add", []ast.Param{ast.P("a", "Integer"), ast.P("b", "Integer")}, "Integer",
			ast.Ret(ast.Bin("+", ast.ID("a"), ast.ID("b")))),
		ast.Fn("main", nil, "Integer",
			ast.Print(ast.CallExpr("add", ast.Idx("xs", ast.Int(0)), ast.Idx("xs", ast.Int(1)))),
			ast.Ret(ast.Int(0))),
	)
	assertParsesTo(t, "source", got, want)
	checkSpan(t, "first global", got.Globals[0].Span(), 1, 1, 1, 27)
	checkSpan(t, "main", got.Functions[1].Span(), 7, 1, 10, 4)
}

func TestParseSourceRejectsGlobalsAfterFunctions(t *testing.T) {
	_, err := ParseSource("FUN main() DO END\nVAR x = 1;")
	perr, ok := err.(*Error)
	if !ok || perr.Line != 2 || perr.Column != 1 {
		t.Fatalf("expected error at 2:1, got %v", err)
	}
}

func TestParseEntriesMixesDeclarationsAndStatements(t *testing.T) {
	entries, err := ParseEntries("VAR x = 1; FUN f(): Integer DO RETURN x; END print(f());")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if _, ok := entries[0].(*ast.Global); !ok {
		t.Fatalf("expected global first, got %T", entries[0])
	}
	if _, ok := entries[1].(*ast.Function); !ok {
		t.Fatalf("expected function second, got %T", entries[1])
	}
	if _, ok := entries[2].(*ast.ExpressionStatement); !ok {
		t.Fatalf("expected statement third, got %T", entries[2])
	}
}
