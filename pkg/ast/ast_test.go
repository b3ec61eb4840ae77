package ast

import (
	"strings"
	"testing"

	"github.com/oarkflow/json"
)

func TestDSLBuildsTypedNodes(t *testing.T) {
	fn := Fn("main", nil, "Integer",
		Let("x", "", Bin("+", Int(1), Grp(ID("y")))),
		Sw(ID("x"),
			CaseOf(Int(1), Print(Str("one"))),
			Default(Ret(Int(0))),
		),
		WhileStmt(Bool(true), Assign(Idx("xs", Int(0)), Chr('a'))),
	)
	src := Src([]*Global{Val("y", "Integer", Int(2)), Lst("xs", "Character")}, fn)

	if src.NodeType() != NodeSource || len(src.Globals) != 2 || len(src.Functions) != 1 {
		t.Fatalf("unexpected source %+v", src)
	}
	if src.Globals[0].Mutable || !src.Globals[1].Mutable {
		t.Fatalf("VAL must be immutable and LIST mutable")
	}
	if _, ok := src.Globals[1].Value.(*ListLiteral); !ok {
		t.Fatalf("LIST global should hold a list literal, got %T", src.Globals[1].Value)
	}

	wantTypes := []NodeType{NodeDeclaration, NodeSwitch, NodeWhile}
	for i, stmt := range fn.Statements {
		if stmt.NodeType() != wantTypes[i] {
			t.Fatalf("statement %d: expected %s, got %s", i, wantTypes[i], stmt.NodeType())
		}
	}
	sw := fn.Statements[1].(*Switch)
	if sw.Cases[0].IsDefault() || !sw.Cases[1].IsDefault() {
		t.Fatalf("only the last case should be the default")
	}
	assign := fn.Statements[2].(*While).Statements[0].(*Assignment)
	if access := assign.Receiver.(*Access); access.Name != "xs" || access.Offset == nil {
		t.Fatalf("unexpected receiver %+v", access)
	}
}

func TestSpansAndResolvedTypes(t *testing.T) {
	lit := Int(1)
	if !lit.Span().IsZero() {
		t.Fatalf("DSL nodes start without a span")
	}
	span := Span{Start: Position{Offset: 4, Line: 1, Column: 5}, End: Position{Offset: 5, Line: 1, Column: 6}}
	lit.SetSpan(span)
	if lit.Span() != span || lit.Span().IsZero() {
		t.Fatalf("span not recorded: %+v", lit.Span())
	}
	if lit.ResolvedType() != nil {
		t.Fatalf("resolved type must be nil before analysis")
	}
}

func TestJSONShape(t *testing.T) {
	src := Src([]*Global{Var("name", "String", Str("plc"))},
		Fn("main", []Param{P("n", "Integer")}, "", Ret(Nil())),
	)
	data, err := json.Marshal(src)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`"type":"Source"`,
		`"name":"name"`,
		`"typeName":"String"`,
		`"parameters":["n"]`,
		`"type":"Return"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("JSON %s missing %s", out, want)
		}
	}
	if strings.Contains(out, "returnTypeName") {
		t.Fatalf("empty return type should be omitted: %s", out)
	}
}
