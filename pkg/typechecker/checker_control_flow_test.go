package typechecker

import (
	"testing"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/types"
)

func TestSwitchStructure(t *testing.T) {
	valueOnLast := ast.Sw(ast.Int(1),
		ast.CaseOf(ast.Int(1), ast.Print(ast.Str("one"))),
		ast.CaseOf(ast.Int(2), ast.Print(ast.Str("two"))),
	)
	structure := requireError[*SwitchStructureError](t, New().Check(program(nil, mainReturning(valueOnLast))))
	if structure.Index != 1 {
		t.Fatalf("expected last case to be reported, got %d", structure.Index)
	}

	missingValue := ast.Sw(ast.Int(1),
		ast.Default(ast.Print(ast.Str("early"))),
		ast.Default(ast.Print(ast.Str("late"))),
	)
	structure = requireError[*SwitchStructureError](t, New().Check(program(nil, mainReturning(missingValue))))
	if structure.Index != 0 {
		t.Fatalf("expected first case to be reported, got %d", structure.Index)
	}

	noCases := ast.Sw(ast.Int(1))
	requireError[*SwitchStructureError](t, New().Check(program(nil, mainReturning(noCases))))
}

func TestSwitchCaseValuesMatchCondition(t *testing.T) {
	valid := ast.Sw(ast.Chr('a'),
		ast.CaseOf(ast.Chr('a'), ast.Print(ast.Str("a"))),
		ast.CaseOf(ast.Chr('b')),
		ast.Default(),
	)
	requireOK(t, New().Check(program(nil, mainReturning(valid))))

	mismatch := ast.Sw(ast.Int(1),
		ast.CaseOf(ast.Str("1")),
		ast.Default(),
	)
	requireError[*types.TypeMismatchError](t, New().Check(program(nil, mainReturning(mismatch))))
}

func TestSwitchCaseBodiesAreScoped(t *testing.T) {
	sw := ast.Sw(ast.Int(1),
		ast.CaseOf(ast.Int(1), ast.Let("y", "", ast.Int(1))),
		ast.Default(ast.Let("y", "", ast.Str("again"))),
	)
	requireOK(t, New().Check(program(nil, mainReturning(sw))))

	inner := ast.Sw(ast.Int(1), ast.Default(ast.Let("y", "", ast.Int(1))))
	leak := program(nil, mainReturning(inner, ast.Print(ast.ID("y"))))
	requireError[*runtime.UnresolvedNameError](t, New().Check(leak))
}

func TestIfConditionAndBlocks(t *testing.T) {
	notBoolean := ast.IfStmt(ast.Int(1), ast.Block(ast.Print(ast.Str("x"))))
	requireError[*types.TypeMismatchError](t, New().Check(program(nil, mainReturning(notBoolean))))

	empty := ast.IfStmt(ast.Bool(true), ast.Block(), ast.Print(ast.Str("else")))
	blockErr := requireError[*EmptyBlockError](t, New().Check(program(nil, mainReturning(empty))))
	if blockErr.Construct != "IF" {
		t.Fatalf("unexpected construct %q", blockErr.Construct)
	}

	branches := ast.IfStmt(ast.Bool(true),
		ast.Block(ast.Let("v", "", ast.Int(1))),
		ast.Let("v", "", ast.Str("other")),
	)
	requireOK(t, New().Check(program(nil, mainReturning(branches))))
}

func TestWhileConditionMustBeBoolean(t *testing.T) {
	loop := ast.WhileStmt(ast.Str("yes"), ast.Print(ast.Int(1)))
	requireError[*types.TypeMismatchError](t, New().Check(program(nil, mainReturning(loop))))

	ok := ast.WhileStmt(ast.Bin("<", ast.ID("i"), ast.Int(3)),
		ast.Assign(ast.ID("i"), ast.Bin("+", ast.ID("i"), ast.Int(1))))
	requireOK(t, New().Check(program(nil, mainReturning(ast.Let("i", "", ast.Int(0)), ok))))
}

func TestReturnTypeCheckedAtEveryReturn(t *testing.T) {
	nested := ast.Fn("f", nil, "Integer",
		ast.WhileStmt(ast.Bool(true),
			ast.IfStmt(ast.Bool(false), ast.Block(ast.Ret(ast.Str("oops"))))),
		ast.Ret(ast.Int(1)),
	)
	requireError[*types.TypeMismatchError](t, New().Check(program(nil, nested, mainReturning())))

	implicitNil := ast.Fn("g", nil, "", ast.Ret(ast.Int(1)))
	requireError[*types.TypeMismatchError](t, New().Check(program(nil, implicitNil, mainReturning())))

	nilReturn := ast.Fn("h", nil, "", ast.Ret(ast.Nil()))
	requireOK(t, New().Check(program(nil, nilReturn, mainReturning())))
}

func TestStatementForms(t *testing.T) {
	bare := ast.ExprStmt(ast.Bin("+", ast.Int(1), ast.Int(2)))
	requireError[*InvalidStatementError](t, New().Check(program(nil, mainReturning(bare))))

	badTarget := ast.Assign(ast.CallExpr("print", ast.Int(1)), ast.Int(2))
	requireError[*InvalidAssignmentTargetError](t, New().Check(program(nil, mainReturning(badTarget))))

	strayCase := ast.CaseOf(ast.Int(1))
	requireError[*InvalidStatementError](t, New().Check(program(nil, mainReturning(strayCase))))
}

func TestAssignmentTypes(t *testing.T) {
	globals := []*ast.Global{
		ast.Var("n", "Integer", ast.Int(0)),
		ast.Val("fixed", "String", ast.Str("x")),
		ast.Lst("xs", "Integer", ast.Int(1)),
	}
	requireOK(t, New().Check(program(globals, mainReturning(
		ast.Assign(ast.ID("n"), ast.Int(5)),
		ast.Assign(ast.Idx("xs", ast.Int(0)), ast.Int(7)),
		ast.Assign(ast.ID("fixed"), ast.Str("checked at runtime")),
	))))

	requireError[*types.TypeMismatchError](t, New().Check(program(globals, mainReturning(
		ast.Assign(ast.Idx("xs", ast.Int(0)), ast.Str("seven")),
	))))
	requireError[*types.TypeMismatchError](t, New().Check(program(globals, mainReturning(
		ast.Assign(ast.Idx("xs", ast.Str("0")), ast.Int(7)),
	))))
}
