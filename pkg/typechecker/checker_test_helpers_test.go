package typechecker

import (
	"errors"
	"testing"

	"plc/interpreter-go/pkg/ast"
)

// mainReturning wraps body in `FUN main(): Integer DO body RETURN 0; END`.
func mainReturning(body ...ast.Statement) *ast.Function {
	body = append(body, ast.Ret(ast.Int(0)))
	return ast.Fn("main", nil, "Integer", body...)
}

func program(globals []*ast.Global, functions ...*ast.Function) *ast.Source {
	return ast.Src(globals, functions...)
}

func requireError[T error](t *testing.T, err error) T {
	t.Helper()
	var target T
	if err == nil {
		t.Fatalf("expected %T, got success", target)
	}
	if !errors.As(err, &target) {
		t.Fatalf("expected %T, got %v", target, err)
	}
	var diag *Diagnostic
	if !errors.As(err, &diag) {
		t.Fatalf("expected error to be wrapped in a Diagnostic, got %T", err)
	}
	return target
}

func requireOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
