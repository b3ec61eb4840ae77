package interpreter

import (
	"bytes"
	"errors"
	"testing"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
)

// run executes src and returns main's result with everything print wrote.
func run(t *testing.T, src *ast.Source, opts ...Option) (runtime.Value, string, error) {
	t.Helper()
	var out bytes.Buffer
	interp := New(append([]Option{WithStdout(&out)}, opts...)...)
	value, err := interp.Execute(src)
	return value, out.String(), err
}

// mainBody wraps statements in a main/0 function with no globals.
func mainBody(body ...ast.Statement) *ast.Source {
	return ast.Src(nil, ast.Fn("main", nil, "Integer", body...))
}

func mustRun(t *testing.T, src *ast.Source, opts ...Option) (runtime.Value, string) {
	t.Helper()
	value, out, err := run(t, src, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return value, out
}

// requireRuntimeError asserts err wraps a *RuntimeError and a T.
func requireRuntimeError[T error](t *testing.T, err error) T {
	t.Helper()
	var target T
	if err == nil {
		t.Fatalf("expected %T, got nil", target)
	}
	var wrapped *RuntimeError
	if !errors.As(err, &wrapped) {
		t.Fatalf("expected *RuntimeError wrapper, got %T (%v)", err, err)
	}
	if !errors.As(err, &target) {
		t.Fatalf("expected %T, got %v", target, err)
	}
	return target
}

func evaluate(t *testing.T, expr ast.Expression, opts ...Option) (runtime.Value, error) {
	t.Helper()
	interp := New(opts...)
	return interp.Evaluate(interp.GlobalEnvironment().Extend(), expr)
}

func requireValue(t *testing.T, got, want runtime.Value) {
	t.Helper()
	if !runtime.Equal(got, want) {
		t.Fatalf("expected %s, got %s", runtime.Format(want), runtime.Format(got))
	}
}
