package typechecker

import (
	"fmt"

	"plc/interpreter-go/pkg/ast"
)

// Diagnostic ties a static error to the node that raised it. The classified
// error is available through errors.As.
type Diagnostic struct {
	Node ast.Node
	Err  error
}

func (d *Diagnostic) Error() string {
	if d.Node == nil || d.Node.Span().IsZero() {
		return fmt.Sprintf("typechecker: %v", d.Err)
	}
	start := d.Node.Span().Start
	return fmt.Sprintf("typechecker: %d:%d: %v", start.Line, start.Column, d.Err)
}

func (d *Diagnostic) Unwrap() error { return d.Err }

// MissingTypeError reports a declaration with neither a type nor an initializer.
type MissingTypeError struct {
	Name string
}

func (e *MissingTypeError) Error() string {
	return fmt.Sprintf("'%s' needs a declared type or an initializer", e.Name)
}

// SwitchStructureError reports a DEFAULT case that is not last, or a last case
// that carries a value.
type SwitchStructureError struct {
	Index   int
	Message string
}

func (e *SwitchStructureError) Error() string {
	return fmt.Sprintf("switch case %d: %s", e.Index, e.Message)
}

// LiteralRangeError reports a numeric literal the target cannot represent.
type LiteralRangeError struct {
	Literal string
	Reason  string
}

func (e *LiteralRangeError) Error() string {
	return fmt.Sprintf("literal %s %s", e.Literal, e.Reason)
}

type UnknownOperatorError struct {
	Operator string
}

func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator '%s'", e.Operator)
}

type MissingEntryPointError struct{}

func (e *MissingEntryPointError) Error() string {
	return "main/0 function not found"
}

// InvalidStatementError reports a statement form that is syntactically
// possible but not allowed, such as a bare non-call expression.
type InvalidStatementError struct {
	Reason string
}

func (e *InvalidStatementError) Error() string {
	return "invalid statement: " + e.Reason
}

type InvalidAssignmentTargetError struct{}

func (e *InvalidAssignmentTargetError) Error() string {
	return "assignment receiver must be a variable or list element"
}

type EmptyBlockError struct {
	Construct string
}

func (e *EmptyBlockError) Error() string {
	return fmt.Sprintf("%s requires at least one statement", e.Construct)
}

type ReturnOutsideFunctionError struct{}

func (e *ReturnOutsideFunctionError) Error() string {
	return "RETURN outside of a function"
}
