package interpreter

import (
	"errors"
	"fmt"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
)

// RuntimeError ties an evaluation fault to the node being executed. The
// classified error is available through errors.As.
type RuntimeError struct {
	Node ast.Node
	Err  error
}

func (e *RuntimeError) Error() string {
	if e.Node == nil || e.Node.Span().IsZero() {
		return fmt.Sprintf("runtime: %v", e.Err)
	}
	start := e.Node.Span().Start
	return fmt.Sprintf("runtime: %d:%d: %v", start.Line, start.Column, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// fail wraps err with node unless a nested frame already did.
func fail(node ast.Node, err error) error {
	var existing *RuntimeError
	if errors.As(err, &existing) {
		return err
	}
	return &RuntimeError{Node: node, Err: err}
}

// ImmutableAssignmentError reports a write to a VAL binding.
type ImmutableAssignmentError struct {
	Name string
}

func (e *ImmutableAssignmentError) Error() string {
	return fmt.Sprintf("cannot assign to immutable variable '%s'", e.Name)
}

// IndexOutOfRangeError reports a list index outside [0, Length).
type IndexOutOfRangeError struct {
	Name   string
	Index  string
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %s out of range for '%s' of length %d", e.Index, e.Name, e.Length)
}

// IndexTypeError reports an index that is not an Integer, or an indexed
// variable that does not hold a list.
type IndexTypeError struct {
	Name   string
	Reason string
}

func (e *IndexTypeError) Error() string {
	return fmt.Sprintf("cannot index '%s': %s", e.Name, e.Reason)
}

// ArithmeticTypeError reports operands whose runtime tags the operator does
// not support.
type ArithmeticTypeError struct {
	Operator string
	Left     runtime.Kind
	Right    runtime.Kind
}

func (e *ArithmeticTypeError) Error() string {
	return fmt.Sprintf("operator '%s' is not defined for %s and %s", e.Operator, e.Left, e.Right)
}

type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string { return "division by zero" }

type NegativeExponentError struct {
	Exponent string
}

func (e *NegativeExponentError) Error() string {
	return fmt.Sprintf("negative exponent %s", e.Exponent)
}

// ConditionTypeError reports a condition that did not evaluate to a Boolean.
type ConditionTypeError struct {
	Construct string
	Actual    runtime.Kind
}

func (e *ConditionTypeError) Error() string {
	return fmt.Sprintf("%s condition must be Boolean, got %s", e.Construct, e.Actual)
}

// StackOverflowError reports a call chain deeper than the configured limit.
type StackOverflowError struct {
	Function string
	Depth    int
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("call depth %d exceeded calling '%s'", e.Depth, e.Function)
}

type MissingEntryPointError struct{}

func (e *MissingEntryPointError) Error() string { return "main/0 function not found" }

type ReturnOutsideFunctionError struct{}

func (e *ReturnOutsideFunctionError) Error() string { return "RETURN outside of a function" }

// InvalidAssignmentTargetError reports a receiver that is not a variable
// access.
type InvalidAssignmentTargetError struct {
	Node ast.NodeType
}

func (e *InvalidAssignmentTargetError) Error() string {
	return fmt.Sprintf("cannot assign to %s", e.Node)
}
