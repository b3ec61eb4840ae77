package driver

import (
	"errors"
	"fmt"
	"strings"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/interpreter"
	"plc/interpreter-go/pkg/parser"
	"plc/interpreter-go/pkg/typechecker"
)

// DescribeError formats err for CLI output. Errors that carry a source
// position get a snippet of source with a caret under the offending column:
//
//	typechecker: 2:8: expected Boolean, received Integer
//	   1 | FUN main(): Integer DO
//	   2 |     IF 1 DO
//	     |        ^
//	   3 |         RETURN 0;
func DescribeError(err error, source string) string {
	if err == nil {
		return ""
	}
	line, column, ok := errorPosition(err)
	if !ok {
		return err.Error()
	}
	return err.Error() + "\n" + snippet(source, line, column)
}

func errorPosition(err error) (int, int, bool) {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return perr.Line, perr.Column, perr.Line > 0
	}
	var diag *typechecker.Diagnostic
	if errors.As(err, &diag) {
		return nodePosition(diag.Node)
	}
	var rerr *interpreter.RuntimeError
	if errors.As(err, &rerr) {
		return nodePosition(rerr.Node)
	}
	return 0, 0, false
}

func nodePosition(node ast.Node) (int, int, bool) {
	if node == nil || node.Span().IsZero() {
		return 0, 0, false
	}
	start := node.Span().Start
	return start.Line, start.Column, true
}

// snippet shows at most one line of context on each side. Coordinates are
// 1-based and clamped to the source.
func snippet(source string, line, column int) string {
	lines := strings.Split(source, "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if column < 1 {
		column = 1
	}
	var b strings.Builder
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^", strings.Repeat(" ", column-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "\n%4d | %s", line+1, lines[line])
	}
	return b.String()
}
