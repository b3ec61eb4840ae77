// Package generator renders a checked program as a single Java class.
package generator

import (
	"bytes"
	"fmt"
	"io"

	"plc/interpreter-go/pkg/ast"
)

// Generate writes the Java translation of src to w. src must have been
// analyzed by the type checker; the generator reads the type and binding
// annotations it leaves behind.
func Generate(w io.Writer, src *ast.Source) error {
	if src == nil {
		return fmt.Errorf("generator: source is nil")
	}
	g := &generator{}
	g.source(src)
	if g.err != nil {
		return g.err
	}
	if _, err := w.Write(g.buf.Bytes()); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	return nil
}

type generator struct {
	buf    bytes.Buffer
	indent int
	err    error
}

func (g *generator) print(parts ...string) {
	for _, part := range parts {
		g.buf.WriteString(part)
	}
}

func (g *generator) newline(indent int) {
	g.buf.WriteByte('\n')
	for i := 0; i < indent; i++ {
		g.buf.WriteString("    ")
	}
}

// fail records the first error; rendering continues but the output is
// discarded.
func (g *generator) fail(node ast.Node, format string, args ...any) {
	if g.err != nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if node != nil && !node.Span().IsZero() {
		start := node.Span().Start
		g.err = fmt.Errorf("generator: %d:%d: %s", start.Line, start.Column, msg)
		return
	}
	g.err = fmt.Errorf("generator: %s", msg)
}

func (g *generator) source(src *ast.Source) {
	g.print("public class Main {")
	g.newline(0)
	g.indent++
	g.newline(g.indent)

	for _, global := range src.Globals {
		g.global(global)
		g.newline(g.indent)
	}
	if len(src.Globals) > 0 {
		g.newline(g.indent)
	}

	g.print("public static void main(String[] args) {")
	g.indent++
	g.newline(g.indent)
	g.print("System.exit(new Main().main());")
	g.indent--
	g.newline(g.indent)
	g.print("}")
	g.newline(0)
	g.newline(g.indent)

	for i, fn := range src.Functions {
		g.function(fn)
		if i != len(src.Functions)-1 {
			g.newline(g.indent)
		}
	}

	g.indent--
	g.newline(g.indent)
	g.print("}")
}

func (g *generator) global(global *ast.Global) {
	if global.Variable == nil || global.Variable.Type == nil {
		g.fail(global, "global '%s' has no resolved type", global.Name)
		return
	}
	if !global.Mutable {
		g.print("final ")
	}
	g.print(global.Variable.Type.JvmName())
	if _, ok := global.Value.(*ast.ListLiteral); ok {
		g.print("[]")
	}
	g.print(" ", global.Name)
	if global.Value != nil {
		g.print(" = ")
		g.expression(global.Value)
	}
	g.print(";")
}

func (g *generator) function(fn *ast.Function) {
	if fn.Function == nil || fn.Function.ReturnType == nil {
		g.fail(fn, "function '%s' has no resolved signature", fn.Name)
		return
	}
	g.print(fn.Function.ReturnType.JvmName(), " ", fn.Name, "(")
	for i, name := range fn.Parameters {
		if i >= len(fn.Function.ParameterTypes) {
			g.fail(fn, "function '%s' has no type for parameter '%s'", fn.Name, name)
			return
		}
		g.print(fn.Function.ParameterTypes[i].JvmName(), " ", name)
		if i != len(fn.Parameters)-1 {
			g.print(", ")
		}
	}
	g.print(") {")

	if len(fn.Statements) == 0 {
		g.print("}")
		return
	}
	g.block(fn.Statements)
	g.print("}")
	g.newline(0)
}

// block renders statements one per line at one deeper indent and leaves the
// cursor on a fresh line at the enclosing indent.
func (g *generator) block(statements []ast.Statement) {
	g.indent++
	g.newline(g.indent)
	for i, stmt := range statements {
		g.statement(stmt)
		if i != len(statements)-1 {
			g.newline(g.indent)
		}
	}
	g.indent--
	g.newline(g.indent)
}
