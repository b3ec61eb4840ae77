package generator

import "plc/interpreter-go/pkg/ast"

func (g *generator) statement(node ast.Statement) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		g.expression(n.Expression)
		g.print(";")
	case *ast.Declaration:
		g.declaration(n)
	case *ast.Assignment:
		g.expression(n.Receiver)
		g.print(" = ")
		g.expression(n.Value)
		g.print(";")
	case *ast.If:
		g.print("if (")
		g.expression(n.Condition)
		g.print(") {")
		g.block(n.Then)
		g.print("}")
		if len(n.Else) > 0 {
			g.print(" else {")
			g.block(n.Else)
			g.print("}")
		}
	case *ast.Switch:
		g.switchStatement(n)
	case *ast.Case:
		g.caseStatement(n)
	case *ast.While:
		g.print("while (")
		g.expression(n.Condition)
		g.print(") {")
		g.block(n.Statements)
		g.print("}")
	case *ast.Return:
		g.print("return ")
		g.expression(n.Value)
		g.print(";")
	default:
		g.fail(node, "unsupported statement %s", node.NodeType())
	}
}

func (g *generator) declaration(decl *ast.Declaration) {
	if decl.Variable == nil || decl.Variable.Type == nil {
		g.fail(decl, "variable '%s' has no resolved type", decl.Name)
		return
	}
	g.print(decl.Variable.Type.JvmName(), " ", decl.Name)
	if decl.Value != nil {
		g.print(" = ")
		g.expression(decl.Value)
	}
	g.print(";")
}

func (g *generator) switchStatement(sw *ast.Switch) {
	g.print("switch (")
	g.expression(sw.Condition)
	g.print(") {")
	g.indent++
	g.newline(g.indent)
	for i, c := range sw.Cases {
		g.caseStatement(c)
		if i != len(sw.Cases)-1 {
			g.newline(g.indent)
		}
	}
	g.indent--
	g.newline(g.indent)
	g.print("}")
}

// caseStatement ends valued cases with break so Java does not fall through.
func (g *generator) caseStatement(c *ast.Case) {
	if c.IsDefault() {
		g.print("default:")
	} else {
		g.print("case ")
		g.expression(c.Value)
		g.print(":")
	}
	g.indent++
	g.newline(g.indent)
	for i, stmt := range c.Statements {
		g.statement(stmt)
		if i != len(c.Statements)-1 || !c.IsDefault() {
			g.newline(g.indent)
		}
	}
	if !c.IsDefault() {
		g.print("break;")
	}
	g.indent--
}
