package ast

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Program helpers.

func Src(globals []*Global, functions ...*Function) *Source {
	return NewSource(globals, functions)
}

func Var(name, typeName string, value Expression) *Global {
	return NewGlobal(name, typeName, true, value)
}

func Val(name, typeName string, value Expression) *Global {
	return NewGlobal(name, typeName, false, value)
}

func Lst(name, typeName string, elements ...Expression) *Global {
	return NewGlobal(name, typeName, true, NewListLiteral(elements))
}

// Param pairs a parameter name with its type name for Fn.
type Param struct {
	Name     string
	TypeName string
}

func P(name, typeName string) Param {
	return Param{Name: name, TypeName: typeName}
}

func Fn(name string, params []Param, returnTypeName string, body ...Statement) *Function {
	names := make([]string, 0, len(params))
	typeNames := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, p.Name)
		typeNames = append(typeNames, p.TypeName)
	}
	return NewFunction(name, names, typeNames, returnTypeName, body)
}

// Statement helpers.

func ExprStmt(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Let(name, typeName string, value Expression) *Declaration {
	return NewDeclaration(name, typeName, value)
}

func Assign(receiver, value Expression) *Assignment {
	return NewAssignment(receiver, value)
}

func IfStmt(condition Expression, then []Statement, otherwise ...Statement) *If {
	return NewIf(condition, then, otherwise)
}

func Sw(condition Expression, cases ...*Case) *Switch {
	return NewSwitch(condition, cases)
}

func CaseOf(value Expression, body ...Statement) *Case {
	return NewCase(value, body)
}

func Default(body ...Statement) *Case {
	return NewCase(nil, body)
}

func WhileStmt(condition Expression, body ...Statement) *While {
	return NewWhile(condition, body)
}

func Ret(value Expression) *Return {
	return NewReturn(value)
}

func Block(statements ...Statement) []Statement {
	return statements
}

// Expression helpers.

func Int(value int64) *Literal {
	return NewLiteral(big.NewInt(value))
}

func IntBig(value *big.Int) *Literal {
	return NewLiteral(new(big.Int).Set(value))
}

// Dec parses a decimal literal; it panics on malformed input.
func Dec(value string) *Literal {
	return NewLiteral(decimal.RequireFromString(value))
}

func DecFromInt(value int64) *Literal {
	return NewLiteral(decimal.NewFromInt(value))
}

func Str(value string) *Literal {
	return NewLiteral(value)
}

func Chr(value rune) *Literal {
	return NewLiteral(value)
}

func Bool(value bool) *Literal {
	return NewLiteral(value)
}

func Nil() *Literal {
	return NewLiteral(nil)
}

func Grp(expr Expression) *Group {
	return NewGroup(expr)
}

func Bin(operator string, left, right Expression) *Binary {
	return NewBinary(operator, left, right)
}

func ID(name string) *Access {
	return NewAccess(name, nil)
}

func Idx(name string, offset Expression) *Access {
	return NewAccess(name, offset)
}

func CallExpr(name string, args ...Expression) *Call {
	return NewCall(name, args)
}

func List(elements ...Expression) *ListLiteral {
	return NewListLiteral(elements)
}

// Print is shorthand for the print(expr); statement.
func Print(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(NewCall("print", []Expression{expr}))
}
