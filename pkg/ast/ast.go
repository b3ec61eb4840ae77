package ast

import (
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/types"
)

type NodeType string

const (
	NodeSource              NodeType = "Source"
	NodeGlobal              NodeType = "Global"
	NodeFunction            NodeType = "Function"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeDeclaration         NodeType = "Declaration"
	NodeAssignment          NodeType = "Assignment"
	NodeIf                  NodeType = "If"
	NodeSwitch              NodeType = "Switch"
	NodeCase                NodeType = "Case"
	NodeWhile               NodeType = "While"
	NodeReturn              NodeType = "Return"
	NodeLiteral             NodeType = "Literal"
	NodeGroup               NodeType = "Group"
	NodeBinary              NodeType = "Binary"
	NodeAccess              NodeType = "Access"
	NodeCall                NodeType = "Call"
	NodeListLiteral         NodeType = "ListLiteral"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// IsZero reports whether the span was never set (DSL-built nodes).
func (s Span) IsZero() bool { return s == Span{} }

type nodeImpl struct {
	Type NodeType `json:"type"`
	Loc  Span     `json:"span"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.Loc }
func (nodeImpl) isNode()              {}
func (n *nodeImpl) SetSpan(span Span) { n.Loc = span }

// Marker interfaces. The unexported methods close the sum types: only this
// package can add statement or expression variants.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Expression interface {
	Node
	expressionNode()
	// ResolvedType is the type assigned by the checker, nil before analysis.
	ResolvedType() *types.Type
	SetResolvedType(*types.Type)
}

type expressionImpl struct {
	resolved *types.Type
}

func (expressionImpl) expressionNode()                  {}
func (e *expressionImpl) ResolvedType() *types.Type     { return e.resolved }
func (e *expressionImpl) SetResolvedType(t *types.Type) { e.resolved = t }

//-----------------------------------------------------------------------------
// Top level
//-----------------------------------------------------------------------------

type Source struct {
	nodeImpl

	Globals   []*Global   `json:"globals"`
	Functions []*Function `json:"functions"`
}

func NewSource(globals []*Global, functions []*Function) *Source {
	return &Source{nodeImpl: newNodeImpl(NodeSource), Globals: globals, Functions: functions}
}

// Global is a LIST, VAR, or VAL declaration at program level. TypeName and
// Value are optional (empty string / nil).
type Global struct {
	nodeImpl

	Name     string     `json:"name"`
	TypeName string     `json:"typeName,omitempty"`
	Mutable  bool       `json:"mutable"`
	Value    Expression `json:"value,omitempty"`

	Variable *runtime.Variable `json:"-"`
}

func NewGlobal(name, typeName string, mutable bool, value Expression) *Global {
	return &Global{nodeImpl: newNodeImpl(NodeGlobal), Name: name, TypeName: typeName, Mutable: mutable, Value: value}
}

type Function struct {
	nodeImpl

	Name               string      `json:"name"`
	Parameters         []string    `json:"parameters"`
	ParameterTypeNames []string    `json:"parameterTypeNames"`
	ReturnTypeName     string      `json:"returnTypeName,omitempty"`
	Statements         []Statement `json:"statements"`

	Function *runtime.Function `json:"-"`
}

func NewFunction(name string, parameters, parameterTypeNames []string, returnTypeName string, statements []Statement) *Function {
	return &Function{
		nodeImpl:           newNodeImpl(NodeFunction),
		Name:               name,
		Parameters:         parameters,
		ParameterTypeNames: parameterTypeNames,
		ReturnTypeName:     returnTypeName,
		Statements:         statements,
	}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

// Declaration is a LET statement. TypeName and Value are optional.
type Declaration struct {
	nodeImpl
	statementMarker

	Name     string     `json:"name"`
	TypeName string     `json:"typeName,omitempty"`
	Value    Expression `json:"value,omitempty"`

	Variable *runtime.Variable `json:"-"`
}

func NewDeclaration(name, typeName string, value Expression) *Declaration {
	return &Declaration{nodeImpl: newNodeImpl(NodeDeclaration), Name: name, TypeName: typeName, Value: value}
}

// Assignment stores Value into Receiver, which must be an *Access.
type Assignment struct {
	nodeImpl
	statementMarker

	Receiver Expression `json:"receiver"`
	Value    Expression `json:"value"`
}

func NewAssignment(receiver, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Receiver: receiver, Value: value}
}

type If struct {
	nodeImpl
	statementMarker

	Condition Expression  `json:"condition"`
	Then      []Statement `json:"then"`
	Else      []Statement `json:"else"`
}

func NewIf(condition Expression, then, otherwise []Statement) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Condition: condition, Then: then, Else: otherwise}
}

type Switch struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Cases     []*Case    `json:"cases"`
}

func NewSwitch(condition Expression, cases []*Case) *Switch {
	return &Switch{nodeImpl: newNodeImpl(NodeSwitch), Condition: condition, Cases: cases}
}

// Case is a CASE arm, or the DEFAULT arm when Value is nil.
type Case struct {
	nodeImpl
	statementMarker

	Value      Expression  `json:"value,omitempty"`
	Statements []Statement `json:"statements"`
}

func NewCase(value Expression, statements []Statement) *Case {
	return &Case{nodeImpl: newNodeImpl(NodeCase), Value: value, Statements: statements}
}

// IsDefault reports whether the case has no value.
func (c *Case) IsDefault() bool { return c.Value == nil }

type While struct {
	nodeImpl
	statementMarker

	Condition  Expression  `json:"condition"`
	Statements []Statement `json:"statements"`
}

func NewWhile(condition Expression, statements []Statement) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile), Condition: condition, Statements: statements}
}

type Return struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value"`
}

func NewReturn(value Expression) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn), Value: value}
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

// Literal holds nil, bool, *big.Int, decimal.Decimal, rune, or string.
type Literal struct {
	nodeImpl
	expressionImpl

	Value any `json:"value"`
}

func NewLiteral(value any) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

type Group struct {
	nodeImpl
	expressionImpl

	Expression Expression `json:"expression"`
}

func NewGroup(expr Expression) *Group {
	return &Group{nodeImpl: newNodeImpl(NodeGroup), Expression: expr}
}

type Binary struct {
	nodeImpl
	expressionImpl

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinary(operator string, left, right Expression) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Operator: operator, Left: left, Right: right}
}

// Access reads a variable, or one list element when Offset is set.
type Access struct {
	nodeImpl
	expressionImpl

	Name   string     `json:"name"`
	Offset Expression `json:"offset,omitempty"`

	Variable *runtime.Variable `json:"-"`
}

func NewAccess(name string, offset Expression) *Access {
	return &Access{nodeImpl: newNodeImpl(NodeAccess), Name: name, Offset: offset}
}

type Call struct {
	nodeImpl
	expressionImpl

	Name      string       `json:"name"`
	Arguments []Expression `json:"arguments"`

	Function *runtime.Function `json:"-"`
}

func NewCall(name string, arguments []Expression) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Name: name, Arguments: arguments}
}

type ListLiteral struct {
	nodeImpl
	expressionImpl

	Elements []Expression `json:"elements"`
}

func NewListLiteral(elements []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Elements: elements}
}

// Compile-time checks that every variant satisfies its sum type.
var (
	_ Statement = (*ExpressionStatement)(nil)
	_ Statement = (*Declaration)(nil)
	_ Statement = (*Assignment)(nil)
	_ Statement = (*If)(nil)
	_ Statement = (*Switch)(nil)
	_ Statement = (*Case)(nil)
	_ Statement = (*While)(nil)
	_ Statement = (*Return)(nil)

	_ Expression = (*Literal)(nil)
	_ Expression = (*Group)(nil)
	_ Expression = (*Binary)(nil)
	_ Expression = (*Access)(nil)
	_ Expression = (*Call)(nil)
	_ Expression = (*ListLiteral)(nil)
)
