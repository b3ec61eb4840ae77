package runtime

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBoolean
	KindInteger
	KindDecimal
	KindCharacter
	KindString
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "Nil"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindDecimal:
		return "Decimal"
	case KindCharacter:
		return "Character"
	case KindString:
		return "String"
	case KindList:
		return "List"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBoolean }

// IntegerValue is an arbitrary-precision integer. Val is never mutated once
// the value is constructed; arithmetic always allocates a fresh big.Int.
type IntegerValue struct {
	Val *big.Int
}

func (v IntegerValue) Kind() Kind { return KindInteger }

// DecimalValue is an arbitrary-precision base-10 decimal.
type DecimalValue struct {
	Val decimal.Decimal
}

func (v DecimalValue) Kind() Kind { return KindDecimal }

type CharValue struct {
	Val rune
}

func (v CharValue) Kind() Kind { return KindCharacter }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

// ListValue is shared by reference: every binding holding the same list
// observes element replacement.
type ListValue struct {
	Elements []Value
}

func (v *ListValue) Kind() Kind { return KindList }

// Len returns the current element count.
func (v *ListValue) Len() int { return len(v.Elements) }

//-----------------------------------------------------------------------------
// Functions
//-----------------------------------------------------------------------------

// Callable is the host-level shape of every invocable function.
type Callable func(args []Value) (Value, error)

//-----------------------------------------------------------------------------
// Constructors
//-----------------------------------------------------------------------------

// Nil is the canonical nil value.
var Nil Value = NilValue{}

func Bool(v bool) BoolValue { return BoolValue{Val: v} }

func Int(v int64) IntegerValue { return IntegerValue{Val: big.NewInt(v)} }

// Integer wraps a copy of the provided big.Int.
func Integer(v *big.Int) IntegerValue { return IntegerValue{Val: CloneBigInt(v)} }

func Decimal(v decimal.Decimal) DecimalValue { return DecimalValue{Val: v} }

func Char(v rune) CharValue { return CharValue{Val: v} }

func String(v string) StringValue { return StringValue{Val: v} }

// NewList builds a list holding the provided elements.
func NewList(elements ...Value) *ListValue {
	out := make([]Value, len(elements))
	copy(out, elements)
	return &ListValue{Elements: out}
}

// CloneBigInt copies the provided big.Int pointer, tolerating nil.
func CloneBigInt(src *big.Int) *big.Int {
	if src == nil {
		return nil
	}
	return new(big.Int).Set(src)
}
