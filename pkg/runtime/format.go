package runtime

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders the textual form of a value, as emitted by print and by
// string concatenation.
func Format(v Value) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case NilValue:
		return "null"
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case IntegerValue:
		if val.Val == nil {
			return "0"
		}
		return val.Val.String()
	case DecimalValue:
		return formatDecimal(val.Val)
	case CharValue:
		return string(val.Val)
	case StringValue:
		return val.Val
	case *ListValue:
		parts := make([]string, 0, len(val.Elements))
		for _, el := range val.Elements {
			parts = append(parts, Format(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("<%T>", v)
	}
}

// Equal reports structural value equality. Values of different kinds are never
// equal; decimals compare numerically, so 1.0 equals 1.00.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return isNil(a) && isNil(b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case NilValue:
		return true
	case BoolValue:
		return av.Val == b.(BoolValue).Val
	case IntegerValue:
		return av.Val.Cmp(b.(IntegerValue).Val) == 0
	case DecimalValue:
		return av.Val.Equal(b.(DecimalValue).Val)
	case CharValue:
		return av.Val == b.(CharValue).Val
	case StringValue:
		return av.Val == b.(StringValue).Val
	case *ListValue:
		bv := b.(*ListValue)
		if av == bv {
			return true
		}
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// formatDecimal keeps the value's own scale, so 1.0 prints as 1.0 and
// 2.50 as 2.50.
func formatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

func isNil(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(NilValue)
	return ok
}

// Compare orders two values of the same comparable kind (Integer, Decimal,
// Character, String). ok is false when the pair has no ordering.
func Compare(a, b Value) (cmp int, ok bool) {
	if a == nil || b == nil || a.Kind() != b.Kind() {
		return 0, false
	}
	switch av := a.(type) {
	case IntegerValue:
		return av.Val.Cmp(b.(IntegerValue).Val), true
	case DecimalValue:
		return av.Val.Cmp(b.(DecimalValue).Val), true
	case CharValue:
		bv := b.(CharValue).Val
		switch {
		case av.Val < bv:
			return -1, true
		case av.Val > bv:
			return 1, true
		}
		return 0, true
	case StringValue:
		return strings.Compare(av.Val, b.(StringValue).Val), true
	default:
		return 0, false
	}
}

// ToNative converts a value into plain Go data suitable for JSON encoding.
func ToNative(v Value) any {
	switch val := v.(type) {
	case nil, NilValue:
		return nil
	case BoolValue:
		return val.Val
	case IntegerValue:
		if val.Val.IsInt64() {
			return val.Val.Int64()
		}
		return val.Val.String()
	case DecimalValue:
		return formatDecimal(val.Val)
	case CharValue:
		return string(val.Val)
	case StringValue:
		return val.Val
	case *ListValue:
		out := make([]any, 0, len(val.Elements))
		for _, el := range val.Elements {
			out = append(out, ToNative(el))
		}
		return out
	default:
		return Format(v)
	}
}
