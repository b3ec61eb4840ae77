package interpreter

import (
	"math/big"

	"github.com/shopspring/decimal"

	"plc/interpreter-go/pkg/runtime"
)

var (
	two = decimal.NewFromInt(2)
	ten = big.NewInt(10)
)

// divideHalfEven divides a by b keeping scale fractional digits, rounding the
// discarded remainder half to even. b must be non-zero.
func divideHalfEven(a, b decimal.Decimal, scale int32) decimal.Decimal {
	q, r := a.QuoRem(b, scale)
	if r.IsZero() {
		return q
	}
	unit := decimal.New(1, -scale)
	// |r| < |b|*unit; compare the remainder against half a unit of b.
	cmp := r.Abs().Mul(two).Cmp(b.Abs().Mul(unit))
	if cmp < 0 {
		return q
	}
	if cmp == 0 {
		last := new(big.Int).Abs(q.Shift(scale).BigInt())
		if last.Bit(0) == 0 {
			return q
		}
	}
	if a.Sign()*b.Sign() < 0 {
		return q.Sub(unit)
	}
	return q.Add(unit)
}

// trimQuotient drops trailing fractional zeros left by the fixed division
// scale, keeping at least one fractional digit: 1.0/8.0 is 0.125 and 2.0/1.0
// is 2.0.
func trimQuotient(d decimal.Decimal) decimal.Decimal {
	exp := d.Exponent()
	if exp >= -1 {
		return d
	}
	coef := d.Coefficient()
	digit := new(big.Int)
	for exp < -1 {
		q, r := new(big.Int).QuoRem(coef, ten, digit)
		if r.Sign() != 0 {
			break
		}
		coef = q
		exp++
	}
	return decimal.NewFromBigInt(coef, exp)
}

// power computes base^exp exactly.
func power(base, exp *big.Int) (runtime.Value, error) {
	if exp.Sign() < 0 {
		return nil, &NegativeExponentError{Exponent: exp.String()}
	}
	return runtime.IntegerValue{Val: new(big.Int).Exp(base, exp, nil)}, nil
}
