package domain

import "github.com/shopspring/decimal"

// Scale is the number of decimal places every balance and amount carries.
const Scale int32 = 4

// MaxBalance bounds the magnitude of every stored balance and every
// incoming amount: the largest scale-4 value that fits a 96-bit decimal
// mantissa. decimal.Decimal itself is arbitrary precision, so the range
// check is enforced here.
var MaxBalance = decimal.RequireFromString("7922816251426433759354395.0335")

// CheckedAdd returns a+b, or ErrBalanceOverflow if the result leaves the
// representable range. Nothing else about the operands is validated.
func CheckedAdd(a, b decimal.Decimal) (decimal.Decimal, error) {
	sum := a.Add(b)
	if sum.Abs().GreaterThan(MaxBalance) {
		return decimal.Decimal{}, ErrBalanceOverflow
	}
	return sum, nil
}

// CheckedSub returns a-b with the same range check as CheckedAdd.
func CheckedSub(a, b decimal.Decimal) (decimal.Decimal, error) {
	return CheckedAdd(a, b.Neg())
}
