package domain

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

var (
	hundred = big.NewInt(100)
	two     = big.NewInt(2)
)

// Amount represents a positive invoice amount held as an exact rational
// number of currency units. Amount is immutable.
type Amount struct {
	value *big.Rat
}

// ParseAmount coerces raw form input into an Amount.
// It accepts decimal and exponent notation ("10.50", "1e2") with surrounding
// whitespace. Values that are not finite, not positive, or that round to less
// than one cent are rejected with ErrInvalidAmount.
func ParseAmount(raw string) (Amount, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.Contains(s, "/") {
		return Amount{}, ErrInvalidAmount
	}

	// ParseFloat first: it rejects NaN/Inf spellings and exponents that would
	// make big.Rat allocate unbounded precision.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f <= 0 {
		return Amount{}, ErrInvalidAmount
	}

	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		rat = new(big.Rat).SetFloat64(f)
	}

	a := Amount{value: rat}
	cents, ok := a.cents()
	if !ok || cents < 1 {
		return Amount{}, ErrInvalidAmount
	}
	return a, nil
}

// NewAmountFromCents builds an Amount from a persisted cent value.
func NewAmountFromCents(cents int64) (Amount, error) {
	if cents < 1 {
		return Amount{}, fmt.Errorf("%w: %d cents", ErrInvalidAmount, cents)
	}
	return Amount{value: big.NewRat(cents, 100)}, nil
}

// Cents returns the amount in cents, rounded half away from zero.
func (a Amount) Cents() int64 {
	c, _ := a.cents()
	return c
}

func (a Amount) cents() (int64, bool) {
	if a.value == nil {
		return 0, false
	}
	scaled := new(big.Rat).Mul(a.value, new(big.Rat).SetInt(hundred))

	// round(n/d) for n/d >= 0 is floor((2n + d) / 2d).
	num := new(big.Int).Mul(scaled.Num(), two)
	num.Add(num, scaled.Denom())
	den := new(big.Int).Mul(scaled.Denom(), two)
	q := new(big.Int).Quo(num, den)
	if !q.IsInt64() {
		return 0, false
	}
	return q.Int64(), true
}

// IsZero reports whether a is the zero value (no amount parsed).
func (a Amount) IsZero() bool {
	return a.value == nil
}

// Rat returns a copy of the exact value.
func (a Amount) Rat() *big.Rat {
	if a.value == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(a.value)
}

// Float64 returns the amount in currency units. Display only.
func (a Amount) Float64() float64 {
	if a.value == nil {
		return 0
	}
	f, _ := a.value.Float64()
	return f
}

// String formats the amount with two decimals, e.g. "10.50".
func (a Amount) String() string {
	if a.value == nil {
		return "0.00"
	}
	return a.value.FloatString(2)
}
