package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Amount is a fixed-point monetary value in minor units, four decimal
// places to the unit: 1.5 is stored as 15000.
type Amount int64

const amountScale = 4

var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	minAmount = decimal.NewFromInt(math.MinInt64)
)

func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("ParseAmount: %q: %w", s, ErrInvalidAmount)
	}

	scaled := d.Shift(amountScale)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("ParseAmount: %q exceeds %d decimal places: %w", s, amountScale, ErrInvalidAmount)
	}
	if scaled.Cmp(maxAmount) > 0 || scaled.Cmp(minAmount) < 0 {
		return 0, fmt.Errorf("ParseAmount: %q out of range: %w", s, ErrInvalidAmount)
	}

	return Amount(scaled.IntPart()), nil
}

func (a Amount) String() string {
	return decimal.New(int64(a), -amountScale).StringFixed(amountScale)
}
