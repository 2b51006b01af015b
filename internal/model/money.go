package model

import (
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"
)

var hundred = big.NewRat(100, 1)

// MinorUnits converts a decimal currency amount to integer minor units
// (cents), truncating any fraction below one cent. The arithmetic is exact
// decimal, so 19.99 yields 1999 and 12.345 yields 1234. Negative amounts
// are rejected.
func MinorUnits(amount json.Number) (int64, error) {
	if amount == "" {
		return 0, errors.New("amount is required")
	}
	r, ok := new(big.Rat).SetString(amount.String())
	if !ok {
		return 0, errors.Errorf("invalid amount %q", amount)
	}
	if r.Sign() < 0 {
		return 0, errors.Errorf("amount must be >= 0, got %s", amount)
	}
	r.Mul(r, hundred)
	// Quo truncates toward zero, which is floor for non-negative values.
	q := new(big.Int).Quo(r.Num(), r.Denom())
	if !q.IsInt64() {
		return 0, errors.Errorf("amount %s out of range", amount)
	}
	return q.Int64(), nil
}
