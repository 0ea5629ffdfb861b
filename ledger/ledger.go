// Package ledger provides the pure computations over an account's movement
// history: balance, summary totals and qualifying interest. Functions never
// mutate their input and have no dependencies on session or storage state.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// minInterest is the minimum-interest-earned threshold: interest computed
	// for a single deposit below one currency unit is not credited.
	minInterest = decimal.NewFromInt(1)
)

// Balance returns the sum of all movements. An empty history sums to zero.
func Balance(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m)
	}
	return total
}

// TotalDeposits returns the sum of all positive movements.
func TotalDeposits(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if m.IsPositive() {
			total = total.Add(m)
		}
	}
	return total
}

// TotalWithdrawals returns the withdrawn total as a non-negative value. The
// sign flip is for display only; stored withdrawal movements stay negative.
func TotalWithdrawals(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if m.IsNegative() {
			total = total.Add(m)
		}
	}
	return total.Abs()
}

// QualifyingInterest computes interest per deposit at the given percentage
// rate and sums only the amounts meeting the minimum threshold. The result is
// rounded to two places for presentation; interest is informational and is
// never appended to the movement history.
func QualifyingInterest(movements []decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if !m.IsPositive() {
			continue
		}
		interest := m.Mul(rate).Div(hundred)
		if interest.Cmp(minInterest) >= 0 {
			total = total.Add(interest)
		}
	}
	return total.Round(2)
}

// SortedAscending returns a copy of the movements ordered by value, smallest
// first. The sort is stable, so equal movements keep their original relative
// order. The input slice is left untouched.
func SortedAscending(movements []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(movements))
	copy(out, movements)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LessThan(out[j])
	})
	return out
}
