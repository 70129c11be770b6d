// Package pricing holds the arithmetic shared by orders and sales. Everything here is pure:
// prices are whole currency units, so there is no rounding beyond integer division.
package pricing

import (
	"errors"
	"math"
	"math/bits"

	"perfume-boutique-ws/internal/model"
)

// ErrTotalOverflow is returned when a cart total does not fit in int64.
var ErrTotalOverflow = errors.New("cart total overflows")

// PointsRate is the number of currency units that earn one loyalty point.
const PointsRate = 10

// TierStep is the size of a loyalty tier shown to customers.
const TierStep = 500

// ComputeTotal returns Σ(unit price × quantity) over lines, exactly, or ErrTotalOverflow.
// Negative prices or quantities are treated as overflow: they never come out of a validated cart.
func ComputeTotal(lines []model.CartLine) (int64, error) {
	var total uint64
	for _, l := range lines {
		if l.UnitPrice < 0 || l.Quantity < 0 {
			return 0, ErrTotalOverflow
		}
		hi, sub := bits.Mul64(uint64(l.UnitPrice), uint64(l.Quantity))
		if hi != 0 {
			return 0, ErrTotalOverflow
		}
		var carry uint64
		total, carry = bits.Add64(total, sub, 0)
		if carry != 0 || total > math.MaxInt64 {
			return 0, ErrTotalOverflow
		}
	}
	return int64(total), nil
}

// ComputePoints returns floor(total / PointsRate). Non-positive totals earn nothing.
func ComputePoints(total int64) int64 {
	if total <= 0 {
		return 0
	}
	return total / PointsRate
}

// NextTier returns the next tier threshold strictly above points.
func NextTier(points int64) int64 {
	if points < 0 {
		points = 0
	}
	return (points/TierStep + 1) * TierStep
}
