package planmath

import (
	"math"

	"agriplan/internal/model"
)

// Tolerance is the numeric slack allowed between a plan's annual target and
// the sum of its quarterly breakdown figures.
const Tolerance = 1e-4

// Total sums a breakdown's four quarters.
func Total(b *model.QuarterlyBreakdown) float64 {
	if b == nil {
		return 0
	}
	return b.Q1 + b.Q2 + b.Q3 + b.Q4
}

// Mismatched reports whether the quarterly total disagrees with the annual
// target beyond Tolerance. A difference of exactly Tolerance still counts as
// consistent.
func Mismatched(target float64, b *model.QuarterlyBreakdown) bool {
	return math.Abs(Total(b)-target) > Tolerance
}

// QuarterTotal sums the achieved values of a plan's quarterly performances,
// treating missing quarters as zero.
func QuarterTotal(perfs []model.QuarterlyPerformance) float64 {
	var sum float64
	for _, p := range perfs {
		sum += p.Value
	}
	return sum
}
