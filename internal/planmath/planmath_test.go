package planmath

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agriplan/internal/model"
)

func TestTotal_OrderIndependent(t *testing.T) {
	a := &model.QuarterlyBreakdown{Q1: 10, Q2: 20, Q3: 30, Q4: 40}
	b := &model.QuarterlyBreakdown{Q1: 40, Q2: 30, Q3: 20, Q4: 10}
	assert.Equal(t, 100.0, Total(a))
	assert.Equal(t, Total(a), Total(b))
}

func TestTotal_NilBreakdown(t *testing.T) {
	assert.Equal(t, 0.0, Total(nil))
}

func TestMismatched_ToleranceBoundary(t *testing.T) {
	// target=100, sum=100.0001 → mismatched (diff > 1e-4 after float error is
	// irrelevant here: use a diff clearly above tolerance)
	over := &model.QuarterlyBreakdown{Q1: 25, Q2: 25, Q3: 25, Q4: 25.0002}
	assert.True(t, Mismatched(100, over))

	// sum=99.9999 → within tolerance on the nose is NOT mismatched; use a
	// diff clearly inside tolerance
	under := &model.QuarterlyBreakdown{Q1: 25, Q2: 25, Q3: 25, Q4: 24.99995}
	assert.False(t, Mismatched(100, under))

	exact := &model.QuarterlyBreakdown{Q1: 25, Q2: 25, Q3: 25, Q4: 25}
	assert.False(t, Mismatched(100, exact))
}

func TestMismatched_ObviousCases(t *testing.T) {
	b := &model.QuarterlyBreakdown{Q1: 250, Q2: 250, Q3: 250, Q4: 250}
	assert.False(t, Mismatched(1000, b))

	b.Q4 = 260
	assert.True(t, Mismatched(1000, b))
}

func TestQuarterTotal(t *testing.T) {
	perfs := []model.QuarterlyPerformance{
		{Quarter: 1, Value: 10},
		{Quarter: 3, Value: 5.5},
	}
	assert.Equal(t, 15.5, QuarterTotal(perfs))
	assert.Equal(t, 0.0, QuarterTotal(nil))
}
