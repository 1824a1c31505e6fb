package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriplan/internal/model"
)

func groupPtr(v int) *int { return &v }

func TestRollup_SingleGroupBoundaryBand(t *testing.T) {
	// Leaf targets [50, 50], achieved [45, 5]: the group lands on exactly 50%,
	// the inclusive lower bound of Weak Performance.
	groups := []model.IndicatorGroup{{ID: 1, Name: "Crops"}}
	inds := []IndicatorPerf{
		{ID: 1, Name: "Wheat", GroupID: groupPtr(1), Target: 50, Achieved: 45},
		{ID: 2, Name: "Maize", GroupID: groupPtr(1), Target: 50, Achieved: 5},
	}

	f, err := BuildForest(groups, inds)
	require.NoError(t, err)

	roots, loose := f.Rollup()
	require.Len(t, roots, 1)
	assert.Empty(t, loose)

	g := roots[0]
	assert.Equal(t, 100.0, g.Target)
	assert.Equal(t, 50.0, g.Achieved)
	require.NotNil(t, g.Pct)
	assert.InDelta(t, 50.0, *g.Pct, 1e-9)
	assert.Equal(t, BandWeakPerformance, g.Band)
}

func TestRollup_ZeroTargetLeafIsNoData(t *testing.T) {
	groups := []model.IndicatorGroup{{ID: 1, Name: "Livestock"}}
	inds := []IndicatorPerf{
		{ID: 1, Name: "Cattle", GroupID: groupPtr(1), Target: 0, Achieved: 12},
	}

	f, err := BuildForest(groups, inds)
	require.NoError(t, err)

	roots, _ := f.Rollup()
	leaf := roots[0].Indicators[0]
	assert.Nil(t, leaf.Pct)
	assert.Equal(t, BandNoData, leaf.Band)
	// Group aggregate has no positive denominator either.
	assert.Nil(t, roots[0].Pct)
	assert.Equal(t, BandNoData, roots[0].Band)
}

func TestRollup_NestedGroupsSumTransitively(t *testing.T) {
	groups := []model.IndicatorGroup{
		{ID: 1, Name: "Sector goals"},
		{ID: 2, Name: "Irrigation", ParentID: groupPtr(1)},
		{ID: 3, Name: "Extension", ParentID: groupPtr(1)},
	}
	inds := []IndicatorPerf{
		{ID: 1, GroupID: groupPtr(2), Target: 100, Achieved: 90, Quarters: [4]float64{25, 25, 25, 25}},
		{ID: 2, GroupID: groupPtr(3), Target: 100, Achieved: 60, Quarters: [4]float64{10, 20, 30, 40}},
		{ID: 3, GroupID: groupPtr(1), Target: 100, Achieved: 75, Quarters: [4]float64{0, 0, 50, 50}},
	}

	f, err := BuildForest(groups, inds)
	require.NoError(t, err)

	roots, _ := f.Rollup()
	require.Len(t, roots, 1)
	root := roots[0]

	assert.Equal(t, 300.0, root.Target)
	assert.Equal(t, 225.0, root.Achieved)
	require.NotNil(t, root.Pct)
	assert.InDelta(t, 75.0, *root.Pct, 1e-9)
	assert.Equal(t, BandInProgress, root.Band)

	// Quarterly aggregate is the element-wise sum across all contained
	// indicators, direct and nested.
	assert.Equal(t, [4]float64{35, 45, 105, 115}, root.Quarters)

	// Children computed before the parent, levels assigned from the root.
	require.Len(t, root.Children, 2)
	assert.Equal(t, 0, root.Level)
	assert.Equal(t, 1, root.Children[0].Level)
	require.NotNil(t, root.Children[0].Pct)
	assert.InDelta(t, 90.0, *root.Children[0].Pct, 1e-9)
}

func TestRollup_LooseIndicators(t *testing.T) {
	inds := []IndicatorPerf{
		{ID: 1, Name: "Ungrouped", Target: 10, Achieved: 10},
	}
	f, err := BuildForest(nil, inds)
	require.NoError(t, err)

	roots, loose := f.Rollup()
	assert.Empty(t, roots)
	require.Len(t, loose, 1)
	assert.Equal(t, BandAchieved, loose[0].Band)
}

func TestBuildForest_CyclicHierarchyRejected(t *testing.T) {
	groups := []model.IndicatorGroup{
		{ID: 1, ParentID: groupPtr(2)},
		{ID: 2, ParentID: groupPtr(1)},
	}
	_, err := BuildForest(groups, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCyclicHierarchy)
}

func TestBuildForest_SelfParentRejected(t *testing.T) {
	groups := []model.IndicatorGroup{{ID: 1, ParentID: groupPtr(1)}}
	_, err := BuildForest(groups, nil)
	assert.ErrorIs(t, err, ErrCyclicHierarchy)
}

func TestBandCounts_SeparatesNoDataFromZero(t *testing.T) {
	groups := []model.IndicatorGroup{{ID: 1}}
	inds := []IndicatorPerf{
		{ID: 1, GroupID: groupPtr(1), Target: 0, Achieved: 0},   // No Data
		{ID: 2, GroupID: groupPtr(1), Target: 100, Achieved: 0}, // 0% → Requires Intervention
		{ID: 3, GroupID: groupPtr(1), Target: 100, Achieved: 96},
	}
	f, err := BuildForest(groups, inds)
	require.NoError(t, err)

	roots, loose := f.Rollup()
	counts := BandCounts(roots, loose)
	assert.Equal(t, 1, counts[BandNoData])
	assert.Equal(t, 1, counts[BandRequiresIntervention])
	assert.Equal(t, 1, counts[BandAchieved])
}
