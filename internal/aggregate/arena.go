package aggregate

import (
	"errors"
	"fmt"
	"sort"

	"agriplan/internal/model"
)

// ErrCyclicHierarchy is returned when a group is (transitively) its own parent.
var ErrCyclicHierarchy = errors.New("cyclic indicator group hierarchy")

// IndicatorPerf is a leaf indicator's yearly figures as loaded from storage:
// the annual target, the achieved total, and the approved breakdown quarters
// used only for trend aggregates.
type IndicatorPerf struct {
	ID           int
	Name         string
	Unit         string
	GroupID      *int
	DepartmentID int
	SectorID     int
	Target       float64
	Achieved     float64
	Quarters     [4]float64
}

// node is one arena entry: the group row plus id links to its parent,
// children and directly attached indicators.
type node struct {
	group      model.IndicatorGroup
	parent     int // group id, or 0 for roots
	children   []int
	indicators []int
}

// Forest is an arena of group nodes addressed by id, built once per
// aggregation run from the flat rows.
type Forest struct {
	nodes      map[int]*node
	roots      []int
	indicators map[int]*IndicatorPerf
	// loose are indicators with no group (or a dangling group id); they still
	// participate in sector/department totals.
	loose []int
}

// BuildForest links flat group and indicator rows into an arena. It rejects
// cyclic parent chains and recomputes levels from the roots so that
// level = parent.level + 1 holds regardless of what storage claimed.
func BuildForest(groups []model.IndicatorGroup, indicators []IndicatorPerf) (*Forest, error) {
	f := &Forest{
		nodes:      make(map[int]*node, len(groups)),
		indicators: make(map[int]*IndicatorPerf, len(indicators)),
	}

	for _, g := range groups {
		if _, dup := f.nodes[g.ID]; dup {
			return nil, fmt.Errorf("duplicate indicator group id %d", g.ID)
		}
		f.nodes[g.ID] = &node{group: g}
	}

	for id, n := range f.nodes {
		p := n.group.ParentID
		if p == nil || f.nodes[*p] == nil {
			f.roots = append(f.roots, id)
			continue
		}
		n.parent = *p
		f.nodes[*p].children = append(f.nodes[*p].children, id)
	}

	if err := f.checkAcyclic(); err != nil {
		return nil, err
	}
	f.assignLevels()

	for i := range indicators {
		ind := &indicators[i]
		f.indicators[ind.ID] = ind
		if ind.GroupID != nil && f.nodes[*ind.GroupID] != nil {
			f.nodes[*ind.GroupID].indicators = append(f.nodes[*ind.GroupID].indicators, ind.ID)
		} else {
			f.loose = append(f.loose, ind.ID)
		}
	}

	// Deterministic traversal order for stable API output.
	sort.Ints(f.roots)
	sort.Ints(f.loose)
	for _, n := range f.nodes {
		sort.Ints(n.children)
		sort.Ints(n.indicators)
	}

	return f, nil
}

// checkAcyclic walks every parent chain with a visited set. A malformed
// hierarchy must fail the build, not hang the traversal.
func (f *Forest) checkAcyclic() error {
	for id, n := range f.nodes {
		seen := map[int]bool{id: true}
		cur := n
		for cur.parent != 0 {
			if seen[cur.parent] {
				return fmt.Errorf("%w: group %d is its own ancestor", ErrCyclicHierarchy, id)
			}
			seen[cur.parent] = true
			cur = f.nodes[cur.parent]
		}
	}
	return nil
}

func (f *Forest) assignLevels() {
	var walk func(id, level int)
	walk = func(id, level int) {
		n := f.nodes[id]
		n.group.Level = level
		for _, c := range n.children {
			walk(c, level+1)
		}
	}
	// children slices are filled before levels are assigned; roots carry
	// level 0 by definition.
	for id, n := range f.nodes {
		if n.parent == 0 {
			walk(id, 0)
		}
	}
}
