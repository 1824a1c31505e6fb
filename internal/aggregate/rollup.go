package aggregate

// IndicatorResult is a leaf indicator's computed performance.
type IndicatorResult struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Unit     string     `json:"unit,omitempty"`
	Target   float64    `json:"target"`
	Achieved float64    `json:"achieved"`
	Quarters [4]float64 `json:"quarters"`
	Pct      *float64   `json:"performance_percentage"`
	Band     Band       `json:"band"`
}

// GroupResult is a group node's rollup: target/achieved aggregates summed over
// every indicator transitively under it, the resulting percentage and band,
// and the element-wise quarterly sums used for trend charts.
type GroupResult struct {
	GroupID    int               `json:"id"`
	Name       string            `json:"name"`
	Unit       string            `json:"unit,omitempty"`
	Level      int               `json:"level"`
	Target     float64           `json:"annual_target_aggregate"`
	Achieved   float64           `json:"performance_aggregate"`
	Quarters   [4]float64        `json:"quarterly_aggregate"`
	Pct        *float64          `json:"performance_percentage"`
	Band       Band              `json:"band"`
	Children   []*GroupResult    `json:"children,omitempty"`
	Indicators []IndicatorResult `json:"indicators,omitempty"`
}

// Rollup computes every root group's aggregate bottom-up, children before
// parents, and returns the roots plus the results of indicators attached to
// no group.
func (f *Forest) Rollup() ([]*GroupResult, []IndicatorResult) {
	roots := make([]*GroupResult, 0, len(f.roots))
	for _, id := range f.roots {
		roots = append(roots, f.rollupNode(id))
	}

	loose := make([]IndicatorResult, 0, len(f.loose))
	for _, id := range f.loose {
		loose = append(loose, leafResult(f.indicators[id]))
	}
	return roots, loose
}

// rollupNode is the post-order traversal: aggregate the children first, then
// fold in the directly attached indicators. The build already guarantees the
// hierarchy is acyclic.
func (f *Forest) rollupNode(id int) *GroupResult {
	n := f.nodes[id]
	res := &GroupResult{
		GroupID: n.group.ID,
		Name:    n.group.Name,
		Unit:    n.group.Unit,
		Level:   n.group.Level,
	}

	for _, childID := range n.children {
		child := f.rollupNode(childID)
		res.Children = append(res.Children, child)
		res.Target += child.Target
		res.Achieved += child.Achieved
		for q := 0; q < 4; q++ {
			res.Quarters[q] += child.Quarters[q]
		}
	}

	for _, indID := range n.indicators {
		ind := f.indicators[indID]
		leaf := leafResult(ind)
		res.Indicators = append(res.Indicators, leaf)
		res.Target += ind.Target
		res.Achieved += ind.Achieved
		for q := 0; q < 4; q++ {
			res.Quarters[q] += ind.Quarters[q]
		}
	}

	res.Pct = Percentage(res.Target, res.Achieved)
	res.Band = Classify(res.Pct)
	return res
}

func leafResult(ind *IndicatorPerf) IndicatorResult {
	pct := Percentage(ind.Target, ind.Achieved)
	return IndicatorResult{
		ID:       ind.ID,
		Name:     ind.Name,
		Unit:     ind.Unit,
		Target:   ind.Target,
		Achieved: ind.Achieved,
		Quarters: ind.Quarters,
		Pct:      pct,
		Band:     Classify(pct),
	}
}

// BandCounts tallies results per band across a result tree. No Data is a
// separate bucket from 0%: an indicator with a defined 0% lands in Requires
// Intervention, not No Data.
func BandCounts(roots []*GroupResult, loose []IndicatorResult) map[Band]int {
	counts := make(map[Band]int, len(AllBands))
	var walk func(g *GroupResult)
	walk = func(g *GroupResult) {
		for _, ind := range g.Indicators {
			counts[ind.Band]++
		}
		for _, c := range g.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	for _, ind := range loose {
		counts[ind.Band]++
	}
	return counts
}
