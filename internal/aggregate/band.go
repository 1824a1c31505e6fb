package aggregate

// Band is the categorical label assigned to a performance percentage.
type Band string

const (
	BandNoData               Band = "No Data"
	BandAchieved             Band = "Achieved"
	BandOnTrack              Band = "On Track"
	BandInProgress           Band = "In Progress"
	BandWeakPerformance      Band = "Weak Performance"
	BandRequiresIntervention Band = "Requires Intervention"
)

// AllBands in display order, No Data last.
var AllBands = []Band{
	BandAchieved,
	BandOnTrack,
	BandInProgress,
	BandWeakPerformance,
	BandRequiresIntervention,
	BandNoData,
}

// Classify maps a performance percentage to its band. Bands are closed on the
// lower bound and open on the upper: exactly 85 is On Track, exactly 50 is
// Weak Performance. A nil percentage means no data, never 0%.
func Classify(pct *float64) Band {
	if pct == nil {
		return BandNoData
	}
	p := *pct
	switch {
	case p >= 95:
		return BandAchieved
	case p >= 85:
		return BandOnTrack
	case p >= 65:
		return BandInProgress
	case p >= 50:
		return BandWeakPerformance
	default:
		return BandRequiresIntervention
	}
}

// Percentage computes achieved/target*100, or nil when the target is not
// positive. Division by zero is never raised; it maps to the no-data sentinel.
func Percentage(target, achieved float64) *float64 {
	if target <= 0 {
		return nil
	}
	p := achieved / target * 100
	return &p
}
