package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agriplan/internal/model"
)

func intPtr(v int) *int              { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsOpen_NoWindowsDefaultsOpen(t *testing.T) {
	g := NewGate(nil)
	assert.True(t, g.IsOpen(model.WindowBreakdown, 2017, date(2025, time.March, 1)))
}

func TestIsOpen_AlwaysOpenIgnoresBounds(t *testing.T) {
	// alwaysOpen wins regardless of start/end, including nil/nil.
	g := NewGate([]model.SubmissionWindow{
		{WindowType: model.WindowBreakdown, AlwaysOpen: true, Active: true},
	})
	assert.True(t, g.IsOpen(model.WindowBreakdown, 2017, date(2025, time.March, 1)))

	past := date(2000, time.January, 1)
	g = NewGate([]model.SubmissionWindow{
		{
			WindowType: model.WindowBreakdown,
			AlwaysOpen: true,
			Active:     true,
			Start:      timePtr(past),
			End:        timePtr(past.AddDate(0, 0, 1)),
		},
	})
	assert.True(t, g.IsOpen(model.WindowBreakdown, 2017, date(2025, time.March, 1)))
}

func TestIsOpen_InclusiveBounds(t *testing.T) {
	start := date(2025, time.June, 22)
	end := date(2025, time.June, 26)
	g := NewGate([]model.SubmissionWindow{
		{WindowType: model.WindowBreakdown, Active: true, Start: timePtr(start), End: timePtr(end)},
	})

	assert.False(t, g.IsOpen(model.WindowBreakdown, 2017, start.Add(-time.Second)))
	assert.True(t, g.IsOpen(model.WindowBreakdown, 2017, start))
	assert.True(t, g.IsOpen(model.WindowBreakdown, 2017, date(2025, time.June, 24)))
	assert.True(t, g.IsOpen(model.WindowBreakdown, 2017, end))
	assert.False(t, g.IsOpen(model.WindowBreakdown, 2017, end.Add(time.Second)))
}

func TestIsOpen_MissingBoundUnbounded(t *testing.T) {
	end := date(2025, time.June, 26)
	g := NewGate([]model.SubmissionWindow{
		{WindowType: model.WindowPerformanceQ1, Active: true, End: timePtr(end)},
	})
	assert.True(t, g.IsOpen(model.WindowPerformanceQ1, 2017, date(1990, time.January, 1)))
	assert.False(t, g.IsOpen(model.WindowPerformanceQ1, 2017, end.AddDate(0, 0, 1)))

	start := date(2025, time.June, 22)
	g = NewGate([]model.SubmissionWindow{
		{WindowType: model.WindowPerformanceQ1, Active: true, Start: timePtr(start)},
	})
	assert.False(t, g.IsOpen(model.WindowPerformanceQ1, 2017, start.AddDate(0, 0, -1)))
	assert.True(t, g.IsOpen(model.WindowPerformanceQ1, 2017, date(2099, time.January, 1)))
}

func TestIsOpen_YearSpecificBeatsGlobal(t *testing.T) {
	// A closed year-specific window overrides an always-open global one.
	g := NewGate([]model.SubmissionWindow{
		{WindowType: model.WindowBreakdown, AlwaysOpen: true, Active: true},
		{
			WindowType: model.WindowBreakdown,
			Year:       intPtr(2017),
			Active:     true,
			Start:      timePtr(date(2025, time.June, 22)),
			End:        timePtr(date(2025, time.June, 26)),
		},
	})

	assert.False(t, g.IsOpen(model.WindowBreakdown, 2017, date(2025, time.March, 1)))
	assert.True(t, g.IsOpen(model.WindowBreakdown, 2017, date(2025, time.June, 23)))
	// Other years fall back to the global window.
	assert.True(t, g.IsOpen(model.WindowBreakdown, 2016, date(2025, time.March, 1)))
}

func TestIsOpen_InactiveWindowsIgnored(t *testing.T) {
	g := NewGate([]model.SubmissionWindow{
		{
			WindowType: model.WindowBreakdown,
			Active:     false,
			Start:      timePtr(date(2025, time.June, 22)),
			End:        timePtr(date(2025, time.June, 26)),
		},
	})
	// Only inactive windows configured: the stage defaults to open.
	assert.True(t, g.IsOpen(model.WindowBreakdown, 2017, date(2025, time.March, 1)))
}

func TestIsOpen_TypesAreIndependent(t *testing.T) {
	g := NewGate([]model.SubmissionWindow{
		{
			WindowType: model.WindowPerformanceQ2,
			Active:     true,
			Start:      timePtr(date(2025, time.October, 11)),
			End:        timePtr(date(2026, time.January, 18)),
		},
	})
	assert.False(t, g.IsOpen(model.WindowPerformanceQ2, 2017, date(2025, time.March, 1)))
	// Q1 has no window at all and stays open.
	assert.True(t, g.IsOpen(model.WindowPerformanceQ1, 2017, date(2025, time.March, 1)))
}
