package window

import (
	"time"

	"agriplan/internal/model"
)

// Gate decides whether a workflow stage is currently open for data entry.
// It is a pure predicate over the configured windows; callers load the rows.
type Gate struct {
	windows []model.SubmissionWindow
}

func NewGate(windows []model.SubmissionWindow) *Gate {
	return &Gate{windows: windows}
}

// IsOpen reports whether the stage identified by windowType accepts writes for
// the given year at now. Among active windows of the type, a year-specific
// match is preferred over a year-agnostic one; with no match at all the stage
// defaults to open.
func (g *Gate) IsOpen(windowType model.WindowType, year int, now time.Time) bool {
	win := g.selectWindow(windowType, year)
	if win == nil {
		return true
	}
	return evaluate(win, now)
}

func (g *Gate) selectWindow(windowType model.WindowType, year int) *model.SubmissionWindow {
	var global *model.SubmissionWindow
	for i := range g.windows {
		w := &g.windows[i]
		if w.WindowType != windowType || !w.Active {
			continue
		}
		if w.Year != nil {
			if *w.Year == year {
				return w
			}
			continue
		}
		if global == nil {
			global = w
		}
	}
	return global
}

// evaluate checks a single window: always-open wins regardless of bounds,
// otherwise start <= now <= end with a missing bound treated as unbounded.
func evaluate(w *model.SubmissionWindow, now time.Time) bool {
	if w.AlwaysOpen {
		return true
	}
	if w.Start != nil && now.Before(*w.Start) {
		return false
	}
	if w.End != nil && now.After(*w.End) {
		return false
	}
	return true
}
