package model

import "time"

// WindowType identifies which workflow stage a submission window controls
type WindowType string

const (
	WindowBreakdown     WindowType = "BREAKDOWN"
	WindowPerformanceQ1 WindowType = "PERFORMANCE_Q1"
	WindowPerformanceQ2 WindowType = "PERFORMANCE_Q2"
	WindowPerformanceQ3 WindowType = "PERFORMANCE_Q3"
	WindowPerformanceQ4 WindowType = "PERFORMANCE_Q4"
)

// PerformanceWindowType returns the window type for a quarter (1..4).
func PerformanceWindowType(quarter int) WindowType {
	switch quarter {
	case 1:
		return WindowPerformanceQ1
	case 2:
		return WindowPerformanceQ2
	case 3:
		return WindowPerformanceQ3
	case 4:
		return WindowPerformanceQ4
	}
	return ""
}

// SubmissionWindow is an admin-configured time range during which a workflow
// stage accepts writes. Year nil applies to all years.
type SubmissionWindow struct {
	ID         int        `json:"id"`
	WindowType WindowType `json:"window_type"`
	Year       *int       `json:"year"`
	AlwaysOpen bool       `json:"always_open"`
	Start      *time.Time `json:"start"`
	End        *time.Time `json:"end"`
	Active     bool       `json:"active"`
}
