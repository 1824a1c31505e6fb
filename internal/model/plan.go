package model

import (
	"time"

	"agriplan/internal/workflow"
)

// AnnualPlan is one indicator's annual numeric target for one year.
// Unique per (indicator, year); writable only by administrators.
type AnnualPlan struct {
	ID          int       `json:"id"`
	Year        int       `json:"year"`
	IndicatorID int       `json:"indicator"`
	Target      float64   `json:"target"`
	CreatedBy   *int      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`

	// Enrichment fields joined from the indicator hierarchy for list views.
	IndicatorName  string `json:"indicator_name,omitempty"`
	IndicatorUnit  string `json:"indicator_unit,omitempty"`
	DepartmentID   int    `json:"department_id,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	SectorID       int    `json:"sector_id,omitempty"`
	SectorName     string `json:"sector_name,omitempty"`
}

// QuarterlyBreakdown distributes a plan's annual target across four quarters.
// At most one per plan; created lazily with zeroed quarters on first edit.
type QuarterlyBreakdown struct {
	ID     int             `json:"id"`
	PlanID int             `json:"plan"`
	Q1     float64         `json:"q1"`
	Q2     float64         `json:"q2"`
	Q3     float64         `json:"q3"`
	Q4     float64         `json:"q4"`
	Status workflow.Status `json:"status"`

	SubmittedBy     *int       `json:"submitted_by"`
	SubmittedAt     *time.Time `json:"submitted_at"`
	ReviewedBy      *int       `json:"reviewed_by"`
	ReviewComment   string     `json:"review_comment"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	ValidatedBy     *int       `json:"validated_by"`
	ValidatedAt     *time.Time `json:"validated_at"`
	FinalApprovedBy *int       `json:"final_approved_by"`
	FinalApprovedAt *time.Time `json:"final_approved_at"`
}

// QuarterlyPerformance is one quarter's actual achieved value against a plan.
// At most one per (plan, quarter); gated on breakdown approval.
type QuarterlyPerformance struct {
	ID      int             `json:"id"`
	PlanID  int             `json:"plan"`
	Quarter int             `json:"quarter"`
	Value   float64         `json:"value"`
	Status  workflow.Status `json:"status"`

	SubmittedBy     *int       `json:"submitted_by"`
	SubmittedAt     *time.Time `json:"submitted_at"`
	ReviewedBy      *int       `json:"reviewed_by"`
	ReviewComment   string     `json:"review_comment"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	ValidatedBy     *int       `json:"validated_by"`
	ValidatedAt     *time.Time `json:"validated_at"`
	FinalApprovedBy *int       `json:"final_approved_by"`
	FinalApprovedAt *time.Time `json:"final_approved_at"`
}

// AdvisorComment is advisory feedback attached to a sector/department for a
// year. It never moves a record through the pipeline.
type AdvisorComment struct {
	ID           int       `json:"id"`
	AuthorID     int       `json:"author"`
	AuthorName   string    `json:"author_name,omitempty"`
	Year         int       `json:"year"`
	SectorID     *int      `json:"sector"`
	DepartmentID *int      `json:"department"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}
