package service

import (
	"context"
	"time"

	"agriplan/internal/model"
	"agriplan/internal/repository"
	"agriplan/internal/workflow"
)

// Store interfaces mirror the repository methods each service consumes, so
// tests can swap in in-memory fakes without a database.

type PlanStore interface {
	GetByID(ctx context.Context, id int) (*model.AnnualPlan, error)
	ListByYear(ctx context.Context, year int, scope repository.PlanScope) ([]model.AnnualPlan, error)
	Insert(ctx context.Context, p *model.AnnualPlan) (int, error)
}

type BreakdownStore interface {
	GetByID(ctx context.Context, id int) (*model.QuarterlyBreakdown, error)
	GetByPlanID(ctx context.Context, planID int) (*model.QuarterlyBreakdown, error)
	Insert(ctx context.Context, b *model.QuarterlyBreakdown) (int, error)
	UpdateValues(ctx context.Context, id int, q1, q2, q3, q4 float64) error
	MarkSubmitted(ctx context.Context, id, userID int, at time.Time) error
	MarkReviewed(ctx context.Context, id int, status workflow.Status, userID int, comment string, at time.Time) error
	MarkValidated(ctx context.Context, id, userID int, at time.Time) error
	MarkFinalApproved(ctx context.Context, id, userID int, at time.Time) error
	AppendComment(ctx context.Context, id int, comment string) error
	ListByYear(ctx context.Context, year int, scope repository.PlanScope, statuses []workflow.Status) ([]model.QuarterlyBreakdown, error)
}

type PerformanceStore interface {
	GetByID(ctx context.Context, id int) (*model.QuarterlyPerformance, error)
	GetByPlanQuarter(ctx context.Context, planID, quarter int) (*model.QuarterlyPerformance, error)
	Insert(ctx context.Context, p *model.QuarterlyPerformance) (int, error)
	UpdateValue(ctx context.Context, id int, value float64) error
	MarkSubmitted(ctx context.Context, id, userID int, at time.Time) error
	MarkReviewed(ctx context.Context, id int, status workflow.Status, userID int, comment string, at time.Time) error
	MarkValidated(ctx context.Context, id, userID int, at time.Time) error
	MarkFinalApproved(ctx context.Context, id, userID int, at time.Time) error
	AppendComment(ctx context.Context, id int, comment string) error
	List(ctx context.Context, year, quarter int, scope repository.PlanScope, statuses []workflow.Status) ([]model.QuarterlyPerformance, error)
}

type WindowStore interface {
	List(ctx context.Context) ([]model.SubmissionWindow, error)
}

// EventPublisher is the MQ surface the services touch. Publishing is
// best-effort: a broker outage never fails a workflow write.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// DashboardInvalidator drops cached aggregation results after a mutation.
type DashboardInvalidator interface {
	InvalidateYear(ctx context.Context, year int)
}
