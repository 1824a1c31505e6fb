package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"agriplan/internal/model"
	"agriplan/internal/planmath"
	"agriplan/internal/repository"
	"agriplan/internal/window"
	"agriplan/internal/workflow"
	"agriplan/pkg/metrics"
)

const (
	recordTypeBreakdown   = "breakdown"
	recordTypePerformance = "performance"
)

// PlanningService owns the review pipeline for breakdowns and performances:
// ensure-create, value edits, submission and the reviewer actions. Every
// write re-checks role, status and submission window server-side.
type PlanningService struct {
	plans        PlanStore
	breakdowns   BreakdownStore
	performances PerformanceStore
	windows      WindowStore
	publisher    EventPublisher
	dashboards   DashboardInvalidator
	logger       *zap.Logger
	now          func() time.Time
}

func NewPlanningService(
	plans PlanStore,
	breakdowns BreakdownStore,
	performances PerformanceStore,
	windows WindowStore,
	publisher EventPublisher,
	dashboards DashboardInvalidator,
	logger *zap.Logger,
) *PlanningService {
	return &PlanningService{
		plans:        plans,
		breakdowns:   breakdowns,
		performances: performances,
		windows:      windows,
		publisher:    publisher,
		dashboards:   dashboards,
		logger:       logger,
		now:          time.Now,
	}
}

// BreakdownView decorates a breakdown with the derived consistency fields.
// Mismatched is advisory: a mismatched record is still submittable, clients
// surface the warning.
type BreakdownView struct {
	model.QuarterlyBreakdown
	Target     float64 `json:"target"`
	Total      float64 `json:"total"`
	Mismatched bool    `json:"mismatched"`
}

func makeView(plan *model.AnnualPlan, b *model.QuarterlyBreakdown) *BreakdownView {
	return &BreakdownView{
		QuarterlyBreakdown: *b,
		Target:             plan.Target,
		Total:              planmath.Total(b),
		Mismatched:         planmath.Mismatched(plan.Target, b),
	}
}

// --- plans ---

func (s *PlanningService) ListPlans(ctx context.Context, user *model.User, year int) ([]model.AnnualPlan, error) {
	return s.plans.ListByYear(ctx, year, scopeFor(user))
}

func (s *PlanningService) GetPlan(ctx context.Context, user *model.User, id int) (*model.AnnualPlan, error) {
	plan, err := s.loadPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canAccessPlan(user, plan) {
		return nil, ErrNotFound
	}
	return plan, nil
}

func (s *PlanningService) CreatePlan(ctx context.Context, user *model.User, p *model.AnnualPlan) (*model.AnnualPlan, error) {
	if !user.IsSuperuser {
		return nil, ForbiddenError("only administrators can create annual plans")
	}
	if p.Target < 0 {
		return nil, ValidationError("target must not be negative")
	}
	if p.Year <= 0 {
		return nil, ValidationError("year is required")
	}
	p.CreatedBy = &user.ID
	if _, err := s.plans.Insert(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, p.Year)
	return p, nil
}

// PlanProgress reports a plan's achieved value to date against its annual
// target, covering only the quarters the caller is allowed to see.
type PlanProgress struct {
	Plan     model.AnnualPlan `json:"plan"`
	Achieved float64          `json:"achieved"`
	Percent  float64          `json:"percent"`
}

func (s *PlanningService) Progress(ctx context.Context, user *model.User, planID int) (*PlanProgress, error) {
	plan, err := s.loadPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !canAccessPlan(user, plan) {
		return nil, ErrNotFound
	}

	var perfs []model.QuarterlyPerformance
	for quarter := 1; quarter <= 4; quarter++ {
		p, err := s.performances.GetByPlanQuarter(ctx, planID, quarter)
		if errors.Is(err, repository.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if statusVisible(user, p.Status) {
			perfs = append(perfs, *p)
		}
	}

	progress := &PlanProgress{Plan: *plan, Achieved: planmath.QuarterTotal(perfs)}
	if plan.Target > 0 {
		progress.Percent = progress.Achieved / plan.Target * 100
	}
	return progress, nil
}

// --- breakdowns ---

// EnsureBreakdown returns the plan's breakdown, creating a zeroed DRAFT one
// on first access. Creation counts as data entry and so requires an open
// breakdown window.
func (s *PlanningService) EnsureBreakdown(ctx context.Context, user *model.User, planID int) (*BreakdownView, error) {
	plan, err := s.loadPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEncoder(user, plan); err != nil {
		return nil, err
	}

	b, err := s.breakdowns.GetByPlanID(ctx, planID)
	if err == nil {
		return makeView(plan, b), nil
	}
	if !errors.Is(err, repository.ErrNoRows) {
		return nil, err
	}

	if err := s.requireOpenWindow(ctx, model.WindowBreakdown, plan.Year); err != nil {
		return nil, err
	}
	b = &model.QuarterlyBreakdown{PlanID: planID, Status: workflow.StatusDraft}
	if _, err := s.breakdowns.Insert(ctx, b); err != nil {
		return nil, err
	}
	return makeView(plan, b), nil
}

func (s *PlanningService) GetBreakdown(ctx context.Context, user *model.User, id int) (*BreakdownView, error) {
	b, plan, err := s.loadBreakdown(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canAccessPlan(user, plan) || !statusVisible(user, b.Status) {
		return nil, ErrNotFound
	}
	return makeView(plan, b), nil
}

// UpdateBreakdown replaces the four quarterly values. Only the encoder may
// edit, only while the record is DRAFT or REJECTED, and only inside the
// breakdown window. A total that no longer matches the target is allowed.
func (s *PlanningService) UpdateBreakdown(ctx context.Context, user *model.User, id int, q1, q2, q3, q4 float64) (*BreakdownView, error) {
	b, plan, err := s.loadBreakdown(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireEncoder(user, plan); err != nil {
		return nil, err
	}
	if !b.Status.Editable() {
		return nil, TransitionError("only draft or rejected breakdowns can be edited")
	}
	if err := s.requireOpenWindow(ctx, model.WindowBreakdown, plan.Year); err != nil {
		return nil, err
	}
	if q1 < 0 || q2 < 0 || q3 < 0 || q4 < 0 {
		return nil, ValidationError("quarterly values must not be negative")
	}
	if err := s.breakdowns.UpdateValues(ctx, id, q1, q2, q3, q4); err != nil {
		return nil, notFoundErr(err)
	}
	b.Q1, b.Q2, b.Q3, b.Q4 = q1, q2, q3, q4
	s.invalidate(ctx, plan.Year)
	return makeView(plan, b), nil
}

func (s *PlanningService) SubmitBreakdown(ctx context.Context, user *model.User, id int) (*BreakdownView, error) {
	b, plan, err := s.loadBreakdown(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireAction(user, plan, workflow.ActionSubmit); err != nil {
		return nil, err
	}
	if err := s.requireOpenWindow(ctx, model.WindowBreakdown, plan.Year); err != nil {
		return nil, err
	}
	next, err := workflow.Next(b.Status, workflow.ActionSubmit)
	if err != nil {
		metrics.IncrementWorkflowTransition(recordTypeBreakdown, string(workflow.ActionSubmit), "denied")
		return nil, TransitionError(err.Error())
	}
	at := s.now()
	if err := s.breakdowns.MarkSubmitted(ctx, id, user.ID, at); err != nil {
		return nil, notFoundErr(err)
	}
	b.Status = next
	b.SubmittedBy = &user.ID
	b.SubmittedAt = &at
	metrics.IncrementWorkflowTransition(recordTypeBreakdown, string(workflow.ActionSubmit), "ok")
	s.publish(recordTypeBreakdown+".submitted", model.PlanEvent{
		RecordType: recordTypeBreakdown,
		RecordID:   b.ID,
		PlanID:     plan.ID,
		Year:       plan.Year,
		Action:     string(workflow.ActionSubmit),
		Status:     string(next),
	})
	s.invalidate(ctx, plan.Year)
	return makeView(plan, b), nil
}

// ReviewBreakdown applies one reviewer action: approve, validate,
// final_approve or reject. Strategic Affairs Staff rejections must carry a
// comment; other reviewers may reject without one.
func (s *PlanningService) ReviewBreakdown(ctx context.Context, user *model.User, id int, action workflow.Action, comment string) (*BreakdownView, error) {
	if action == workflow.ActionSubmit || !workflow.KnownAction(action) {
		return nil, ValidationError("unknown review action")
	}
	b, plan, err := s.loadBreakdown(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireAction(user, plan, action); err != nil {
		return nil, err
	}
	if action == workflow.ActionReject && comment == "" && workflow.RejectNeedsComment(user.Role) {
		return nil, ValidationError("a rejection comment is required")
	}
	next, err := workflow.Next(b.Status, action)
	if err != nil {
		metrics.IncrementWorkflowTransition(recordTypeBreakdown, string(action), "denied")
		return nil, TransitionError(err.Error())
	}
	at := s.now()
	switch action {
	case workflow.ActionApprove, workflow.ActionReject:
		err = s.breakdowns.MarkReviewed(ctx, id, next, user.ID, comment, at)
		b.ReviewedBy = &user.ID
		b.ReviewedAt = &at
		b.ReviewComment = comment
	case workflow.ActionValidate:
		err = s.breakdowns.MarkValidated(ctx, id, user.ID, at)
		b.ValidatedBy = &user.ID
		b.ValidatedAt = &at
	case workflow.ActionFinalApprove:
		err = s.breakdowns.MarkFinalApproved(ctx, id, user.ID, at)
		b.FinalApprovedBy = &user.ID
		b.FinalApprovedAt = &at
	}
	if err != nil {
		return nil, notFoundErr(err)
	}
	b.Status = next
	metrics.IncrementWorkflowTransition(recordTypeBreakdown, string(action), "ok")
	s.publish(recordTypeBreakdown+".reviewed", model.PlanEvent{
		RecordType: recordTypeBreakdown,
		RecordID:   b.ID,
		PlanID:     plan.ID,
		Year:       plan.Year,
		Action:     string(action),
		Status:     string(next),
		Message:    comment,
	})
	s.invalidate(ctx, plan.Year)
	return makeView(plan, b), nil
}

// AdvisorReviewBreakdown appends advisory feedback without touching the
// record's status. Only advisors (and administrators) may use it.
func (s *PlanningService) AdvisorReviewBreakdown(ctx context.Context, user *model.User, id int, comment string) (*BreakdownView, error) {
	if comment == "" {
		return nil, ValidationError("a comment is required")
	}
	b, plan, err := s.loadBreakdown(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsSuperuser && user.Role != workflow.RoleAdvisor {
		return nil, ForbiddenError("only advisors can leave advisory reviews")
	}
	if !canAccessPlan(user, plan) {
		return nil, ErrNotFound
	}
	noted := "Advisor: " + comment
	if err := s.breakdowns.AppendComment(ctx, id, noted); err != nil {
		return nil, notFoundErr(err)
	}
	if b.ReviewComment != "" {
		b.ReviewComment += "\n" + noted
	} else {
		b.ReviewComment = noted
	}
	s.publish(recordTypeBreakdown+".reviewed", model.PlanEvent{
		RecordType: recordTypeBreakdown,
		RecordID:   b.ID,
		PlanID:     plan.ID,
		Year:       plan.Year,
		Action:     "advisor_review",
		Status:     string(b.Status),
		Message:    noted,
	})
	return makeView(plan, b), nil
}

func (s *PlanningService) ListBreakdowns(ctx context.Context, user *model.User, year int) ([]BreakdownView, error) {
	scope := scopeFor(user)
	rows, err := s.breakdowns.ListByYear(ctx, year, scope, visibleStatuses(user))
	if err != nil {
		return nil, err
	}
	plans, err := s.plans.ListByYear(ctx, year, scope)
	if err != nil {
		return nil, err
	}
	targets := make(map[int]*model.AnnualPlan, len(plans))
	for i := range plans {
		targets[plans[i].ID] = &plans[i]
	}
	views := make([]BreakdownView, 0, len(rows))
	for i := range rows {
		plan, ok := targets[rows[i].PlanID]
		if !ok {
			continue
		}
		views = append(views, *makeView(plan, &rows[i]))
	}
	return views, nil
}

// --- performances ---

// EnsurePerformance returns the plan's performance record for the quarter,
// creating a zeroed DRAFT one on first access. Requires the plan's breakdown
// to have cleared State Minister approval and the quarter's window to be open.
func (s *PlanningService) EnsurePerformance(ctx context.Context, user *model.User, planID, quarter int) (*model.QuarterlyPerformance, error) {
	if quarter < 1 || quarter > 4 {
		return nil, ValidationError("quarter must be between 1 and 4")
	}
	plan, err := s.loadPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEncoder(user, plan); err != nil {
		return nil, err
	}
	if err := s.requireApprovedBreakdown(ctx, planID); err != nil {
		return nil, err
	}

	p, err := s.performances.GetByPlanQuarter(ctx, planID, quarter)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNoRows) {
		return nil, err
	}

	if err := s.requireOpenWindow(ctx, model.PerformanceWindowType(quarter), plan.Year); err != nil {
		return nil, err
	}
	p = &model.QuarterlyPerformance{PlanID: planID, Quarter: quarter, Status: workflow.StatusDraft}
	if _, err := s.performances.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PlanningService) GetPerformance(ctx context.Context, user *model.User, id int) (*model.QuarterlyPerformance, error) {
	p, plan, err := s.loadPerformance(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canAccessPlan(user, plan) || !statusVisible(user, p.Status) {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *PlanningService) UpdatePerformance(ctx context.Context, user *model.User, id int, value float64) (*model.QuarterlyPerformance, error) {
	p, plan, err := s.loadPerformance(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireEncoder(user, plan); err != nil {
		return nil, err
	}
	if !p.Status.Editable() {
		return nil, TransitionError("only draft or rejected performances can be edited")
	}
	if err := s.requireApprovedBreakdown(ctx, plan.ID); err != nil {
		return nil, err
	}
	if err := s.requireOpenWindow(ctx, model.PerformanceWindowType(p.Quarter), plan.Year); err != nil {
		return nil, err
	}
	if value < 0 {
		return nil, ValidationError("value must not be negative")
	}
	if err := s.performances.UpdateValue(ctx, id, value); err != nil {
		return nil, notFoundErr(err)
	}
	p.Value = value
	s.invalidate(ctx, plan.Year)
	return p, nil
}

func (s *PlanningService) SubmitPerformance(ctx context.Context, user *model.User, id int) (*model.QuarterlyPerformance, error) {
	p, plan, err := s.loadPerformance(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireAction(user, plan, workflow.ActionSubmit); err != nil {
		return nil, err
	}
	if err := s.requireApprovedBreakdown(ctx, plan.ID); err != nil {
		return nil, err
	}
	if err := s.requireOpenWindow(ctx, model.PerformanceWindowType(p.Quarter), plan.Year); err != nil {
		return nil, err
	}
	next, err := workflow.Next(p.Status, workflow.ActionSubmit)
	if err != nil {
		metrics.IncrementWorkflowTransition(recordTypePerformance, string(workflow.ActionSubmit), "denied")
		return nil, TransitionError(err.Error())
	}
	at := s.now()
	if err := s.performances.MarkSubmitted(ctx, id, user.ID, at); err != nil {
		return nil, notFoundErr(err)
	}
	p.Status = next
	p.SubmittedBy = &user.ID
	p.SubmittedAt = &at
	metrics.IncrementWorkflowTransition(recordTypePerformance, string(workflow.ActionSubmit), "ok")
	s.publish(recordTypePerformance+".submitted", model.PlanEvent{
		RecordType: recordTypePerformance,
		RecordID:   p.ID,
		PlanID:     plan.ID,
		Year:       plan.Year,
		Action:     string(workflow.ActionSubmit),
		Status:     string(next),
	})
	s.invalidate(ctx, plan.Year)
	return p, nil
}

func (s *PlanningService) ReviewPerformance(ctx context.Context, user *model.User, id int, action workflow.Action, comment string) (*model.QuarterlyPerformance, error) {
	if action == workflow.ActionSubmit || !workflow.KnownAction(action) {
		return nil, ValidationError("unknown review action")
	}
	p, plan, err := s.loadPerformance(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireAction(user, plan, action); err != nil {
		return nil, err
	}
	if action == workflow.ActionReject && comment == "" && workflow.RejectNeedsComment(user.Role) {
		return nil, ValidationError("a rejection comment is required")
	}
	next, err := workflow.Next(p.Status, action)
	if err != nil {
		metrics.IncrementWorkflowTransition(recordTypePerformance, string(action), "denied")
		return nil, TransitionError(err.Error())
	}
	at := s.now()
	switch action {
	case workflow.ActionApprove, workflow.ActionReject:
		err = s.performances.MarkReviewed(ctx, id, next, user.ID, comment, at)
		p.ReviewedBy = &user.ID
		p.ReviewedAt = &at
		p.ReviewComment = comment
	case workflow.ActionValidate:
		err = s.performances.MarkValidated(ctx, id, user.ID, at)
		p.ValidatedBy = &user.ID
		p.ValidatedAt = &at
	case workflow.ActionFinalApprove:
		err = s.performances.MarkFinalApproved(ctx, id, user.ID, at)
		p.FinalApprovedBy = &user.ID
		p.FinalApprovedAt = &at
	}
	if err != nil {
		return nil, notFoundErr(err)
	}
	p.Status = next
	metrics.IncrementWorkflowTransition(recordTypePerformance, string(action), "ok")
	s.publish(recordTypePerformance+".reviewed", model.PlanEvent{
		RecordType: recordTypePerformance,
		RecordID:   p.ID,
		PlanID:     plan.ID,
		Year:       plan.Year,
		Action:     string(action),
		Status:     string(next),
		Message:    comment,
	})
	s.invalidate(ctx, plan.Year)
	return p, nil
}

func (s *PlanningService) AdvisorReviewPerformance(ctx context.Context, user *model.User, id int, comment string) (*model.QuarterlyPerformance, error) {
	if comment == "" {
		return nil, ValidationError("a comment is required")
	}
	p, plan, err := s.loadPerformance(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsSuperuser && user.Role != workflow.RoleAdvisor {
		return nil, ForbiddenError("only advisors can leave advisory reviews")
	}
	if !canAccessPlan(user, plan) {
		return nil, ErrNotFound
	}
	noted := "Advisor: " + comment
	if err := s.performances.AppendComment(ctx, id, noted); err != nil {
		return nil, notFoundErr(err)
	}
	if p.ReviewComment != "" {
		p.ReviewComment += "\n" + noted
	} else {
		p.ReviewComment = noted
	}
	return p, nil
}

func (s *PlanningService) ListPerformances(ctx context.Context, user *model.User, year, quarter int) ([]model.QuarterlyPerformance, error) {
	if quarter < 1 || quarter > 4 {
		return nil, ValidationError("quarter must be between 1 and 4")
	}
	return s.performances.List(ctx, year, quarter, scopeFor(user), visibleStatuses(user))
}

// --- shared checks ---

func (s *PlanningService) loadPlan(ctx context.Context, id int) (*model.AnnualPlan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundErr(err)
	}
	return plan, nil
}

func (s *PlanningService) loadBreakdown(ctx context.Context, id int) (*model.QuarterlyBreakdown, *model.AnnualPlan, error) {
	b, err := s.breakdowns.GetByID(ctx, id)
	if err != nil {
		return nil, nil, notFoundErr(err)
	}
	plan, err := s.loadPlan(ctx, b.PlanID)
	if err != nil {
		return nil, nil, err
	}
	return b, plan, nil
}

func (s *PlanningService) loadPerformance(ctx context.Context, id int) (*model.QuarterlyPerformance, *model.AnnualPlan, error) {
	p, err := s.performances.GetByID(ctx, id)
	if err != nil {
		return nil, nil, notFoundErr(err)
	}
	plan, err := s.loadPlan(ctx, p.PlanID)
	if err != nil {
		return nil, nil, err
	}
	return p, plan, nil
}

// requireEncoder allows value edits only from the owning department's Lead
// Executive Body (or an administrator).
func (s *PlanningService) requireEncoder(user *model.User, plan *model.AnnualPlan) error {
	if user.IsSuperuser {
		return nil
	}
	if user.Role != workflow.RoleLeadExecutiveBody {
		return ForbiddenError("only the lead executive body can enter data")
	}
	if !canAccessPlan(user, plan) {
		return ErrNotFound
	}
	return nil
}

func (s *PlanningService) requireAction(user *model.User, plan *model.AnnualPlan, action workflow.Action) error {
	if !canAccessPlan(user, plan) {
		return ErrNotFound
	}
	if user.IsSuperuser || workflow.AllowedAction(user.Role, action) {
		return nil
	}
	return ForbiddenError("your role cannot " + string(action) + " this record")
}

// requireOpenWindow loads the configured windows and evaluates the gate.
// With no window configured the stage is open.
func (s *PlanningService) requireOpenWindow(ctx context.Context, windowType model.WindowType, year int) error {
	windows, err := s.windows.List(ctx)
	if err != nil {
		return err
	}
	if !window.NewGate(windows).IsOpen(windowType, year, s.now()) {
		metrics.IncrementWindowRejection(string(windowType))
		return ErrEntryWindowClosed
	}
	return nil
}

// requireApprovedBreakdown gates performance entry on the plan's breakdown
// having cleared at least State Minister approval.
func (s *PlanningService) requireApprovedBreakdown(ctx context.Context, planID int) error {
	b, err := s.breakdowns.GetByPlanID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return TransitionError("performance entry requires an approved quarterly breakdown")
		}
		return err
	}
	if !b.Status.AtLeastApproved() {
		return TransitionError("performance entry requires an approved quarterly breakdown")
	}
	return nil
}

// publish is best-effort: MQ failures are logged and never surfaced to the
// caller.
func (s *PlanningService) publish(routingKey string, event model.PlanEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, event); err != nil {
		s.logger.Warn("Failed to publish plan event",
			zap.Error(err),
			zap.String("routing_key", routingKey),
			zap.Int("record_id", event.RecordID),
		)
	}
}

func (s *PlanningService) invalidate(ctx context.Context, year int) {
	if s.dashboards != nil {
		s.dashboards.InvalidateYear(ctx, year)
	}
}

// scopeFor maps a user to their queryset scope: sector heads and advisors see
// their sector, the lead executive body sees its department, everyone above
// (and administrators) sees everything.
func scopeFor(user *model.User) repository.PlanScope {
	if user.IsSuperuser {
		return repository.PlanScope{}
	}
	switch user.Role {
	case workflow.RoleStateMinister, workflow.RoleAdvisor:
		return repository.PlanScope{SectorID: user.SectorID}
	case workflow.RoleLeadExecutiveBody:
		return repository.PlanScope{SectorID: user.SectorID, DepartmentID: user.DepartmentID}
	}
	return repository.PlanScope{}
}

func canAccessPlan(user *model.User, plan *model.AnnualPlan) bool {
	scope := scopeFor(user)
	if scope.SectorID != nil && plan.SectorID != *scope.SectorID {
		return false
	}
	if scope.DepartmentID != nil && plan.DepartmentID != *scope.DepartmentID {
		return false
	}
	return true
}

// visibleStatuses restricts MINISTER_VIEW to records that cleared approval;
// nil means no status filter.
func visibleStatuses(user *model.User) []workflow.Status {
	if user.Role == workflow.RoleMinisterView && !user.IsSuperuser {
		return []workflow.Status{workflow.StatusApproved, workflow.StatusValidated, workflow.StatusFinalApproved}
	}
	return nil
}

func statusVisible(user *model.User, status workflow.Status) bool {
	if user.Role == workflow.RoleMinisterView && !user.IsSuperuser {
		return status.AtLeastApproved()
	}
	return true
}
