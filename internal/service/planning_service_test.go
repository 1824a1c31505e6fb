package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agriplan/internal/model"
	"agriplan/internal/repository"
	"agriplan/internal/workflow"
)

// --- in-memory fakes ---

type fakePlans struct {
	byID map[int]*model.AnnualPlan
}

func (f *fakePlans) GetByID(_ context.Context, id int) (*model.AnnualPlan, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlans) ListByYear(_ context.Context, year int, scope repository.PlanScope) ([]model.AnnualPlan, error) {
	out := []model.AnnualPlan{}
	for _, p := range f.byID {
		if p.Year != year {
			continue
		}
		if scope.SectorID != nil && p.SectorID != *scope.SectorID {
			continue
		}
		if scope.DepartmentID != nil && p.DepartmentID != *scope.DepartmentID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePlans) Insert(_ context.Context, p *model.AnnualPlan) (int, error) {
	p.ID = len(f.byID) + 1
	cp := *p
	f.byID[p.ID] = &cp
	return p.ID, nil
}

type fakeBreakdowns struct {
	byID  map[int]*model.QuarterlyBreakdown
	plans *fakePlans
}

func (f *fakeBreakdowns) GetByID(_ context.Context, id int) (*model.QuarterlyBreakdown, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBreakdowns) GetByPlanID(_ context.Context, planID int) (*model.QuarterlyBreakdown, error) {
	for _, b := range f.byID {
		if b.PlanID == planID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, repository.ErrNoRows
}

func (f *fakeBreakdowns) Insert(_ context.Context, b *model.QuarterlyBreakdown) (int, error) {
	b.ID = len(f.byID) + 1
	cp := *b
	f.byID[b.ID] = &cp
	return b.ID, nil
}

func (f *fakeBreakdowns) UpdateValues(_ context.Context, id int, q1, q2, q3, q4 float64) error {
	b, ok := f.byID[id]
	if !ok {
		return repository.ErrNoRows
	}
	b.Q1, b.Q2, b.Q3, b.Q4 = q1, q2, q3, q4
	return nil
}

func (f *fakeBreakdowns) MarkSubmitted(_ context.Context, id, userID int, at time.Time) error {
	b, ok := f.byID[id]
	if !ok {
		return repository.ErrNoRows
	}
	b.Status = workflow.StatusSubmitted
	b.SubmittedBy = &userID
	b.SubmittedAt = &at
	return nil
}

func (f *fakeBreakdowns) MarkReviewed(_ context.Context, id int, status workflow.Status, userID int, comment string, at time.Time) error {
	b, ok := f.byID[id]
	if !ok {
		return repository.ErrNoRows
	}
	b.Status = status
	b.ReviewedBy = &userID
	b.ReviewComment = comment
	b.ReviewedAt = &at
	return nil
}

func (f *fakeBreakdowns) MarkValidated(_ context.Context, id, userID int, at time.Time) error {
	b, ok := f.byID[id]
	if !ok {
		return repository.ErrNoRows
	}
	b.Status = workflow.StatusValidated
	b.ValidatedBy = &userID
	b.ValidatedAt = &at
	return nil
}

func (f *fakeBreakdowns) MarkFinalApproved(_ context.Context, id, userID int, at time.Time) error {
	b, ok := f.byID[id]
	if !ok {
		return repository.ErrNoRows
	}
	b.Status = workflow.StatusFinalApproved
	b.FinalApprovedBy = &userID
	b.FinalApprovedAt = &at
	return nil
}

func (f *fakeBreakdowns) AppendComment(_ context.Context, id int, comment string) error {
	b, ok := f.byID[id]
	if !ok {
		return repository.ErrNoRows
	}
	if b.ReviewComment != "" {
		b.ReviewComment += "\n" + comment
	} else {
		b.ReviewComment = comment
	}
	return nil
}

func (f *fakeBreakdowns) ListByYear(_ context.Context, year int, scope repository.PlanScope, statuses []workflow.Status) ([]model.QuarterlyBreakdown, error) {
	out := []model.QuarterlyBreakdown{}
	for _, b := range f.byID {
		plan, ok := f.plans.byID[b.PlanID]
		if !ok || plan.Year != year {
			continue
		}
		if scope.SectorID != nil && plan.SectorID != *scope.SectorID {
			continue
		}
		if scope.DepartmentID != nil && plan.DepartmentID != *scope.DepartmentID {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, st := range statuses {
				if b.Status == st {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *b)
	}
	return out, nil
}

type fakePerformances struct {
	byID map[int]*model.QuarterlyPerformance
}

func (f *fakePerformances) GetByID(_ context.Context, id int) (*model.QuarterlyPerformance, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (f *fakePerformances) GetByPlanQuarter(_ context.Context, planID, quarter int) (*model.QuarterlyPerformance, error) {
	for _, p := range f.byID {
		if p.PlanID == planID && p.Quarter == quarter {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNoRows
}

func (f *fakePerformances) Insert(_ context.Context, p *model.QuarterlyPerformance) (int, error) {
	p.ID = len(f.byID) + 1
	cp := *p
	f.byID[p.ID] = &cp
	return p.ID, nil
}

func (f *fakePerformances) UpdateValue(_ context.Context, id int, value float64) error {
	p, ok := f.byID[id]
	if !ok {
		return repository.ErrNoRows
	}
	p.Value = value
	return nil
}

func (f *fakePerformances) MarkSubmitted(_ context.Context, id, userID int, at time.Time) error {
	p, ok := f.byID[id]
	if !ok {
		return repository.ErrNoRows
	}
	p.Status = workflow.StatusSubmitted
	p.SubmittedBy = &userID
	p.SubmittedAt = &at
	return nil
}

func (f *fakePerformances) MarkReviewed(_ context.Context, id int, status workflow.Status, userID int, comment string, at time.Time) error {
	p, ok := f.byID[id]
	if !ok {
		return repository.ErrNoRows
	}
	p.Status = status
	p.ReviewedBy = &userID
	p.ReviewComment = comment
	p.ReviewedAt = &at
	return nil
}

func (f *fakePerformances) MarkValidated(_ context.Context, id, userID int, at time.Time) error {
	p, ok := f.byID[id]
	if !ok {
		return repository.ErrNoRows
	}
	p.Status = workflow.StatusValidated
	p.ValidatedBy = &userID
	p.ValidatedAt = &at
	return nil
}

func (f *fakePerformances) MarkFinalApproved(_ context.Context, id, userID int, at time.Time) error {
	p, ok := f.byID[id]
	if !ok {
		return repository.ErrNoRows
	}
	p.Status = workflow.StatusFinalApproved
	p.FinalApprovedBy = &userID
	p.FinalApprovedAt = &at
	return nil
}

func (f *fakePerformances) AppendComment(_ context.Context, id int, comment string) error {
	p, ok := f.byID[id]
	if !ok {
		return repository.ErrNoRows
	}
	if p.ReviewComment != "" {
		p.ReviewComment += "\n" + comment
	} else {
		p.ReviewComment = comment
	}
	return nil
}

func (f *fakePerformances) List(_ context.Context, year, quarter int, scope repository.PlanScope, statuses []workflow.Status) ([]model.QuarterlyPerformance, error) {
	out := []model.QuarterlyPerformance{}
	for _, p := range f.byID {
		if p.Quarter == quarter {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeWindows struct {
	windows []model.SubmissionWindow
}

func (f *fakeWindows) List(_ context.Context) ([]model.SubmissionWindow, error) {
	return f.windows, nil
}

type fakePublisher struct {
	events []model.PlanEvent
	keys   []string
}

func (f *fakePublisher) Publish(routingKey string, payload any) error {
	f.keys = append(f.keys, routingKey)
	if ev, ok := payload.(model.PlanEvent); ok {
		f.events = append(f.events, ev)
	}
	return nil
}

// --- fixture ---

type fixture struct {
	svc          *PlanningService
	plans        *fakePlans
	breakdowns   *fakeBreakdowns
	performances *fakePerformances
	windows      *fakeWindows
	publisher    *fakePublisher

	encoder       *model.User
	stateMinister *model.User
	strategic     *model.User
	executive     *model.User
	advisor       *model.User
}

func intp(v int) *int { return &v }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	plans := &fakePlans{byID: map[int]*model.AnnualPlan{
		1: {ID: 1, Year: 2017, IndicatorID: 10, Target: 1000, SectorID: 2, DepartmentID: 3},
	}}
	breakdowns := &fakeBreakdowns{byID: map[int]*model.QuarterlyBreakdown{}, plans: plans}
	performances := &fakePerformances{byID: map[int]*model.QuarterlyPerformance{}}
	windows := &fakeWindows{}
	publisher := &fakePublisher{}

	svc := NewPlanningService(plans, breakdowns, performances, windows, publisher, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) }

	return &fixture{
		svc:          svc,
		plans:        plans,
		breakdowns:   breakdowns,
		performances: performances,
		windows:      windows,
		publisher:    publisher,

		encoder:       &model.User{ID: 100, Role: workflow.RoleLeadExecutiveBody, SectorID: intp(2), DepartmentID: intp(3), IsActive: true},
		stateMinister: &model.User{ID: 200, Role: workflow.RoleStateMinister, SectorID: intp(2), IsActive: true},
		strategic:     &model.User{ID: 300, Role: workflow.RoleStrategicStaff, IsActive: true},
		executive:     &model.User{ID: 400, Role: workflow.RoleExecutive, IsActive: true},
		advisor:       &model.User{ID: 500, Role: workflow.RoleAdvisor, SectorID: intp(2), IsActive: true},
	}
}

// --- tests ---

func TestBreakdownLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.EnsureBreakdown(ctx, f.encoder, 1)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusDraft, view.Status)
	assert.True(t, view.Mismatched, "empty breakdown does not match a 1000 target")

	view, err = f.svc.UpdateBreakdown(ctx, f.encoder, view.ID, 250, 250, 250, 250)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, view.Total)
	assert.False(t, view.Mismatched)

	view, err = f.svc.SubmitBreakdown(ctx, f.encoder, view.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusSubmitted, view.Status)
	require.Contains(t, f.publisher.keys, "breakdown.submitted")

	view, err = f.svc.ReviewBreakdown(ctx, f.stateMinister, view.ID, workflow.ActionReject, "insufficient detail")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusRejected, view.Status)
	assert.Equal(t, "insufficient detail", view.ReviewComment)

	// Rejected records stay editable and the comment survives until resubmit.
	view, err = f.svc.UpdateBreakdown(ctx, f.encoder, view.ID, 250, 250, 250, 260)
	require.NoError(t, err)
	assert.Equal(t, 1010.0, view.Total)
	assert.True(t, view.Mismatched)

	// A mismatched total is a warning, never a submission blocker.
	view, err = f.svc.SubmitBreakdown(ctx, f.encoder, view.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusSubmitted, view.Status)
	assert.True(t, view.Mismatched)

	view, err = f.svc.ReviewBreakdown(ctx, f.stateMinister, view.ID, workflow.ActionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusApproved, view.Status)

	view, err = f.svc.ReviewBreakdown(ctx, f.strategic, view.ID, workflow.ActionValidate, "")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusValidated, view.Status)

	view, err = f.svc.ReviewBreakdown(ctx, f.executive, view.ID, workflow.ActionFinalApprove, "")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusFinalApproved, view.Status)

	// FINAL_APPROVED is terminal.
	_, err = f.svc.ReviewBreakdown(ctx, f.stateMinister, view.ID, workflow.ActionReject, "too late")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, f.publisher.keys, "breakdown.reviewed")
}

func TestSubmitBlockedByClosedWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.EnsureBreakdown(ctx, f.encoder, 1)
	require.NoError(t, err)

	past := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	f.windows.windows = []model.SubmissionWindow{
		{ID: 1, WindowType: model.WindowBreakdown, Year: intp(2017), Start: &past, End: &end, Active: true},
	}

	_, err = f.svc.SubmitBreakdown(ctx, f.encoder, view.ID)
	assert.ErrorIs(t, err, ErrEntryWindowClosed)
	assert.Contains(t, err.Error(), "entry window closed")

	_, err = f.svc.UpdateBreakdown(ctx, f.encoder, view.ID, 1, 2, 3, 4)
	assert.ErrorIs(t, err, ErrEntryWindowClosed)

	// An inactive window does not gate anything.
	f.windows.windows[0].Active = false
	_, err = f.svc.SubmitBreakdown(ctx, f.encoder, view.ID)
	assert.NoError(t, err)
}

func TestRoleChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.EnsureBreakdown(ctx, f.encoder, 1)
	require.NoError(t, err)

	// Only the lead executive body submits.
	_, err = f.svc.SubmitBreakdown(ctx, f.advisor, view.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Reviewers cannot edit values.
	_, err = f.svc.UpdateBreakdown(ctx, f.stateMinister, view.ID, 1, 2, 3, 4)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.SubmitBreakdown(ctx, f.encoder, view.ID)
	require.NoError(t, err)

	// Approval is the state minister's action alone.
	_, err = f.svc.ReviewBreakdown(ctx, f.strategic, view.ID, workflow.ActionApprove, "")
	assert.ErrorIs(t, err, ErrForbidden)

	// A state minister from another sector never sees the record.
	otherMinister := &model.User{ID: 201, Role: workflow.RoleStateMinister, SectorID: intp(9), IsActive: true}
	_, err = f.svc.ReviewBreakdown(ctx, otherMinister, view.ID, workflow.ActionApprove, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStrategicStaffRejectionNeedsComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.EnsureBreakdown(ctx, f.encoder, 1)
	require.NoError(t, err)
	_, err = f.svc.SubmitBreakdown(ctx, f.encoder, view.ID)
	require.NoError(t, err)
	view, err = f.svc.ReviewBreakdown(ctx, f.stateMinister, view.ID, workflow.ActionApprove, "")
	require.NoError(t, err)

	_, err = f.svc.ReviewBreakdown(ctx, f.strategic, view.ID, workflow.ActionReject, "")
	assert.ErrorIs(t, err, ErrValidation)

	view2, err := f.svc.ReviewBreakdown(ctx, f.strategic, view.ID, workflow.ActionReject, "numbers do not add up")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusRejected, view2.Status)
}

func TestAdvisorReviewKeepsStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.EnsureBreakdown(ctx, f.encoder, 1)
	require.NoError(t, err)
	_, err = f.svc.SubmitBreakdown(ctx, f.encoder, view.ID)
	require.NoError(t, err)

	view, err = f.svc.AdvisorReviewBreakdown(ctx, f.advisor, view.ID, "consider seasonal rainfall")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusSubmitted, view.Status, "advisory feedback never moves the record")
	assert.Contains(t, view.ReviewComment, "Advisor: consider seasonal rainfall")

	_, err = f.svc.AdvisorReviewBreakdown(ctx, f.stateMinister, view.ID, "not my lane")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestPerformanceRequiresApprovedBreakdown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// No breakdown at all.
	_, err := f.svc.EnsurePerformance(ctx, f.encoder, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	view, err := f.svc.EnsureBreakdown(ctx, f.encoder, 1)
	require.NoError(t, err)

	// A draft breakdown is not enough.
	_, err = f.svc.EnsurePerformance(ctx, f.encoder, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.SubmitBreakdown(ctx, f.encoder, view.ID)
	require.NoError(t, err)
	_, err = f.svc.ReviewBreakdown(ctx, f.stateMinister, view.ID, workflow.ActionApprove, "")
	require.NoError(t, err)

	perf, err := f.svc.EnsurePerformance(ctx, f.encoder, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusDraft, perf.Status)

	perf, err = f.svc.UpdatePerformance(ctx, f.encoder, perf.ID, 240)
	require.NoError(t, err)
	assert.Equal(t, 240.0, perf.Value)

	perf, err = f.svc.SubmitPerformance(ctx, f.encoder, perf.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusSubmitted, perf.Status)
	assert.Contains(t, f.publisher.keys, "performance.submitted")
}

func TestPerformanceQuarterBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, q := range []int{0, 5, -1} {
		_, err := f.svc.EnsurePerformance(ctx, f.encoder, 1, q)
		assert.ErrorIs(t, err, ErrValidation, "quarter %d must be rejected", q)
	}
}

func TestMinisterViewSeesOnlyApproved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.EnsureBreakdown(ctx, f.encoder, 1)
	require.NoError(t, err)

	minister := &model.User{ID: 600, Role: workflow.RoleMinisterView, IsActive: true}
	_, err = f.svc.GetBreakdown(ctx, minister, view.ID)
	assert.ErrorIs(t, err, ErrNotFound, "drafts are invisible to the minister view")

	views, err := f.svc.ListBreakdowns(ctx, minister, 2017)
	require.NoError(t, err)
	assert.Empty(t, views)

	_, err = f.svc.SubmitBreakdown(ctx, f.encoder, view.ID)
	require.NoError(t, err)
	_, err = f.svc.ReviewBreakdown(ctx, f.stateMinister, view.ID, workflow.ActionApprove, "")
	require.NoError(t, err)

	got, err := f.svc.GetBreakdown(ctx, minister, view.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusApproved, got.Status)

	views, err = f.svc.ListBreakdowns(ctx, minister, 2017)
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestEnsureBreakdownIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.EnsureBreakdown(ctx, f.encoder, 1)
	require.NoError(t, err)
	second, err := f.svc.EnsureBreakdown(ctx, f.encoder, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.breakdowns.byID, 1)
}

func TestPlanProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.EnsureBreakdown(ctx, f.encoder, 1)
	require.NoError(t, err)
	_, err = f.svc.SubmitBreakdown(ctx, f.encoder, view.ID)
	require.NoError(t, err)
	_, err = f.svc.ReviewBreakdown(ctx, f.stateMinister, view.ID, workflow.ActionApprove, "")
	require.NoError(t, err)

	for quarter, value := range map[int]float64{1: 240, 2: 260} {
		perf, err := f.svc.EnsurePerformance(ctx, f.encoder, 1, quarter)
		require.NoError(t, err)
		_, err = f.svc.UpdatePerformance(ctx, f.encoder, perf.ID, value)
		require.NoError(t, err)
	}

	progress, err := f.svc.Progress(ctx, f.encoder, 1)
	require.NoError(t, err)
	assert.Equal(t, 500.0, progress.Achieved)
	assert.Equal(t, 50.0, progress.Percent)

	// Draft entries are invisible to the minister view, so its progress
	// reads zero until the quarters clear approval.
	minister := &model.User{ID: 600, Role: workflow.RoleMinisterView, IsActive: true}
	progress, err = f.svc.Progress(ctx, minister, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, progress.Achieved)

	_, err = f.svc.Progress(ctx, f.encoder, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
