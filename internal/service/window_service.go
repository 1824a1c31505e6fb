package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"agriplan/internal/calendar"
	"agriplan/internal/model"
	"agriplan/internal/window"
)

// WindowAdminStore extends WindowStore with the superuser CRUD surface.
type WindowAdminStore interface {
	WindowStore
	Insert(ctx context.Context, w *model.SubmissionWindow) (int, error)
	Update(ctx context.Context, w *model.SubmissionWindow) error
	Delete(ctx context.Context, id int) error
}

// WindowService serves the per-stage open/closed flags clients poll, and the
// administrator CRUD over configured windows.
type WindowService struct {
	windows WindowAdminStore
	logger  *zap.Logger
	now     func() time.Time
}

func NewWindowService(windows WindowAdminStore, logger *zap.Logger) *WindowService {
	return &WindowService{windows: windows, logger: logger, now: time.Now}
}

// WindowStatus reports, for one planning year, whether each workflow stage
// currently accepts writes.
type WindowStatus struct {
	Year                  int  `json:"year"`
	IsBreakdownWindowOpen bool `json:"is_breakdown_window_open"`
	IsQ1WindowOpen        bool `json:"is_q1_window_open"`
	IsQ2WindowOpen        bool `json:"is_q2_window_open"`
	IsQ3WindowOpen        bool `json:"is_q3_window_open"`
	IsQ4WindowOpen        bool `json:"is_q4_window_open"`
}

// Status evaluates every stage gate for the year. Year zero means the
// current Ethiopian planning year.
func (s *WindowService) Status(ctx context.Context, year int) (*WindowStatus, error) {
	now := s.now()
	if year == 0 {
		year = calendar.CurrentEthiopianYear(now)
	}
	windows, err := s.windows.List(ctx)
	if err != nil {
		return nil, err
	}
	gate := window.NewGate(windows)
	return &WindowStatus{
		Year:                  year,
		IsBreakdownWindowOpen: gate.IsOpen(model.WindowBreakdown, year, now),
		IsQ1WindowOpen:        gate.IsOpen(model.WindowPerformanceQ1, year, now),
		IsQ2WindowOpen:        gate.IsOpen(model.WindowPerformanceQ2, year, now),
		IsQ3WindowOpen:        gate.IsOpen(model.WindowPerformanceQ3, year, now),
		IsQ4WindowOpen:        gate.IsOpen(model.WindowPerformanceQ4, year, now),
	}, nil
}

func (s *WindowService) List(ctx context.Context, user *model.User) ([]model.SubmissionWindow, error) {
	if !user.IsSuperuser {
		return nil, ForbiddenError("only administrators manage submission windows")
	}
	return s.windows.List(ctx)
}

func (s *WindowService) Create(ctx context.Context, user *model.User, w *model.SubmissionWindow) (*model.SubmissionWindow, error) {
	if !user.IsSuperuser {
		return nil, ForbiddenError("only administrators manage submission windows")
	}
	if err := validateWindow(w); err != nil {
		return nil, err
	}
	if _, err := s.windows.Insert(ctx, w); err != nil {
		return nil, err
	}
	s.logger.Info("Submission window created",
		zap.Int("window_id", w.ID),
		zap.String("window_type", string(w.WindowType)),
	)
	return w, nil
}

func (s *WindowService) Update(ctx context.Context, user *model.User, w *model.SubmissionWindow) (*model.SubmissionWindow, error) {
	if !user.IsSuperuser {
		return nil, ForbiddenError("only administrators manage submission windows")
	}
	if err := validateWindow(w); err != nil {
		return nil, err
	}
	if err := s.windows.Update(ctx, w); err != nil {
		return nil, notFoundErr(err)
	}
	return w, nil
}

func (s *WindowService) Delete(ctx context.Context, user *model.User, id int) error {
	if !user.IsSuperuser {
		return ForbiddenError("only administrators manage submission windows")
	}
	if err := s.windows.Delete(ctx, id); err != nil {
		return notFoundErr(err)
	}
	return nil
}

func validateWindow(w *model.SubmissionWindow) error {
	switch w.WindowType {
	case model.WindowBreakdown, model.WindowPerformanceQ1, model.WindowPerformanceQ2,
		model.WindowPerformanceQ3, model.WindowPerformanceQ4:
	default:
		return ValidationError("unknown window type")
	}
	if !w.AlwaysOpen && w.Start != nil && w.End != nil && w.End.Before(*w.Start) {
		return ValidationError("window end must not precede its start")
	}
	return nil
}
