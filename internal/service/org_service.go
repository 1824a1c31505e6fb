package service

import (
	"context"

	"go.uber.org/zap"

	"agriplan/internal/model"
	"agriplan/internal/workflow"
)

type OrgStore interface {
	ListSectors(ctx context.Context) ([]model.Sector, error)
	InsertSector(ctx context.Context, s *model.Sector) (int, error)
	ListDepartments(ctx context.Context, sectorID *int) ([]model.Department, error)
	InsertDepartment(ctx context.Context, d *model.Department) (int, error)
	ListIndicators(ctx context.Context, departmentID *int) ([]model.Indicator, error)
	InsertIndicator(ctx context.Context, ind *model.Indicator) (int, error)
	GetIndicator(ctx context.Context, id int) (*model.Indicator, error)
}

type CommentStore interface {
	Insert(ctx context.Context, c *model.AdvisorComment) (int, error)
	List(ctx context.Context, year int, sectorID, departmentID *int) ([]model.AdvisorComment, error)
}

// OrgService covers the reporting-structure reference data (sectors,
// departments, indicators) and the advisor comment board.
type OrgService struct {
	org      OrgStore
	comments CommentStore
	logger   *zap.Logger
}

func NewOrgService(org OrgStore, comments CommentStore, logger *zap.Logger) *OrgService {
	return &OrgService{org: org, comments: comments, logger: logger}
}

func (s *OrgService) ListSectors(ctx context.Context) ([]model.Sector, error) {
	return s.org.ListSectors(ctx)
}

func (s *OrgService) CreateSector(ctx context.Context, user *model.User, sec *model.Sector) (*model.Sector, error) {
	if !user.IsSuperuser {
		return nil, ForbiddenError("only administrators manage the reporting structure")
	}
	if sec.Name == "" {
		return nil, ValidationError("name is required")
	}
	if _, err := s.org.InsertSector(ctx, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *OrgService) ListDepartments(ctx context.Context, sectorID *int) ([]model.Department, error) {
	return s.org.ListDepartments(ctx, sectorID)
}

func (s *OrgService) CreateDepartment(ctx context.Context, user *model.User, d *model.Department) (*model.Department, error) {
	if !user.IsSuperuser {
		return nil, ForbiddenError("only administrators manage the reporting structure")
	}
	if d.Name == "" || d.SectorID == 0 {
		return nil, ValidationError("name and sector are required")
	}
	if _, err := s.org.InsertDepartment(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *OrgService) ListIndicators(ctx context.Context, departmentID *int) ([]model.Indicator, error) {
	return s.org.ListIndicators(ctx, departmentID)
}

func (s *OrgService) CreateIndicator(ctx context.Context, user *model.User, ind *model.Indicator) (*model.Indicator, error) {
	if !user.IsSuperuser {
		return nil, ForbiddenError("only administrators manage the reporting structure")
	}
	if ind.Name == "" || ind.DepartmentID == 0 {
		return nil, ValidationError("name and department are required")
	}
	if _, err := s.org.InsertIndicator(ctx, ind); err != nil {
		return nil, err
	}
	return ind, nil
}

// AddAdvisorComment records sector/department-level advisory feedback.
// Advisors are pinned to their own sector; administrators may target any.
func (s *OrgService) AddAdvisorComment(ctx context.Context, user *model.User, c *model.AdvisorComment) (*model.AdvisorComment, error) {
	if !user.IsSuperuser && user.Role != workflow.RoleAdvisor {
		return nil, ForbiddenError("only advisors can leave comments")
	}
	if c.Comment == "" {
		return nil, ValidationError("a comment is required")
	}
	if c.Year <= 0 {
		return nil, ValidationError("year is required")
	}
	if !user.IsSuperuser && user.SectorID != nil {
		c.SectorID = user.SectorID
	}
	c.AuthorID = user.ID
	if _, err := s.comments.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *OrgService) ListAdvisorComments(ctx context.Context, user *model.User, year int, sectorID, departmentID *int) ([]model.AdvisorComment, error) {
	if !user.IsSuperuser {
		switch user.Role {
		case workflow.RoleAdvisor, workflow.RoleStateMinister:
			sectorID = user.SectorID
		case workflow.RoleLeadExecutiveBody:
			sectorID = user.SectorID
			departmentID = user.DepartmentID
		}
	}
	return s.comments.List(ctx, year, sectorID, departmentID)
}
