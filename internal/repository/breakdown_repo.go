package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"agriplan/internal/model"
	"agriplan/internal/workflow"
)

type BreakdownRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBreakdownRepository(db *pgxpool.Pool, logger *zap.Logger) *BreakdownRepository {
	return &BreakdownRepository{db: db, logger: logger}
}

const breakdownColumns = `
        id, plan_id, q1, q2, q3, q4, status,
        submitted_by, submitted_at, reviewed_by, review_comment, reviewed_at,
        validated_by, validated_at, final_approved_by, final_approved_at
`

func scanBreakdown(row pgx.Row, b *model.QuarterlyBreakdown) error {
	var status string
	err := row.Scan(
		&b.ID, &b.PlanID, &b.Q1, &b.Q2, &b.Q3, &b.Q4, &status,
		&b.SubmittedBy, &b.SubmittedAt, &b.ReviewedBy, &b.ReviewComment, &b.ReviewedAt,
		&b.ValidatedBy, &b.ValidatedAt, &b.FinalApprovedBy, &b.FinalApprovedAt,
	)
	if err != nil {
		return err
	}
	b.Status, err = workflow.ParseStatus(status)
	return err
}

func (r *BreakdownRepository) GetByID(ctx context.Context, id int) (*model.QuarterlyBreakdown, error) {
	var b model.QuarterlyBreakdown
	query := `SELECT ` + breakdownColumns + ` FROM quarterly_breakdowns WHERE id = $1`
	if err := scanBreakdown(r.db.QueryRow(ctx, query, id), &b); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error("Failed to get breakdown", zap.Error(err), zap.Int("breakdown_id", id))
		}
		return nil, err
	}
	return &b, nil
}

func (r *BreakdownRepository) GetByPlanID(ctx context.Context, planID int) (*model.QuarterlyBreakdown, error) {
	var b model.QuarterlyBreakdown
	query := `SELECT ` + breakdownColumns + ` FROM quarterly_breakdowns WHERE plan_id = $1`
	if err := scanBreakdown(r.db.QueryRow(ctx, query, planID), &b); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error("Failed to get breakdown by plan", zap.Error(err), zap.Int("plan_id", planID))
		}
		return nil, err
	}
	return &b, nil
}

// Insert creates a breakdown row. Values default to zero so ensure-create can
// instantiate an empty record before the first save.
func (r *BreakdownRepository) Insert(ctx context.Context, b *model.QuarterlyBreakdown) (int, error) {
	r.logger.Debug("Inserting breakdown", zap.Int("plan_id", b.PlanID))
	query := `
        INSERT INTO quarterly_breakdowns (plan_id, q1, q2, q3, q4, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query, b.PlanID, b.Q1, b.Q2, b.Q3, b.Q4, string(b.Status)).Scan(&b.ID)
	if err != nil {
		r.logger.Error("Failed to insert breakdown", zap.Error(err), zap.Int("plan_id", b.PlanID))
		return 0, err
	}
	r.logger.Info("Breakdown inserted successfully",
		zap.Int("breakdown_id", b.ID),
		zap.Int("plan_id", b.PlanID),
	)
	return b.ID, nil
}

// UpdateValues replaces the quarterly figures. Status gating happens in the
// service layer before this is called.
func (r *BreakdownRepository) UpdateValues(ctx context.Context, id int, q1, q2, q3, q4 float64) error {
	query := `
        UPDATE quarterly_breakdowns
        SET q1 = $2, q2 = $3, q3 = $4, q4 = $5
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query, id, q1, q2, q3, q4)
	if err != nil {
		r.logger.Error("Failed to update breakdown values", zap.Error(err), zap.Int("breakdown_id", id))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	r.logger.Info("Breakdown values updated", zap.Int("breakdown_id", id))
	return nil
}

// MarkSubmitted moves the record to SUBMITTED and stamps the submitter.
func (r *BreakdownRepository) MarkSubmitted(ctx context.Context, id, userID int, at time.Time) error {
	query := `
        UPDATE quarterly_breakdowns
        SET status = $2, submitted_by = $3, submitted_at = $4
        WHERE id = $1
    `
	return r.exec(ctx, "MarkSubmitted", query, id, string(workflow.StatusSubmitted), userID, at)
}

// MarkReviewed records a State Minister approval or a rejection, keeping the
// review comment on the record.
func (r *BreakdownRepository) MarkReviewed(ctx context.Context, id int, status workflow.Status, userID int, comment string, at time.Time) error {
	query := `
        UPDATE quarterly_breakdowns
        SET status = $2, reviewed_by = $3, review_comment = $4, reviewed_at = $5
        WHERE id = $1
    `
	return r.exec(ctx, "MarkReviewed", query, id, string(status), userID, comment, at)
}

func (r *BreakdownRepository) MarkValidated(ctx context.Context, id, userID int, at time.Time) error {
	query := `
        UPDATE quarterly_breakdowns
        SET status = $2, validated_by = $3, validated_at = $4
        WHERE id = $1
    `
	return r.exec(ctx, "MarkValidated", query, id, string(workflow.StatusValidated), userID, at)
}

func (r *BreakdownRepository) MarkFinalApproved(ctx context.Context, id, userID int, at time.Time) error {
	query := `
        UPDATE quarterly_breakdowns
        SET status = $2, final_approved_by = $3, final_approved_at = $4
        WHERE id = $1
    `
	return r.exec(ctx, "MarkFinalApproved", query, id, string(workflow.StatusFinalApproved), userID, at)
}

// AppendComment adds an advisor note without touching status.
func (r *BreakdownRepository) AppendComment(ctx context.Context, id int, comment string) error {
	query := `
        UPDATE quarterly_breakdowns
        SET review_comment = CASE WHEN review_comment = '' THEN $2
                                  ELSE review_comment || E'\n' || $2 END
        WHERE id = $1
    `
	return r.exec(ctx, "AppendComment", query, id, comment)
}

// ListByYear returns the breakdowns of every plan in a year, optionally
// restricted to a sector or department, optionally to a set of statuses.
func (r *BreakdownRepository) ListByYear(ctx context.Context, year int, scope PlanScope, statuses []workflow.Status) ([]model.QuarterlyBreakdown, error) {
	query := `
        SELECT b.id, b.plan_id, b.q1, b.q2, b.q3, b.q4, b.status,
               b.submitted_by, b.submitted_at, b.reviewed_by, b.review_comment, b.reviewed_at,
               b.validated_by, b.validated_at, b.final_approved_by, b.final_approved_at
        FROM quarterly_breakdowns b
        JOIN annual_plans p ON p.id = b.plan_id
        JOIN indicators i ON i.id = p.indicator_id
        JOIN departments d ON d.id = i.department_id
        WHERE p.year = $1
    `
	args := []any{year}
	if scope.DepartmentID != nil {
		args = append(args, *scope.DepartmentID)
		query += ` AND d.id = $2`
	} else if scope.SectorID != nil {
		args = append(args, *scope.SectorID)
		query += ` AND d.sector_id = $2`
	}
	if len(statuses) > 0 {
		ss := make([]string, len(statuses))
		for i, s := range statuses {
			ss[i] = string(s)
		}
		args = append(args, ss)
		query += ` AND b.status = ANY($` + strconv.Itoa(len(args)) + `)`
	}
	query += ` ORDER BY b.id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query breakdowns", zap.Error(err), zap.Int("year", year))
		return nil, err
	}
	defer rows.Close()

	out := []model.QuarterlyBreakdown{}
	for rows.Next() {
		var b model.QuarterlyBreakdown
		if err := scanBreakdown(rows, &b); err != nil {
			r.logger.Error("Failed to scan breakdown row", zap.Error(err))
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BreakdownRepository) exec(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Breakdown update failed", zap.String("op", op), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	r.logger.Info("Breakdown updated", zap.String("op", op), zap.Any("id", args[0]))
	return nil
}
