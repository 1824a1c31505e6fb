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

type PerformanceRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPerformanceRepository(db *pgxpool.Pool, logger *zap.Logger) *PerformanceRepository {
	return &PerformanceRepository{db: db, logger: logger}
}

const performanceColumns = `
        id, plan_id, quarter, value, status,
        submitted_by, submitted_at, reviewed_by, review_comment, reviewed_at,
        validated_by, validated_at, final_approved_by, final_approved_at
`

func scanPerformance(row pgx.Row, p *model.QuarterlyPerformance) error {
	var status string
	err := row.Scan(
		&p.ID, &p.PlanID, &p.Quarter, &p.Value, &status,
		&p.SubmittedBy, &p.SubmittedAt, &p.ReviewedBy, &p.ReviewComment, &p.ReviewedAt,
		&p.ValidatedBy, &p.ValidatedAt, &p.FinalApprovedBy, &p.FinalApprovedAt,
	)
	if err != nil {
		return err
	}
	p.Status, err = workflow.ParseStatus(status)
	return err
}

func (r *PerformanceRepository) GetByID(ctx context.Context, id int) (*model.QuarterlyPerformance, error) {
	var p model.QuarterlyPerformance
	query := `SELECT ` + performanceColumns + ` FROM quarterly_performances WHERE id = $1`
	if err := scanPerformance(r.db.QueryRow(ctx, query, id), &p); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error("Failed to get performance", zap.Error(err), zap.Int("performance_id", id))
		}
		return nil, err
	}
	return &p, nil
}

func (r *PerformanceRepository) GetByPlanQuarter(ctx context.Context, planID, quarter int) (*model.QuarterlyPerformance, error) {
	var p model.QuarterlyPerformance
	query := `SELECT ` + performanceColumns + ` FROM quarterly_performances WHERE plan_id = $1 AND quarter = $2`
	if err := scanPerformance(r.db.QueryRow(ctx, query, planID, quarter), &p); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error("Failed to get performance by plan/quarter",
				zap.Error(err),
				zap.Int("plan_id", planID),
				zap.Int("quarter", quarter),
			)
		}
		return nil, err
	}
	return &p, nil
}

func (r *PerformanceRepository) Insert(ctx context.Context, p *model.QuarterlyPerformance) (int, error) {
	r.logger.Debug("Inserting performance",
		zap.Int("plan_id", p.PlanID),
		zap.Int("quarter", p.Quarter),
	)
	query := `
        INSERT INTO quarterly_performances (plan_id, quarter, value, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query, p.PlanID, p.Quarter, p.Value, string(p.Status)).Scan(&p.ID)
	if err != nil {
		r.logger.Error("Failed to insert performance",
			zap.Error(err),
			zap.Int("plan_id", p.PlanID),
			zap.Int("quarter", p.Quarter),
		)
		return 0, err
	}
	r.logger.Info("Performance inserted successfully",
		zap.Int("performance_id", p.ID),
		zap.Int("plan_id", p.PlanID),
		zap.Int("quarter", p.Quarter),
	)
	return p.ID, nil
}

func (r *PerformanceRepository) UpdateValue(ctx context.Context, id int, value float64) error {
	query := `UPDATE quarterly_performances SET value = $2 WHERE id = $1`
	return r.exec(ctx, "UpdateValue", query, id, value)
}

func (r *PerformanceRepository) MarkSubmitted(ctx context.Context, id, userID int, at time.Time) error {
	query := `
        UPDATE quarterly_performances
        SET status = $2, submitted_by = $3, submitted_at = $4
        WHERE id = $1
    `
	return r.exec(ctx, "MarkSubmitted", query, id, string(workflow.StatusSubmitted), userID, at)
}

func (r *PerformanceRepository) MarkReviewed(ctx context.Context, id int, status workflow.Status, userID int, comment string, at time.Time) error {
	query := `
        UPDATE quarterly_performances
        SET status = $2, reviewed_by = $3, review_comment = $4, reviewed_at = $5
        WHERE id = $1
    `
	return r.exec(ctx, "MarkReviewed", query, id, string(status), userID, comment, at)
}

func (r *PerformanceRepository) MarkValidated(ctx context.Context, id, userID int, at time.Time) error {
	query := `
        UPDATE quarterly_performances
        SET status = $2, validated_by = $3, validated_at = $4
        WHERE id = $1
    `
	return r.exec(ctx, "MarkValidated", query, id, string(workflow.StatusValidated), userID, at)
}

func (r *PerformanceRepository) MarkFinalApproved(ctx context.Context, id, userID int, at time.Time) error {
	query := `
        UPDATE quarterly_performances
        SET status = $2, final_approved_by = $3, final_approved_at = $4
        WHERE id = $1
    `
	return r.exec(ctx, "MarkFinalApproved", query, id, string(workflow.StatusFinalApproved), userID, at)
}

func (r *PerformanceRepository) AppendComment(ctx context.Context, id int, comment string) error {
	query := `
        UPDATE quarterly_performances
        SET review_comment = CASE WHEN review_comment = '' THEN $2
                                  ELSE review_comment || E'\n' || $2 END
        WHERE id = $1
    `
	return r.exec(ctx, "AppendComment", query, id, comment)
}

// List returns performances filtered by year, quarter (0 = all), scope and
// optionally statuses.
func (r *PerformanceRepository) List(ctx context.Context, year, quarter int, scope PlanScope, statuses []workflow.Status) ([]model.QuarterlyPerformance, error) {
	query := `
        SELECT pf.id, pf.plan_id, pf.quarter, pf.value, pf.status,
               pf.submitted_by, pf.submitted_at, pf.reviewed_by, pf.review_comment, pf.reviewed_at,
               pf.validated_by, pf.validated_at, pf.final_approved_by, pf.final_approved_at
        FROM quarterly_performances pf
        JOIN annual_plans p ON p.id = pf.plan_id
        JOIN indicators i ON i.id = p.indicator_id
        JOIN departments d ON d.id = i.department_id
        WHERE p.year = $1
    `
	args := []any{year}
	if quarter != 0 {
		args = append(args, quarter)
		query += ` AND pf.quarter = $` + strconv.Itoa(len(args))
	}
	if scope.DepartmentID != nil {
		args = append(args, *scope.DepartmentID)
		query += ` AND d.id = $` + strconv.Itoa(len(args))
	} else if scope.SectorID != nil {
		args = append(args, *scope.SectorID)
		query += ` AND d.sector_id = $` + strconv.Itoa(len(args))
	}
	if len(statuses) > 0 {
		ss := make([]string, len(statuses))
		for i, s := range statuses {
			ss[i] = string(s)
		}
		args = append(args, ss)
		query += ` AND pf.status = ANY($` + strconv.Itoa(len(args)) + `)`
	}
	query += ` ORDER BY pf.plan_id, pf.quarter`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query performances", zap.Error(err), zap.Int("year", year))
		return nil, err
	}
	defer rows.Close()

	out := []model.QuarterlyPerformance{}
	for rows.Next() {
		var p model.QuarterlyPerformance
		if err := scanPerformance(rows, &p); err != nil {
			r.logger.Error("Failed to scan performance row", zap.Error(err))
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PerformanceRepository) exec(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Performance update failed", zap.String("op", op), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	r.logger.Info("Performance updated", zap.String("op", op), zap.Any("id", args[0]))
	return nil
}
