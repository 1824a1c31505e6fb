package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"agriplan/internal/model"
	"agriplan/pkg/metrics"
)

// ErrNoRows re-exports the pgx sentinel so services can branch on missing
// records without importing pgx.
var ErrNoRows = pgx.ErrNoRows

// PlanScope restricts list queries to a sector or department. Nil fields mean
// no restriction on that axis.
type PlanScope struct {
	SectorID     *int
	DepartmentID *int
}

type PlanRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPlanRepository(db *pgxpool.Pool, logger *zap.Logger) *PlanRepository {
	return &PlanRepository{db: db, logger: logger}
}

const planSelect = `
        SELECT p.id, p.year, p.indicator_id, p.target, p.created_by, p.created_at,
               i.name, i.unit, d.id, d.name, s.id, s.name
        FROM annual_plans p
        JOIN indicators i ON i.id = p.indicator_id
        JOIN departments d ON d.id = i.department_id
        JOIN sectors s ON s.id = d.sector_id
`

func scanPlan(row pgx.Row, p *model.AnnualPlan) error {
	return row.Scan(
		&p.ID, &p.Year, &p.IndicatorID, &p.Target, &p.CreatedBy, &p.CreatedAt,
		&p.IndicatorName, &p.IndicatorUnit,
		&p.DepartmentID, &p.DepartmentName,
		&p.SectorID, &p.SectorName,
	)
}

func (r *PlanRepository) Insert(ctx context.Context, p *model.AnnualPlan) (int, error) {
	r.logger.Debug("Inserting annual plan",
		zap.Int("year", p.Year),
		zap.Int("indicator_id", p.IndicatorID),
		zap.Float64("target", p.Target),
	)
	query := `
        INSERT INTO annual_plans (year, indicator_id, target, created_by)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, p.Year, p.IndicatorID, p.Target, p.CreatedBy).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert annual plan",
			zap.Error(err),
			zap.Int("year", p.Year),
			zap.Int("indicator_id", p.IndicatorID),
		)
		return 0, err
	}
	r.logger.Info("Annual plan inserted successfully",
		zap.Int("plan_id", p.ID),
		zap.Int("year", p.Year),
	)
	return p.ID, nil
}

func (r *PlanRepository) GetByID(ctx context.Context, id int) (*model.AnnualPlan, error) {
	var p model.AnnualPlan
	err := scanPlan(r.db.QueryRow(ctx, planSelect+` WHERE p.id = $1`, id), &p)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error("Failed to get annual plan", zap.Error(err), zap.Int("plan_id", id))
		}
		return nil, err
	}
	return &p, nil
}

// ListByYear returns the enriched plans for a year, restricted by scope.
func (r *PlanRepository) ListByYear(ctx context.Context, year int, scope PlanScope) ([]model.AnnualPlan, error) {
	start := time.Now()
	query := planSelect + ` WHERE p.year = $1`
	args := []any{year}
	if scope.DepartmentID != nil {
		query += ` AND d.id = $2`
		args = append(args, *scope.DepartmentID)
	} else if scope.SectorID != nil {
		query += ` AND s.id = $2`
		args = append(args, *scope.SectorID)
	}
	query += ` ORDER BY s.name, d.name, i.name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query annual plans", zap.Error(err), zap.Int("year", year))
		return nil, err
	}
	defer rows.Close()

	plans := []model.AnnualPlan{}
	for rows.Next() {
		var p model.AnnualPlan
		if err := scanPlan(rows, &p); err != nil {
			r.logger.Error("Failed to scan annual plan row", zap.Error(err))
			return nil, err
		}
		plans = append(plans, p)
	}
	metrics.RecordDBQueryDuration("list", "annual_plans", time.Since(start))
	r.logger.Debug("Annual plans listed",
		zap.Int("year", year),
		zap.Int("count", len(plans)),
	)
	return plans, rows.Err()
}
