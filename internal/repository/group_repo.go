package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"agriplan/internal/aggregate"
	"agriplan/internal/model"
	"agriplan/pkg/metrics"
)

type GroupRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewGroupRepository(db *pgxpool.Pool, logger *zap.Logger) *GroupRepository {
	return &GroupRepository{db: db, logger: logger}
}

// ListGroups returns every indicator group with its sector resolved: a
// department-scoped group inherits its department's sector.
func (r *GroupRepository) ListGroups(ctx context.Context) ([]model.IndicatorGroup, error) {
	query := `
        SELECT g.id, g.name, g.unit, g.parent_id, g.department_id, g.level, g.hierarchy_path,
               COALESCE(g.sector_id, d.sector_id) AS sector_id
        FROM indicator_groups g
        LEFT JOIN departments d ON d.id = g.department_id
        ORDER BY g.id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query indicator groups", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []model.IndicatorGroup{}
	for rows.Next() {
		var g model.IndicatorGroup
		if err := rows.Scan(
			&g.ID, &g.Name, &g.Unit, &g.ParentID, &g.DepartmentID, &g.Level, &g.HierarchyPath,
			&g.SectorID,
		); err != nil {
			r.logger.Error("Failed to scan indicator group row", zap.Error(err))
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// PerformanceRows loads the aggregation inputs for a year: per indicator the
// annual target, the achieved total over performances that cleared State
// Minister approval, and the approved breakdown quarters for trend charts.
func (r *GroupRepository) PerformanceRows(ctx context.Context, year int) ([]aggregate.IndicatorPerf, error) {
	start := time.Now()
	query := `
        SELECT i.id, i.name, i.unit, i.group_id, d.id, s.id,
               p.target,
               COALESCE((
                   SELECT SUM(pf.value) FROM quarterly_performances pf
                   WHERE pf.plan_id = p.id
                     AND pf.status IN ('APPROVED', 'VALIDATED', 'FINAL_APPROVED')
               ), 0) AS achieved,
               COALESCE(b.q1, 0), COALESCE(b.q2, 0), COALESCE(b.q3, 0), COALESCE(b.q4, 0)
        FROM annual_plans p
        JOIN indicators i ON i.id = p.indicator_id
        JOIN departments d ON d.id = i.department_id
        JOIN sectors s ON s.id = d.sector_id
        LEFT JOIN quarterly_breakdowns b ON b.plan_id = p.id
              AND b.status IN ('APPROVED', 'VALIDATED', 'FINAL_APPROVED')
        WHERE p.year = $1
        ORDER BY i.id
    `
	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		r.logger.Error("Failed to query indicator performance rows", zap.Error(err), zap.Int("year", year))
		return nil, err
	}
	defer rows.Close()

	out := []aggregate.IndicatorPerf{}
	for rows.Next() {
		var ip aggregate.IndicatorPerf
		if err := rows.Scan(
			&ip.ID, &ip.Name, &ip.Unit, &ip.GroupID, &ip.DepartmentID, &ip.SectorID,
			&ip.Target, &ip.Achieved,
			&ip.Quarters[0], &ip.Quarters[1], &ip.Quarters[2], &ip.Quarters[3],
		); err != nil {
			r.logger.Error("Failed to scan indicator performance row", zap.Error(err))
			return nil, err
		}
		out = append(out, ip)
	}
	metrics.RecordDBQueryDuration("performance_rows", "annual_plans", time.Since(start))
	r.logger.Debug("Indicator performance rows loaded",
		zap.Int("year", year),
		zap.Int("count", len(out)),
	)
	return out, rows.Err()
}
