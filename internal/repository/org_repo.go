package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"agriplan/internal/model"
)

// OrgRepository covers the reporting hierarchy reference data: sectors,
// departments and indicators. Writes are superuser-only (enforced upstream).
type OrgRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewOrgRepository(db *pgxpool.Pool, logger *zap.Logger) *OrgRepository {
	return &OrgRepository{db: db, logger: logger}
}

func (r *OrgRepository) ListSectors(ctx context.Context) ([]model.Sector, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM sectors ORDER BY name`)
	if err != nil {
		r.logger.Error("Failed to query sectors", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []model.Sector{}
	for rows.Next() {
		var s model.Sector
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *OrgRepository) InsertSector(ctx context.Context, s *model.Sector) (int, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO sectors (name) VALUES ($1) RETURNING id`, s.Name).Scan(&s.ID)
	if err != nil {
		r.logger.Error("Failed to insert sector", zap.Error(err), zap.String("name", s.Name))
		return 0, err
	}
	r.logger.Info("Sector inserted", zap.Int("sector_id", s.ID), zap.String("name", s.Name))
	return s.ID, nil
}

// ListDepartments returns departments, optionally filtered to one sector.
func (r *OrgRepository) ListDepartments(ctx context.Context, sectorID *int) ([]model.Department, error) {
	query := `
        SELECT d.id, d.name, d.sector_id, s.name
        FROM departments d
        JOIN sectors s ON s.id = d.sector_id
    `
	args := []any{}
	if sectorID != nil {
		query += ` WHERE d.sector_id = $1`
		args = append(args, *sectorID)
	}
	query += ` ORDER BY d.name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query departments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []model.Department{}
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.SectorID, &d.SectorName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *OrgRepository) InsertDepartment(ctx context.Context, d *model.Department) (int, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO departments (name, sector_id) VALUES ($1, $2) RETURNING id`,
		d.Name, d.SectorID,
	).Scan(&d.ID)
	if err != nil {
		r.logger.Error("Failed to insert department", zap.Error(err), zap.String("name", d.Name))
		return 0, err
	}
	r.logger.Info("Department inserted", zap.Int("department_id", d.ID), zap.String("name", d.Name))
	return d.ID, nil
}

// ListIndicators returns indicators, optionally filtered to one department.
func (r *OrgRepository) ListIndicators(ctx context.Context, departmentID *int) ([]model.Indicator, error) {
	query := `
        SELECT i.id, i.name, i.unit, i.description, i.group_id,
               d.id, d.name, s.id, s.name
        FROM indicators i
        JOIN departments d ON d.id = i.department_id
        JOIN sectors s ON s.id = d.sector_id
    `
	args := []any{}
	if departmentID != nil {
		query += ` WHERE d.id = $1`
		args = append(args, *departmentID)
	}
	query += ` ORDER BY i.name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query indicators", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []model.Indicator{}
	for rows.Next() {
		var ind model.Indicator
		if err := rows.Scan(
			&ind.ID, &ind.Name, &ind.Unit, &ind.Description, &ind.GroupID,
			&ind.DepartmentID, &ind.DepartmentName, &ind.SectorID, &ind.SectorName,
		); err != nil {
			return nil, err
		}
		out = append(out, ind)
	}
	return out, rows.Err()
}

func (r *OrgRepository) InsertIndicator(ctx context.Context, ind *model.Indicator) (int, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO indicators (name, unit, description, department_id, group_id)
         VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		ind.Name, ind.Unit, ind.Description, ind.DepartmentID, ind.GroupID,
	).Scan(&ind.ID)
	if err != nil {
		r.logger.Error("Failed to insert indicator", zap.Error(err), zap.String("name", ind.Name))
		return 0, err
	}
	r.logger.Info("Indicator inserted", zap.Int("indicator_id", ind.ID), zap.String("name", ind.Name))
	return ind.ID, nil
}

func (r *OrgRepository) GetIndicator(ctx context.Context, id int) (*model.Indicator, error) {
	var ind model.Indicator
	err := r.db.QueryRow(ctx, `
        SELECT i.id, i.name, i.unit, i.description, i.group_id,
               d.id, d.name, s.id, s.name
        FROM indicators i
        JOIN departments d ON d.id = i.department_id
        JOIN sectors s ON s.id = d.sector_id
        WHERE i.id = $1
    `, id).Scan(
		&ind.ID, &ind.Name, &ind.Unit, &ind.Description, &ind.GroupID,
		&ind.DepartmentID, &ind.DepartmentName, &ind.SectorID, &ind.SectorName,
	)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error("Failed to get indicator", zap.Error(err), zap.Int("indicator_id", id))
		}
		return nil, err
	}
	return &ind, nil
}
