package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"agriplan/internal/model"
)

type AdvisorCommentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAdvisorCommentRepository(db *pgxpool.Pool, logger *zap.Logger) *AdvisorCommentRepository {
	return &AdvisorCommentRepository{db: db, logger: logger}
}

func (r *AdvisorCommentRepository) Insert(ctx context.Context, c *model.AdvisorComment) (int, error) {
	query := `
        INSERT INTO advisor_comments (author_id, year, sector_id, department_id, comment)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		c.AuthorID, c.Year, c.SectorID, c.DepartmentID, c.Comment,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert advisor comment",
			zap.Error(err),
			zap.Int("author_id", c.AuthorID),
			zap.Int("year", c.Year),
		)
		return 0, err
	}
	return c.ID, nil
}

func (r *AdvisorCommentRepository) List(ctx context.Context, year int, sectorID, departmentID *int) ([]model.AdvisorComment, error) {
	query := `
        SELECT c.id, c.author_id, COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username, '') AS author_name, c.year,
               c.sector_id, c.department_id, c.comment, c.created_at
        FROM advisor_comments c
        LEFT JOIN users u ON u.id = c.author_id
        WHERE c.year = $1
    `
	args := []any{year}
	if sectorID != nil {
		args = append(args, *sectorID)
		query += " AND c.sector_id = $" + strconv.Itoa(len(args))
	}
	if departmentID != nil {
		args = append(args, *departmentID)
		query += " AND c.department_id = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY c.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query advisor comments", zap.Error(err), zap.Int("year", year))
		return nil, err
	}
	defer rows.Close()

	out := []model.AdvisorComment{}
	for rows.Next() {
		var c model.AdvisorComment
		if err := rows.Scan(
			&c.ID, &c.AuthorID, &c.AuthorName, &c.Year,
			&c.SectorID, &c.DepartmentID, &c.Comment, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
