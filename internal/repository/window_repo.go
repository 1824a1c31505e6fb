package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"agriplan/internal/model"
)

type WindowRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewWindowRepository(db *pgxpool.Pool, logger *zap.Logger) *WindowRepository {
	return &WindowRepository{db: db, logger: logger}
}

const windowColumns = `id, window_type, year, always_open, start_at, end_at, active`

func scanWindow(row pgx.Row, w *model.SubmissionWindow) error {
	var wt string
	err := row.Scan(&w.ID, &wt, &w.Year, &w.AlwaysOpen, &w.Start, &w.End, &w.Active)
	if err != nil {
		return err
	}
	w.WindowType = model.WindowType(wt)
	return nil
}

func (r *WindowRepository) List(ctx context.Context) ([]model.SubmissionWindow, error) {
	query := `
        SELECT ` + windowColumns + `
        FROM submission_windows
        ORDER BY year DESC NULLS LAST, window_type
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query submission windows", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []model.SubmissionWindow{}
	for rows.Next() {
		var w model.SubmissionWindow
		if err := scanWindow(rows, &w); err != nil {
			r.logger.Error("Failed to scan submission window row", zap.Error(err))
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WindowRepository) GetByID(ctx context.Context, id int) (*model.SubmissionWindow, error) {
	var w model.SubmissionWindow
	query := `SELECT ` + windowColumns + ` FROM submission_windows WHERE id = $1`
	if err := scanWindow(r.db.QueryRow(ctx, query, id), &w); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error("Failed to get submission window", zap.Error(err), zap.Int("window_id", id))
		}
		return nil, err
	}
	return &w, nil
}

func (r *WindowRepository) Insert(ctx context.Context, w *model.SubmissionWindow) (int, error) {
	query := `
        INSERT INTO submission_windows (window_type, year, always_open, start_at, end_at, active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		string(w.WindowType), w.Year, w.AlwaysOpen, w.Start, w.End, w.Active,
	).Scan(&w.ID)
	if err != nil {
		r.logger.Error("Failed to insert submission window",
			zap.Error(err),
			zap.String("window_type", string(w.WindowType)),
		)
		return 0, err
	}
	r.logger.Info("Submission window inserted",
		zap.Int("window_id", w.ID),
		zap.String("window_type", string(w.WindowType)),
	)
	return w.ID, nil
}

func (r *WindowRepository) Update(ctx context.Context, w *model.SubmissionWindow) error {
	query := `
        UPDATE submission_windows
        SET window_type = $2, year = $3, always_open = $4, start_at = $5, end_at = $6, active = $7
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query,
		w.ID, string(w.WindowType), w.Year, w.AlwaysOpen, w.Start, w.End, w.Active,
	)
	if err != nil {
		r.logger.Error("Failed to update submission window", zap.Error(err), zap.Int("window_id", w.ID))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	r.logger.Info("Submission window updated", zap.Int("window_id", w.ID))
	return nil
}

func (r *WindowRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM submission_windows WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete submission window", zap.Error(err), zap.Int("window_id", id))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	r.logger.Info("Submission window deleted", zap.Int("window_id", id))
	return nil
}
