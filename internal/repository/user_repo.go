package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"agriplan/internal/model"
	"agriplan/internal/workflow"
)

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

const userColumns = `
        id, username, first_name, last_name, email, role,
        sector_id, department_id, is_superuser, is_active, password_hash, created_at
`

func scanUser(row pgx.Row, u *model.User) error {
	var role string
	err := row.Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &role,
		&u.SectorID, &u.DepartmentID, &u.IsSuperuser, &u.IsActive, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return err
	}
	u.Role = workflow.Role(role)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	var u model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := scanUser(r.db.QueryRow(ctx, query, id), &u); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error("Failed to get user", zap.Error(err), zap.Int("user_id", id))
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	if err := scanUser(r.db.QueryRow(ctx, query, username), &u); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.Error("Failed to find user", zap.Error(err), zap.String("username", username))
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		r.logger.Error("Failed to query users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) Insert(ctx context.Context, u *model.User) (int, error) {
	query := `
        INSERT INTO users (username, first_name, last_name, email, role,
                           sector_id, department_id, is_superuser, is_active, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		u.Username, u.FirstName, u.LastName, u.Email, string(u.Role),
		u.SectorID, u.DepartmentID, u.IsSuperuser, u.IsActive, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert user", zap.Error(err), zap.String("username", u.Username))
		return 0, err
	}
	r.logger.Info("User inserted", zap.Int("user_id", u.ID), zap.String("username", u.Username))
	return u.ID, nil
}

func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	query := `
        UPDATE users
        SET first_name = $2, last_name = $3, email = $4, role = $5,
            sector_id = $6, department_id = $7, is_active = $8
        WHERE id = $1
    `
	tag, err := r.db.Exec(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Email, string(u.Role),
		u.SectorID, u.DepartmentID, u.IsActive,
	)
	if err != nil {
		r.logger.Error("Failed to update user", zap.Error(err), zap.Int("user_id", u.ID))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	r.logger.Info("User updated", zap.Int("user_id", u.ID))
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int, hash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		r.logger.Error("Failed to update password", zap.Error(err), zap.Int("user_id", id))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
