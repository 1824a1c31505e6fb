package model

import (
	"time"

	"agriplan/internal/workflow"
)

type User struct {
	ID           int           `json:"id"`
	Username     string        `json:"username"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Email        string        `json:"email"`
	Role         workflow.Role `json:"role"`
	SectorID     *int          `json:"sector"`
	DepartmentID *int          `json:"department"`
	IsSuperuser  bool          `json:"is_superuser"`
	IsActive     bool          `json:"is_active"`
	PasswordHash string        `json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
}
