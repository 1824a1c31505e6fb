package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"agriplan/internal/model"
	"agriplan/internal/repository"
	"agriplan/pkg/util"
)

type UserStore interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Insert(ctx context.Context, u *model.User) (int, error)
	Update(ctx context.Context, u *model.User) error
	UpdatePassword(ctx context.Context, id int, hash string) error
}

// AuthService issues and validates access tokens and carries the superuser
// account-management surface.
type AuthService struct {
	users     UserStore
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthService(users UserStore, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, logger: logger}
}

// Login verifies the credentials and returns a signed token plus the account.
// Wrong username and wrong password are deliberately indistinguishable.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return "", nil, ForbiddenError("invalid username or password")
		}
		return "", nil, err
	}
	if !u.IsActive || !util.CheckPassword(password, u.PasswordHash) {
		return "", nil, ForbiddenError("invalid username or password")
	}
	token, err := util.GenerateJWT(u.ID, s.jwtSecret)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err), zap.Int("user_id", u.ID))
		return "", nil, err
	}
	return token, u, nil
}

// Authenticate resolves a bearer token to its active account.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	userID, err := util.ParseJWT(token, s.jwtSecret)
	if err != nil {
		return nil, ForbiddenError("invalid or expired token")
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundErr(err)
	}
	if !u.IsActive {
		return nil, ForbiddenError("account is disabled")
	}
	return u, nil
}

func (s *AuthService) ListUsers(ctx context.Context, actor *model.User) ([]model.User, error) {
	if !actor.IsSuperuser {
		return nil, ForbiddenError("only administrators manage accounts")
	}
	return s.users.List(ctx)
}

func (s *AuthService) CreateUser(ctx context.Context, actor *model.User, u *model.User, password string) (*model.User, error) {
	if !actor.IsSuperuser {
		return nil, ForbiddenError("only administrators manage accounts")
	}
	if u.Username == "" {
		return nil, ValidationError("username is required")
	}
	if len(password) < 8 {
		return nil, ValidationError("password must be at least 8 characters")
	}
	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash
	u.IsActive = true
	if _, err := s.users.Insert(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("User account created",
		zap.Int("user_id", u.ID),
		zap.String("role", string(u.Role)),
	)
	return u, nil
}

func (s *AuthService) UpdateUser(ctx context.Context, actor *model.User, u *model.User) (*model.User, error) {
	if !actor.IsSuperuser {
		return nil, ForbiddenError("only administrators manage accounts")
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, notFoundErr(err)
	}
	return u, nil
}

func (s *AuthService) SetPassword(ctx context.Context, actor *model.User, userID int, password string) error {
	if !actor.IsSuperuser && actor.ID != userID {
		return ForbiddenError("you can only change your own password")
	}
	if len(password) < 8 {
		return ValidationError("password must be at least 8 characters")
	}
	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return notFoundErr(err)
	}
	return nil
}
