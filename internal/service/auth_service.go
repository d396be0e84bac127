package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/repair-service/internal/auth"
	"github.com/spec-kit/repair-service/internal/config"
	"github.com/spec-kit/repair-service/internal/domain"
	"github.com/spec-kit/repair-service/internal/repository"
	apperrors "github.com/spec-kit/repair-service/pkg/util"
)

// AuthService coordinates login and superadmin bootstrap.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// Login authenticates by email or telephone number. Unknown identifier and
// wrong password yield the same generic outcome so callers cannot probe for
// account existence; a disabled account is reported distinctly only once the
// credential itself checked out.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid_credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid_credentials")
	}
	if user.Status != domain.UserStatusActive {
		return nil, "", time.Time{}, apperrors.NewForbidden("user_inactive")
	}

	now := time.Now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, "", time.Time{}, err
	}
	user.LastLoginAt = &now

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// BootstrapInput carries the first-superadmin payload.
type BootstrapInput struct {
	Email           string
	Password        string
	FirstName       *string
	LastName        *string
	TelephoneNumber *string
}

// BootstrapSuperadmin creates the single superadmin account. It refuses with
// a conflict, before any mutation, when one already exists.
func (s *AuthService) BootstrapSuperadmin(ctx context.Context, input BootstrapInput) (*domain.User, error) {
	exists, err := s.users.SuperadminExists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("superadmin_already_exists")
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:           normalizeIdentifier(input.Email),
		TelephoneNumber: normalizeOptional(input.TelephoneNumber),
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		PasswordHash:    hash,
		Role:            domain.RoleSuperadmin,
		Status:          domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
