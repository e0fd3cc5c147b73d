package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mcastellanos/tienda/internal/hash"
	"github.com/mcastellanos/tienda/internal/logging"
	"github.com/mcastellanos/tienda/internal/repo"
	"github.com/mcastellanos/tienda/internal/service/token"
)

// dummyHash keeps the unknown-email path doing the same bcrypt work as the
// wrong-password path, so login timing does not reveal whether the email exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *token.Service
}

type LoginResult struct {
	AccessToken string
	UserID      uint
	Email       string
}

// Login verifies the credentials and issues a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hash.CheckPassword(dummyHash, password)
			l.Warn("login_failed", "status", 400, "reason", "invalid credentials")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("db error: %w", err)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 400, "reason", "invalid credentials")
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot create token", "error", err)
		return nil, fmt.Errorf("sign token: %w", err)
	}

	l.Info("login_successful", "user_id", user.ID)
	return &LoginResult{
		AccessToken: accessToken,
		UserID:      user.ID,
		Email:       user.Email,
	}, nil
}
