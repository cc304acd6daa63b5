package auth

import (
	"context"
	"strings"

	"github.com/trimarkity/auth-service/internal/domain"
)

// Login authenticates a user and issues a session token.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration):
// unknown email and wrong password produce the identical failure.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Hide not-found behind invalid credentials
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	// isActive/isVerified are deliberately not checked here; see DESIGN.md.

	tok, err := s.issueSession(u)
	if err != nil {
		return LoginResult{}, err
	}

	// Last-writer-wins and non-critical: a failed stamp never fails the login.
	if err := s.users.TouchLastLogin(ctx, u.ID); err != nil {
		s.lg.Warn().Err(err).Str("user_id", u.ID).Msg("last_login stamp failed")
	}

	return LoginResult{User: u, Token: tok}, nil
}
