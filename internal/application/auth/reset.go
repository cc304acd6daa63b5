package auth

import (
	"context"
	"strings"
	"time"

	"github.com/trimarkity/auth-service/internal/domain"
)

// RequestPasswordReset issues a one-time reset token and mails a reset link.
// IMPORTANT: non-enumerating; an unknown email is a silent no-op and the
// caller must still answer with the generic acknowledgment. Mail delivery
// failures are logged and swallowed for the same reason.
func (s *Service) RequestPasswordReset(ctx context.Context, email, baseURL string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.ErrMissingField("email")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return nil
		}
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}

	// A newer request overwrites (and invalidates) any outstanding token.
	if err := s.users.SetResetToken(ctx, u.ID, token, time.Now().Add(s.resetTTL)); err != nil {
		return err
	}

	resetURL := strings.TrimRight(baseURL, "/") + "/reset-password?token=" + token

	name := u.FullName
	if name == "" {
		name = u.FirstName
	}
	if name == "" {
		name = "User"
	}

	if err := s.mailer.SendPasswordReset(ctx, u.Email, name, resetURL); err != nil {
		s.lg.Warn().Err(err).Str("user_id", u.ID).Msg("password reset mail failed")
	}

	return nil
}

// ResetPassword consumes a reset token and installs the new password. The
// token match, hash replacement and token clearing happen in one conditional
// store update, so a token is accepted at most once.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.ErrMissingField("token")
	}
	if newPassword == "" {
		return domain.ErrMissingField("password")
	}
	if len(newPassword) < 8 {
		return domain.ErrWeakPassword("min length 8")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	u, err := s.users.ConsumeResetToken(ctx, token, hash)
	if err != nil {
		return err
	}

	s.lg.Info().Str("user_id", u.ID).Msg("password reset completed")
	return nil
}
