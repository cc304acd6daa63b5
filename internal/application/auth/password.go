package auth

import (
	"context"
	"time"

	"github.com/trimarkity/auth-service/internal/domain"
)

// ChangePassword replaces the password of an authenticated user after
// verifying the current one. A mismatching current password never mutates the
// stored hash.
func (s *Service) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) (PasswordChangeResult, error) {
	if currentPassword == "" {
		return PasswordChangeResult{}, domain.ErrMissingField("currentPassword")
	}
	if err := validateNewPassword(newPassword); err != nil {
		return PasswordChangeResult{}, err
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return PasswordChangeResult{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, currentPassword); err != nil {
		return PasswordChangeResult{}, domain.ErrInvalidCurrentPassword()
	}

	return s.installPassword(ctx, u, newPassword)
}

// SetupPassword is the first-time path for admin-provisioned accounts: no
// current password is required, but the account must still be flagged for a
// forced change.
func (s *Service) SetupPassword(ctx context.Context, email, newPassword string) (PasswordChangeResult, error) {
	if err := validateNewPassword(newPassword); err != nil {
		return PasswordChangeResult{}, err
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return PasswordChangeResult{}, err
	}

	if !u.MustChangePassword {
		return PasswordChangeResult{}, domain.ErrPasswordChangeNotRequired()
	}

	return s.installPassword(ctx, u, newPassword)
}

// installPassword stores the new hash, clears the forced-change flag and
// issues a fresh session. The previous token stays structurally valid until
// its natural expiry; there is no revocation list.
func (s *Service) installPassword(ctx context.Context, u domain.User, newPassword string) (PasswordChangeResult, error) {
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return PasswordChangeResult{}, err
	}

	if err := s.users.UpdatePassword(ctx, u.ID, hash, true); err != nil {
		return PasswordChangeResult{}, err
	}

	u.PasswordHash = hash
	u.MustChangePassword = false
	u.PasswordChangedAt = time.Now()

	tok, err := s.issueSession(u)
	if err != nil {
		return PasswordChangeResult{}, err
	}

	return PasswordChangeResult{User: u, Token: tok}, nil
}

func validateNewPassword(newPassword string) error {
	if newPassword == "" {
		return domain.ErrMissingField("newPassword")
	}
	if len(newPassword) < 8 {
		return domain.ErrWeakPassword("min length 8")
	}
	return nil
}
