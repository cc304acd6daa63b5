package auth

import (
	"context"
	"time"

	"github.com/trimarkity/auth-service/internal/domain"
)

/*
UserStore
---------
Persistence port for the credential store.
Only describes WHAT the auth flows need, not HOW records are stored.
*/
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// UpdatePassword replaces the stored hash, stamps password_changed_at and,
	// when clearMustChange is set, clears the forced-change flag in the same
	// write.
	UpdatePassword(ctx context.Context, userID, newHash string, clearMustChange bool) error

	// SetResetToken stores an outstanding reset token on the account,
	// overwriting (and thereby invalidating) any prior one.
	SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error

	// ConsumeResetToken atomically matches an unexpired token, replaces the
	// password hash and clears the token state in one conditional update, so
	// at most one concurrent redemption succeeds. Wrong, expired and
	// already-used tokens are indistinguishable: all return
	// domain.ErrResetTokenInvalid.
	ConsumeResetToken(ctx context.Context, token, newHash string) (domain.User, error)

	// TouchLastLogin is last-writer-wins and non-critical.
	TouchLastLogin(ctx context.Context, userID string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies the stateless session credential.
Used by the service and the auth middleware.
*/
type SessionClaims struct {
	UserID  string
	Email   string
	Name    string
	Role    string
	AdminID string
	Exp     time.Time
}

type TokenSigner interface {
	SignSession(claims SessionClaims, ttl time.Duration) (string, error)
	VerifySession(token string) (SessionClaims, error)
}

/*
Mailer
------
Delivery port for the password-reset email. The service builds the link and
greeting; the implementation owns rendering and transport (SMTP directly, or a
hand-off to an external notifier via the broker).
*/
type Mailer interface {
	SendPasswordReset(ctx context.Context, toEmail, toName, resetURL string) error
}
