package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog"

	"github.com/trimarkity/auth-service/internal/domain"
)

type Service struct {
	users  UserStore
	hasher PasswordHasher
	signer TokenSigner
	mailer Mailer

	lg zerolog.Logger

	sessionTTL time.Duration
	resetTTL   time.Duration
}

type Config struct {
	SessionTTL time.Duration
	ResetTTL   time.Duration
}

func NewService(
	users UserStore,
	hasher PasswordHasher,
	signer TokenSigner,
	mailer Mailer,
	lg zerolog.Logger,
	cfg Config,
) *Service {
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	resetTTL := cfg.ResetTTL
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	return &Service{
		users:  users,
		hasher: hasher,
		signer: signer,
		mailer: mailer,

		lg: lg.With().Str("component", "auth_service").Logger(),

		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
	}
}

// AuthToken is the common session-credential output for handlers/DTO mapping.
type AuthToken struct {
	AccessToken string
	TokenType   string // "bearer"
	ExpiresIn   int64  // seconds
}

type LoginResult struct {
	User  domain.User
	Token AuthToken
}

type SignupResult struct {
	User  domain.User
	Token AuthToken
}

type PasswordChangeResult struct {
	User  domain.User
	Token AuthToken
}

type CreateUserResult struct {
	UserID       string
	Email        string
	TempPassword string
}

// issueSession signs a session token carrying identity, role and the admin
// linkage used downstream for multi-tenant filtering.
func (s *Service) issueSession(u domain.User) (AuthToken, error) {
	signed, err := s.signer.SignSession(SessionClaims{
		UserID:  u.ID,
		Email:   u.Email,
		Name:    u.FullName,
		Role:    u.Role,
		AdminID: u.AdminLinkage(),
	}, s.sessionTTL)
	if err != nil {
		return AuthToken{}, err
	}

	return AuthToken{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.sessionTTL.Seconds()),
	}, nil
}

// newResetToken returns a hex-encoded reset token with 32 bytes of entropy.
func newResetToken() (string, error) {
	return randomHex(32)
}

// newTempPassword returns 8 bytes of entropy rendered as readable hex text.
func newTempPassword() (string, error) {
	return randomHex(8)
}

func randomHex(bytesLen int) (string, error) {
	b := make([]byte, bytesLen)
	if _, err := rand.Read(b); err != nil {
		return "", domain.ErrRandomFailed(err)
	}
	return hex.EncodeToString(b), nil
}
