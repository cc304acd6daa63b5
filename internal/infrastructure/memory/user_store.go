package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/trimarkity/auth-service/internal/domain"
)

// UserStore is an in-process credential store used in dev mode and in
// transport-level tests. It mirrors the postgres store's semantics, including
// the at-most-once reset-token redemption.
type UserStore struct {
	mu      sync.Mutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> userID
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return s.byID[id], nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (s *UserStore) Create(ctx context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.Email = normalizeEmail(u.Email)
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if _, exists := s.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	s.byID[u.ID] = u
	s.byEmail[u.Email] = u.ID
	return u, nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, userID, newHash string, clearMustChange bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	if clearMustChange {
		u.MustChangePassword = false
	}
	u.PasswordChangedAt = time.Now()
	u.UpdatedAt = time.Now()
	s.byID[userID] = u
	return nil
}

func (s *UserStore) SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.ResetToken = token
	u.ResetTokenExpiresAt = expiresAt
	u.UpdatedAt = time.Now()
	s.byID[userID] = u
	return nil
}

func (s *UserStore) ConsumeResetToken(ctx context.Context, token, newHash string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		return domain.User{}, domain.ErrResetTokenInvalid()
	}

	for id, u := range s.byID {
		if u.ResetToken != token {
			continue
		}
		if !u.ResetTokenExpiresAt.After(time.Now()) {
			return domain.User{}, domain.ErrResetTokenInvalid()
		}
		u.PasswordHash = newHash
		u.ResetToken = ""
		u.ResetTokenExpiresAt = time.Time{}
		u.UpdatedAt = time.Now()
		s.byID[id] = u
		return u, nil
	}
	return domain.User{}, domain.ErrResetTokenInvalid()
}

func (s *UserStore) TouchLastLogin(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.LastLoginAt = time.Now()
	s.byID[userID] = u
	return nil
}
