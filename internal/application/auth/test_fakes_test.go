package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/trimarkity/auth-service/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserStore struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	getByEmailErr error
	createErr     error
	updatePwdErr  error
	setResetErr   error
	consumeErr    error
	touchLoginErr error

	// record calls
	updatedPwd []struct {
		id, hash string
		clear    bool
	}
	setTokens []struct {
		id, token string
		expiresAt time.Time
	}
	touchedIDs  []string
	consumedTok []string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    map[string]domain.User{},
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserStore) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[strings.ToLower(u.Email)] = u
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserStore) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, exists := f.byEmail[strings.ToLower(u.Email)]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	f.byID[u.ID] = u
	f.byEmail[strings.ToLower(u.Email)] = u
	return u, nil
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, userID, newHash string, clearMustChange bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updatePwdErr != nil {
		return f.updatePwdErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	if clearMustChange {
		u.MustChangePassword = false
	}
	f.byID[userID] = u
	f.byEmail[strings.ToLower(u.Email)] = u
	f.updatedPwd = append(f.updatedPwd, struct {
		id, hash string
		clear    bool
	}{userID, newHash, clearMustChange})
	return nil
}

func (f *fakeUserStore) SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setResetErr != nil {
		return f.setResetErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.ResetToken = token
	u.ResetTokenExpiresAt = expiresAt
	f.byID[userID] = u
	f.byEmail[strings.ToLower(u.Email)] = u
	f.setTokens = append(f.setTokens, struct {
		id, token string
		expiresAt time.Time
	}{userID, token, expiresAt})
	return nil
}

func (f *fakeUserStore) ConsumeResetToken(ctx context.Context, token, newHash string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.consumedTok = append(f.consumedTok, token)
	if f.consumeErr != nil {
		return domain.User{}, f.consumeErr
	}
	for id, u := range f.byID {
		if u.ResetToken != token || token == "" {
			continue
		}
		if !u.ResetTokenExpiresAt.After(time.Now()) {
			return domain.User{}, domain.ErrResetTokenInvalid()
		}
		u.PasswordHash = newHash
		u.ResetToken = ""
		u.ResetTokenExpiresAt = time.Time{}
		f.byID[id] = u
		f.byEmail[strings.ToLower(u.Email)] = u
		return u, nil
	}
	return domain.User{}, domain.ErrResetTokenInvalid()
}

func (f *fakeUserStore) TouchLastLogin(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touchedIDs = append(f.touchedIDs, userID)
	return f.touchLoginErr
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return domain.ErrInvalidCredentials()
	}
	return nil
}

type fakeSigner struct {
	signErr error
	signed  []SessionClaims
}

func (f *fakeSigner) SignSession(c SessionClaims, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.signed = append(f.signed, c)
	return "tok:" + c.UserID, nil
}

func (f *fakeSigner) VerifySession(token string) (SessionClaims, error) {
	if !strings.HasPrefix(token, "tok:") {
		return SessionClaims{}, domain.ErrTokenInvalid()
	}
	return SessionClaims{UserID: strings.TrimPrefix(token, "tok:")}, nil
}

type sentMail struct {
	email, name, resetURL string
}

type fakeMailer struct {
	failWith error
	sent     []sentMail
}

func (f *fakeMailer) SendPasswordReset(ctx context.Context, toEmail, toName, resetURL string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.sent = append(f.sent, sentMail{toEmail, toName, resetURL})
	return nil
}
