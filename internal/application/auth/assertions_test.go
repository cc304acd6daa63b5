package auth

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/trimarkity/auth-service/internal/domain"
)

func newSvcForTest(t *testing.T) (*Service, *fakeUserStore, *fakeHasher, *fakeSigner, *fakeMailer) {
	t.Helper()

	users := newFakeUserStore()
	hasher := &fakeHasher{}
	signer := &fakeSigner{}
	mailer := &fakeMailer{}

	svc := NewService(users, hasher, signer, mailer, zerolog.Nop(), Config{})
	return svc, users, hasher, signer, mailer
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()

	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("expected code %q, got %q (%v)", code, de.Code, err)
	}
}
