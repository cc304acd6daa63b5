package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/trimarkity/auth-service/internal/domain"
)

func TestLogin_EmptyFields_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	_, err := svc.Login(context.Background(), "", "")
	if err == nil {
		t.Fatalf("expected error")
	}
	requireDomainCode(t, err, "invalid_credentials")
}

func TestLogin_UnknownEmail_NonEnumerating_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	_, err := svc.Login(context.Background(), "missing@co.com", "pw12345678")
	if err == nil {
		t.Fatalf("expected error")
	}
	requireDomainCode(t, err, "invalid_credentials")
}

func TestLogin_WrongPassword_SameErrorAsUnknownEmail(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	users.put(domain.User{ID: "u1", Email: "e@co.com", PasswordHash: "hash:right"})

	_, errWrongPw := svc.Login(context.Background(), "e@co.com", "wrong")
	_, errUnknown := svc.Login(context.Background(), "other@co.com", "wrong")

	requireDomainCode(t, errWrongPw, "invalid_credentials")
	requireDomainCode(t, errUnknown, "invalid_credentials")
	if errWrongPw.Error() != errUnknown.Error() {
		t.Fatalf("enumeration leak: %q vs %q", errWrongPw, errUnknown)
	}
}

func TestLogin_Success_IssuesSession_AndStampsLastLogin(t *testing.T) {
	t.Parallel()

	svc, users, _, signer, _ := newSvcForTest(t)
	users.put(domain.User{
		ID: "u1", Email: "e@co.com", PasswordHash: "hash:pw12345678",
		FullName: "Eve Adams", Role: string(domain.RoleAdmin),
	})

	res, err := svc.Login(context.Background(), "e@co.com", "pw12345678")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if res.Token.AccessToken != "tok:u1" || res.Token.TokenType != "bearer" {
		t.Fatalf("unexpected token %+v", res.Token)
	}
	if len(signer.signed) != 1 || signer.signed[0].Role != string(domain.RoleAdmin) {
		t.Fatalf("expected role claim signed, got %+v", signer.signed)
	}
	if len(users.touchedIDs) != 1 || users.touchedIDs[0] != "u1" {
		t.Fatalf("expected last_login stamp for u1, got %v", users.touchedIDs)
	}
}

func TestLogin_LastLoginStampFailure_DoesNotFailLogin(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	users.put(domain.User{ID: "u1", Email: "e@co.com", PasswordHash: "hash:pw12345678"})
	users.touchLoginErr = errors.New("db hiccup")

	if _, err := svc.Login(context.Background(), "e@co.com", "pw12345678"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestLogin_MustChangePassword_SurfacedOnResult(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	users.put(domain.User{
		ID: "u2", Email: "bob@co.com", PasswordHash: "hash:temp1234",
		MustChangePassword: true, Role: string(domain.RoleUser),
	})

	res, err := svc.Login(context.Background(), "bob@co.com", "temp1234")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if !res.User.MustChangePassword {
		t.Fatalf("expected mustChangePassword carried through login")
	}
}

func TestLogin_AdminLinkage_InClaims(t *testing.T) {
	t.Parallel()

	svc, users, _, signer, _ := newSvcForTest(t)
	users.put(domain.User{
		ID: "u2", Email: "bob@co.com", PasswordHash: "hash:pw12345678",
		Role: string(domain.RoleUser), CreatedBy: "admin-1",
	})
	users.put(domain.User{
		ID: "a1", Email: "admin@co.com", PasswordHash: "hash:pw12345678",
		Role: string(domain.RoleAdmin),
	})

	if _, err := svc.Login(context.Background(), "bob@co.com", "pw12345678"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "admin@co.com", "pw12345678"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	if signer.signed[0].AdminID != "admin-1" {
		t.Fatalf("managed user should carry creator linkage, got %q", signer.signed[0].AdminID)
	}
	if signer.signed[1].AdminID != "a1" {
		t.Fatalf("admin should link to own id, got %q", signer.signed[1].AdminID)
	}
}
