package auth

import (
	"context"
	"testing"

	"github.com/trimarkity/auth-service/internal/domain"
)

func TestSignup_MissingEmail_Rejected(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	_, err := svc.Signup(context.Background(), SignupInput{Password: "pw12345678"})
	if err == nil {
		t.Fatalf("expected error")
	}
	requireDomainCode(t, err, "missing_field")
}

func TestSignup_Success_CreatesAdminOwner(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)

	res, err := svc.Signup(context.Background(), SignupInput{
		Email:    "owner@co.com",
		Password: "pw12345678",
		FullName: "Olive Wren",
	})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if res.User.Role != string(domain.RoleAdmin) {
		t.Fatalf("self-service signups own a tenant, expected admin role, got %q", res.User.Role)
	}
	if !res.User.IsActive || res.User.IsVerified {
		t.Fatalf("expected active, unverified account, got %+v", res.User)
	}
	if res.User.FirstName != "Olive" || res.User.LastName != "Wren" {
		t.Fatalf("name split wrong: %q %q", res.User.FirstName, res.User.LastName)
	}
	if res.Token.AccessToken == "" {
		t.Fatalf("expected session issued on signup")
	}
	if _, ok := users.byID[res.User.ID]; !ok {
		t.Fatalf("expected user persisted")
	}
}

func TestSignup_EmptyName_DefaultsToNewUser(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _ := newSvcForTest(t)

	res, err := svc.Signup(context.Background(), SignupInput{
		Email:    "owner@co.com",
		Password: "pw12345678",
	})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if res.User.FullName != "New User" || res.User.FirstName != "User" {
		t.Fatalf("expected placeholder name, got %q / %q", res.User.FullName, res.User.FirstName)
	}
}

func TestSignup_DuplicateEmail_Conflict(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _ := newSvcForTest(t)
	users.put(domain.User{ID: "u1", Email: "owner@co.com", PasswordHash: "hash:x"})

	_, err := svc.Signup(context.Background(), SignupInput{
		Email:    "owner@co.com",
		Password: "pw12345678",
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	requireDomainCode(t, err, "email_already_exists")
}
