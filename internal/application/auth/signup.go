package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/trimarkity/auth-service/internal/domain"
)

type SignupInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

// Signup self-provisions an account. Self-service signups own a dashboard
// tenant, so they are created with the admin role; end users are provisioned
// by an admin through CreateUser instead.
func (s *Service) Signup(ctx context.Context, in SignupInput) (SignupResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		return SignupResult{}, domain.ErrMissingField("email")
	}
	if in.Password == "" {
		return SignupResult{}, domain.ErrMissingField("password")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return SignupResult{}, err
	}

	fullName := strings.TrimSpace(in.FullName)
	first, last := domain.SplitName(fullName)
	if fullName == "" {
		fullName = "New User"
		first = "User"
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     fullName,
		FirstName:    first,
		LastName:     last,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         string(domain.RoleAdmin),
		IsActive:     true,
		IsVerified:   false,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return SignupResult{}, err
	}

	tok, err := s.issueSession(created)
	if err != nil {
		return SignupResult{}, err
	}

	return SignupResult{User: created, Token: tok}, nil
}
