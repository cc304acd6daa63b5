package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/trimarkity/auth-service/internal/domain"
)

type CreateUserInput struct {
	Name       string
	Email      string
	Phone      string
	Department string
}

// CreateUser provisions a managed account with a temporary password. The
// plaintext temp password is returned exactly once for out-of-band delivery;
// it is never persisted or logged.
func (s *Service) CreateUser(ctx context.Context, actorID string, in CreateUserInput) (CreateUserResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" {
		return CreateUserResult{}, domain.ErrMissingField("name")
	}
	if in.Email == "" {
		return CreateUserResult{}, domain.ErrMissingField("email")
	}

	tempPassword, err := newTempPassword()
	if err != nil {
		return CreateUserResult{}, err
	}

	hash, err := s.hasher.Hash(tempPassword)
	if err != nil {
		return CreateUserResult{}, err
	}

	first, last := domain.SplitName(in.Name)

	u := domain.User{
		ID:                 uuid.NewString(),
		Email:              in.Email,
		PasswordHash:       hash,
		FullName:           in.Name,
		FirstName:          first,
		LastName:           last,
		Phone:              strings.TrimSpace(in.Phone),
		Department:         strings.TrimSpace(in.Department),
		Role:               string(domain.RoleUser),
		IsActive:           true,
		IsVerified:         false,
		MustChangePassword: true,
		CreatedBy:          actorID,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return CreateUserResult{}, err
	}

	s.lg.Info().
		Str("user_id", created.ID).
		Str("created_by", actorID).
		Msg("managed user provisioned")

	return CreateUserResult{
		UserID:       created.ID,
		Email:        created.Email,
		TempPassword: tempPassword,
	}, nil
}
