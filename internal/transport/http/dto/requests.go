package dto

import (
	"strings"

	"github.com/trimarkity/auth-service/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return domain.ErrMissingField("email")
	}
	if r.Password == "" {
		return domain.ErrMissingField("password")
	}
	return nil
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

func (r SignupRequest) Validate() error {
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return domain.ErrMissingField("email")
	}
	if !strings.Contains(email, "@") {
		return domain.ErrInvalidField("email", "must be a valid email address")
	}
	if r.Password == "" {
		return domain.ErrMissingField("password")
	}
	return nil
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r ForgotPasswordRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return domain.ErrMissingField("email")
	}
	return nil
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (r ResetPasswordRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return domain.ErrMissingField("token")
	}
	if r.Password == "" {
		return domain.ErrMissingField("password")
	}
	return nil
}

// Password-change bodies keep the portal's camelCase keys.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" {
		return domain.ErrMissingField("currentPassword")
	}
	if r.NewPassword == "" {
		return domain.ErrMissingField("newPassword")
	}
	return nil
}

type SetupPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

func (r SetupPasswordRequest) Validate() error {
	if r.NewPassword == "" {
		return domain.ErrMissingField("newPassword")
	}
	return nil
}

type CreateUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

func (r CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return domain.ErrMissingField("name")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return domain.ErrMissingField("email")
	}
	if !strings.Contains(email, "@") {
		return domain.ErrInvalidField("email", "must be a valid email address")
	}
	return nil
}
