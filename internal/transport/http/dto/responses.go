package dto

import (
	"github.com/trimarkity/auth-service/internal/application/auth"
	"github.com/trimarkity/auth-service/internal/domain"
)

// UserView is the public representation of a user account. The
// mustChangePassword key is camelCase because portal clients read it
// directly off the login payload.
type UserView struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	FullName           string `json:"full_name"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Phone              string `json:"phone,omitempty"`
	Department         string `json:"department,omitempty"`
	Role               string `json:"role"`
	IsActive           bool   `json:"is_active"`
	IsVerified         bool   `json:"is_verified"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:                 u.ID,
		Email:              u.Email,
		FullName:           u.FullName,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Phone:              u.Phone,
		Department:         u.Department,
		Role:               string(u.Role),
		IsActive:           u.IsActive,
		IsVerified:         u.IsVerified,
		MustChangePassword: u.MustChangePassword,
	}
}

type SessionResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int64    `json:"expires_in"`
	User        UserView `json:"user"`
}

func NewSessionResponse(u domain.User, t auth.AuthToken) SessionResponse {
	return SessionResponse{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		ExpiresIn:   t.ExpiresIn,
		User:        NewUserView(u),
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}

// PasswordChangeResponse confirms a rotation and hands over the fresh session.
type PasswordChangeResponse struct {
	Message     string   `json:"message"`
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int64    `json:"expires_in"`
	User        UserView `json:"user"`
}

func NewPasswordChangeResponse(msg string, u domain.User, t auth.AuthToken) PasswordChangeResponse {
	return PasswordChangeResponse{
		Message:     msg,
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		ExpiresIn:   t.ExpiresIn,
		User:        NewUserView(u),
	}
}

// CreateUserResponse wraps the one-time credentials the admin relays to the
// new team member out of band.
type CreateUserResponse struct {
	Credentials            CreatedCredentials `json:"credentials"`
	PasswordChangeRequired bool               `json:"passwordChangeRequired"`
}

type CreatedCredentials struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	TempPassword string `json:"tempPassword"`
}
