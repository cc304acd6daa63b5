package postgres

import (
	"database/sql"

	"github.com/trimarkity/auth-service/internal/domain"
)

// userRow mirrors the users table; nullable columns stay sql.Null* here and
// collapse to zero values on the domain type.
type userRow struct {
	ID                  string
	Email               string
	PasswordHash        string
	FullName            string
	FirstName           string
	LastName            string
	Phone               string
	Department          string
	Role                string
	IsActive            bool
	IsVerified          bool
	MustChangePassword  bool
	CreatedBy           sql.NullString
	ResetToken          sql.NullString
	ResetTokenExpiresAt sql.NullTime
	CreatedAt           sql.NullTime
	UpdatedAt           sql.NullTime
	PasswordChangedAt   sql.NullTime
	LastLoginAt         sql.NullTime
}

func (ur userRow) toDomain() domain.User {
	u := domain.User{
		ID:                 ur.ID,
		Email:              ur.Email,
		PasswordHash:       ur.PasswordHash,
		FullName:           ur.FullName,
		FirstName:          ur.FirstName,
		LastName:           ur.LastName,
		Phone:              ur.Phone,
		Department:         ur.Department,
		Role:               ur.Role,
		IsActive:           ur.IsActive,
		IsVerified:         ur.IsVerified,
		MustChangePassword: ur.MustChangePassword,
	}
	if ur.CreatedBy.Valid {
		u.CreatedBy = ur.CreatedBy.String
	}
	if ur.ResetToken.Valid {
		u.ResetToken = ur.ResetToken.String
	}
	if ur.ResetTokenExpiresAt.Valid {
		u.ResetTokenExpiresAt = ur.ResetTokenExpiresAt.Time
	}
	if ur.CreatedAt.Valid {
		u.CreatedAt = ur.CreatedAt.Time
	}
	if ur.UpdatedAt.Valid {
		u.UpdatedAt = ur.UpdatedAt.Time
	}
	if ur.PasswordChangedAt.Valid {
		u.PasswordChangedAt = ur.PasswordChangedAt.Time
	}
	if ur.LastLoginAt.Valid {
		u.LastLoginAt = ur.LastLoginAt.Time
	}
	return u
}
