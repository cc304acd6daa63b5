package domain

import (
	"strings"
	"time"
)

// User is the credential-store record. Accounts are never hard-deleted;
// password and reset-token state are mutated only through the auth flows.
type User struct {
	ID           string
	Email        string
	PasswordHash string

	FullName  string
	FirstName string
	LastName  string

	Phone      string
	Department string

	Role       string
	IsActive   bool
	IsVerified bool

	// MustChangePassword is true only for admin-provisioned accounts that have
	// not yet replaced their temporary password.
	MustChangePassword bool

	// CreatedBy holds the provisioning admin's id; empty for self-registered
	// accounts.
	CreatedBy string

	// ResetToken is present iff a password-reset request is outstanding.
	ResetToken          string
	ResetTokenExpiresAt time.Time

	CreatedAt         time.Time
	UpdatedAt         time.Time
	PasswordChangedAt time.Time
	LastLoginAt       time.Time
}

// AdminLinkage returns the admin id a session for this user should carry:
// the provisioning admin for managed accounts, the user's own id when the
// user is an admin, empty when untracked.
func (u User) AdminLinkage() string {
	if u.CreatedBy != "" {
		return u.CreatedBy
	}
	if u.Role == string(RoleAdmin) {
		return u.ID
	}
	return ""
}

// SplitName splits a submitted display name on the first space: the first
// token becomes the first name, the remainder joined becomes the last name
// (empty when there is no remainder).
func SplitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	parts := strings.Split(full, " ")
	return parts[0], strings.Join(parts[1:], " ")
}
