package domain

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func IsValidRole(s string) bool {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}
