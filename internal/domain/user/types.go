package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role is carried in access tokens issued by the identity provider.
type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleAdmin:
		return true
	default:
		return false
	}
}

// Level orders roles for at-least checks; unknown roles rank below guest.
func (r Role) Level() int {
	switch r {
	case RoleGuest:
		return 1
	case RoleHost:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
