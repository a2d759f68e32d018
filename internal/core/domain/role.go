package domain

import "errors"

// Role is the caller's permission class, mirrored from the access token's
// role claim. The platform issues exactly four dashboard roles; anything else
// in a token or login response is rejected before a session exists.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
)

var ErrInvalidRoleClaim = errors.New("invalid role claim")

// Roles lists the closed enumeration in a stable order.
func Roles() []Role {
	return []Role{RoleOwner, RoleTeacher, RoleStudent, RoleParent}
}

// ParseRole validates a raw role claim against the known enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleTeacher, RoleStudent, RoleParent:
		return Role(s), nil
	}
	return "", ErrInvalidRoleClaim
}

// DashboardPath is the URL prefix of the dashboard this role may render.
func (r Role) DashboardPath() string {
	return "/" + string(r)
}
