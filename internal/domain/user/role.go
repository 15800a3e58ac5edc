package user

import (
	"errors"
	"regexp"
)

// RoleCode is the application-level privilege of an account.
type RoleCode string

const RoleCodeAdmin RoleCode = "ADMIN"

var roleCodeRegexp = regexp.MustCompile(`^[A-Z0-9_]{3,64}$`)

var ErrInvalidRoleCode = errors.New("invalid role code")

// IsValid reports whether c has the shape of a user_roles.code value.
func (c RoleCode) IsValid() bool {
	return roleCodeRegexp.MatchString(string(c))
}

func (c RoleCode) IsAdmin() bool {
	return c == RoleCodeAdmin
}
