package user

type User struct {
	ID           int64
	Username     *string
	Email        string
	PasswordHash string
	UserRoleID   int64
	RoleCode     RoleCode

	// IsExternallyAuthenticated marks accounts whose password is checked by
	// an external directory (LDAP and the like).
	IsExternallyAuthenticated bool
}

// LoginName is the identity the account signs in with.
func (u *User) LoginName() string {
	if u.Username != nil {
		return *u.Username
	}
	return u.Email
}
