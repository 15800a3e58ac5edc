package user

import "context"

// Repository is the persistence side of account provisioning. Implementations
// own email uniqueness and report collisions as ErrEmailAlreadyUsed.
type Repository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetRoleIDByCode(ctx context.Context, code RoleCode) (int64, error)
}
