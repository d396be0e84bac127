package domain

import "time"

// GlobalRole distinguishes ordinary users from the platform superadmin.
type GlobalRole string

const (
	RoleUser       GlobalRole = "user"
	RoleSuperadmin GlobalRole = "superadmin"
)

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// User is the identity behind every authenticated request. Accounts are never
// hard-deleted; disabling is the terminal removal state.
type User struct {
	ID              string
	Email           string
	TelephoneNumber *string
	FirstName       *string
	LastName        *string
	PasswordHash    string
	Role            GlobalRole
	Status          UserStatus
	LastLoginAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
