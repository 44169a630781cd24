package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds the bcrypt hash, never the plain value.
// TwoFASecret is non-empty whenever TwoFAEnabled is true.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	Password     string
	TwoFAEnabled bool
	TwoFASecret  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserFields is a partial update applied atomically by the user repository.
// Nil fields are left untouched.
type UserFields struct {
	TwoFAEnabled *bool
	TwoFASecret  *string
}

// Empty reports whether no field is set.
func (f UserFields) Empty() bool {
	return f.TwoFAEnabled == nil && f.TwoFASecret == nil
}
