package entities

import (
	"net/mail"
	"strings"
	"time"

	pkgerrors "campaign-manager/pkg/errors"
)

// Role grants access to operator endpoints
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole validates a role name; empty means RoleUser.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", pkgerrors.NewValidationError("role must be 'admin' or 'user'").WithDetail("field", "role")
}

// User is an operator account able to sign in to the dashboard API.
type User struct {
	email        string
	name         string
	passwordHash string
	role         Role
	createdAt    time.Time
}

// NewUser validates a new account. The password must already be hashed.
func NewUser(name, email, passwordHash string, role Role, now time.Time) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.NewValidationError("name is required").WithDetail("field", "name")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return nil, pkgerrors.NewValidationError("email is invalid").WithDetail("field", "email")
	}
	if passwordHash == "" {
		return nil, pkgerrors.NewValidationError("password is required").WithDetail("field", "password")
	}
	return &User{
		email:        strings.ToLower(addr.Address),
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
	}, nil
}

// ReconstructUser rebuilds a stored user
func ReconstructUser(email, name, passwordHash string, role Role, createdAt time.Time) *User {
	return &User{email: email, name: name, passwordHash: passwordHash, role: role, createdAt: createdAt}
}

func (u *User) Email() string        { return u.email }
func (u *User) Name() string         { return u.name }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool { return u.role == RoleAdmin }
