package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrForbidden = errors.New("access forbidden")
var ErrUnauthenticated = errors.New("missing or invalid credential")

// User models an account created on first sign-in. Email is unique.
type User struct {
	ID    string
	Email string
	Name  string
	Image string
	Role  string
	// PremiumExpiry is nil or an instant that was strictly in the future
	// when written. An expired value reads as not premium and is reconciled
	// to nil on the next write-bearing read.
	PremiumExpiry *time.Time
	CreatedAt     time.Time
}

// Principal is the verified identity derived from a credential. Only the
// principal's email is ever consulted for authorization decisions.
type Principal struct {
	Subject string
	Email   string
}
