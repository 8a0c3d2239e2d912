// Package auth handles user registration, login, and session validation
// for kodbank. Sessions are signed JWTs carried in an HttpOnly cookie;
// every issued token is also appended to a write-only ledger table.
//
// This is a CORE plugin -- always enabled, cannot be disabled.
package auth

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role values form a closed set. New accounts always get RoleCustomer;
// the other roles exist for manually provisioned staff accounts.
const (
	RoleCustomer = "Customer"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// User represents a registered bank customer. This is the domain model used
// throughout the application. Database scanning and JSON marshaling use this
// struct directly.
type User struct {
	UID          int64           `json:"uid"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"` // Never expose in JSON responses.
	Balance      decimal.Decimal `json:"balance"`
	Phone        string          `json:"phone"`
	Role         string          `json:"role"`
	CreatedAt    time.Time       `json:"created_at"`
}

// IssuedToken is a row in the user_tokens ledger. The ledger is an audit
// record of every token ever issued; the validator never reads it back
// (token validity is decided by signature and expiry alone).
type IssuedToken struct {
	TID    int64
	Token  string
	UID    int64
	Expiry time.Time
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest holds the data submitted by the registration form.
// The field names match the frontend payload ("uname", not "username").
type RegisterRequest struct {
	Username string `json:"uname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// LoginRequest holds the data submitted by the login form.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// --- Service Input DTOs (passed from handler to service) ---

// RegisterInput is the validated input for creating a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Phone    string
}

// LoginInput is the validated input for authenticating a user.
type LoginInput struct {
	Username string
	Password string
}
