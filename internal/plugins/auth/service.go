package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kodnest/kodbank/internal/apperror"
)

// Every new account starts with the same demo balance.
var defaultBalance = decimal.NewFromInt(100000)

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (token string, expiry time.Time, user *User, err error)
}

// authService implements AuthService with bcrypt hashing and JWT sessions.
type authService struct {
	repo   UserRepository
	issuer *TokenIssuer
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, issuer *TokenIssuer) AuthService {
	return &authService{repo: repo, issuer: issuer}
}

// Register creates a new user account. It validates the input, checks
// username/email uniqueness, hashes the password with bcrypt, and persists
// the user with the default balance and Customer role.
//
// The existence check and the insert are not one transaction. Two
// concurrent registrations for the same username can both pass the check;
// the unique index rejects the loser and that failure is reported exactly
// like the pre-checked duplicate, never as a server error.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" || input.Phone == "" {
		return nil, apperror.NewBadRequest("all fields are required")
	}

	// Check for duplicates before doing expensive hashing.
	exists, err := s.repo.UsernameOrEmailExists(ctx, input.Username, input.Email)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking existing user: %w", err))
	}
	if exists {
		return nil, apperror.NewBadRequest("user already exists")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Balance:      defaultBalance,
		Phone:        input.Phone,
		Role:         RoleCustomer,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if IsDuplicateEntry(err) {
			// Lost the race against a concurrent registration.
			return nil, apperror.NewBadRequest("user already exists")
		}
		return nil, apperror.NewInternal(fmt.Errorf("creating user: %w", err))
	}

	slog.Info("user registered",
		slog.Int64("uid", user.UID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login authenticates a user by username and password. On success it issues
// a signed session token, appends it to the user_tokens ledger, and returns
// the token with its expiry for the cookie.
//
// An unknown username and a wrong password produce byte-identical failures
// so the endpoint cannot be used to enumerate accounts.
func (s *authService) Login(ctx context.Context, input LoginInput) (string, time.Time, *User, error) {
	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			return "", time.Time{}, nil, apperror.NewBadRequest("invalid credentials")
		}
		return "", time.Time{}, nil, apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	if !CheckPassword(input.Password, user.PasswordHash) {
		return "", time.Time{}, nil, apperror.NewBadRequest("invalid credentials")
	}

	token, expiry, err := s.issuer.Issue(user)
	if err != nil {
		return "", time.Time{}, nil, apperror.NewInternal(fmt.Errorf("issuing token: %w", err))
	}

	// Ledger write. Audit-only: the validator decides validity from the
	// token itself and never reads this table back.
	record := &IssuedToken{Token: token, UID: user.UID, Expiry: expiry}
	if err := s.repo.RecordToken(ctx, record); err != nil {
		return "", time.Time{}, nil, apperror.NewInternal(fmt.Errorf("recording token: %w", err))
	}

	slog.Info("user logged in",
		slog.Int64("uid", user.UID),
		slog.String("username", user.Username),
	)

	return token, expiry, user, nil
}
