package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/kodnest/kodbank/internal/apperror"
)

// UserRepository defines the data access contract for users and the issued-
// token ledger. All SQL lives in the concrete implementation -- no SQL
// leaks out.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	UsernameOrEmailExists(ctx context.Context, username, email string) (bool, error)

	// Ledger. Append-only from the application's point of view.
	RecordToken(ctx context.Context, token *IssuedToken) error
}

// userRepository implements UserRepository with hand-written MySQL queries.
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository backed by the given DB pool.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// mysqlDuplicateEntry is the MySQL error number for a unique-key violation.
const mysqlDuplicateEntry = 1062

// IsDuplicateEntry reports whether err is a MySQL unique-constraint
// violation. The registration flow's existence check is not atomic with
// the insert; the unique index is the real backstop, and this lets the
// service translate a lost race into the same "already exists" response.
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// Create inserts a new user row. The caller supplies the balance and role
// (defaults are decided by the service, not the schema, so tests can see
// them). The generated uid is written back into user.
func (r *userRepository) Create(ctx context.Context, user *User) error {
	query := `INSERT INTO users (username, email, password_hash, balance, phone, role)
	          VALUES (?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Balance,
		user.Phone,
		user.Role,
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	uid, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted uid: %w", err)
	}
	user.UID = uid

	return nil
}

// FindByUsername retrieves a user by their username.
// Returns apperror.NotFound if no user exists with this username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT uid, username, email, password_hash, balance, phone, role, created_at
	          FROM users WHERE username = ?`

	user := &User{}
	var phone sql.NullString
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.UID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Balance,
		&phone,
		&user.Role,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by username: %w", err)
	}
	user.Phone = phone.String

	return user, nil
}

// UsernameOrEmailExists returns true if any user already holds the given
// username or email. Used during registration to reject duplicates before
// the expensive password hash.
func (r *userRepository) UsernameOrEmailExists(ctx context.Context, username, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = ? OR email = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, username, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking username/email existence: %w", err)
	}

	return exists, nil
}

// RecordToken appends a row to the user_tokens ledger.
func (r *userRepository) RecordToken(ctx context.Context, token *IssuedToken) error {
	query := `INSERT INTO user_tokens (token, uid, expiry) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, token.Token, token.UID, token.Expiry)
	if err != nil {
		return fmt.Errorf("recording issued token: %w", err)
	}

	tid, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted tid: %w", err)
	}
	token.TID = tid

	return nil
}
