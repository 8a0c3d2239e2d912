package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kodnest/kodbank/internal/apperror"
)

// AccountRepository defines the data access contract for account reads.
type AccountRepository interface {
	BalanceByUsername(ctx context.Context, username string) (decimal.Decimal, error)
}

// accountRepository implements AccountRepository against the users table.
type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new account repository backed by the given
// DB pool.
func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

// BalanceByUsername fetches the stored balance for a username.
// Returns apperror.NotFound if the user row no longer exists (it may have
// been deleted after the session token was issued).
func (r *accountRepository) BalanceByUsername(ctx context.Context, username string) (decimal.Decimal, error) {
	query := `SELECT balance FROM users WHERE username = ?`

	var balance decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, username).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("querying balance: %w", err)
	}

	return balance, nil
}
