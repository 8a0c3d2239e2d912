package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kodnest/kodbank/internal/apperror"
)

// AccountService defines the business logic contract for account reads.
type AccountService interface {
	Balance(ctx context.Context, username string) (decimal.Decimal, error)
}

// accountService implements AccountService.
type accountService struct {
	repo AccountRepository
}

// NewAccountService creates a new account service with the given repository.
func NewAccountService(repo AccountRepository) AccountService {
	return &accountService{repo: repo}
}

// Balance returns the stored balance for the given username. The username
// always comes from validated session claims, never from request input, so
// a caller can only ever read their own balance.
func (s *accountService) Balance(ctx context.Context, username string) (decimal.Decimal, error) {
	balance, err := s.repo.BalanceByUsername(ctx, username)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return decimal.Zero, err
		}
		return decimal.Zero, apperror.NewInternal(fmt.Errorf("reading balance: %w", err))
	}
	return balance, nil
}
