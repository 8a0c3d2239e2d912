// Package account provides authenticated reads of a customer's account
// data. Today that is a single operation: the balance lookup backing the
// dashboard.
package account

import (
	"github.com/shopspring/decimal"
)

// BalanceResponse is the JSON body returned by GET /balance.
type BalanceResponse struct {
	Balance  decimal.Decimal `json:"balance"`
	Username string          `json:"username"`
}
