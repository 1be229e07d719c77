package wallet

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrWalletNotFound indicates the referenced wallet does not exist and
	// could not be materialized. When returned from the persist step it
	// signals a row that vanished mid-operation, which is a store
	// malfunction rather than a normal business outcome.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrInvalidAmount indicates a non-positive operation amount. Transport
	// validation should reject these before they reach the service.
	ErrInvalidAmount = errors.New("amount must be positive")
)

// InsufficientFundsError occurs when a withdrawal would drive the balance
// negative. It carries the figures the caller needs to act on the rejection.
type InsufficientFundsError struct {
	Balance   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: current balance %s, requested %s", e.Balance, e.Requested)
}
