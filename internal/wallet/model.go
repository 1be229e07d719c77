package wallet

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationType distinguishes the two balance mutations a wallet supports.
type OperationType string

const (
	// OperationDeposit credits the wallet balance.
	OperationDeposit OperationType = "DEPOSIT"
	// OperationWithdraw debits the wallet balance.
	OperationWithdraw OperationType = "WITHDRAW"
)

// Valid reports whether the operation type is one of the supported kinds.
func (t OperationType) Valid() bool {
	return t == OperationDeposit || t == OperationWithdraw
}

// Wallet is an account identified by an opaque UUID holding a single
// non-negative decimal balance.
type Wallet struct {
	ID      uuid.UUID
	Balance decimal.Decimal
}

// BalanceSnapshot is a point-in-time view of a wallet balance.
type BalanceSnapshot struct {
	WalletID uuid.UUID
	Balance  decimal.Decimal
}

// OperationResult is the outcome of a successfully applied operation,
// carrying the authoritative post-write balance.
type OperationResult struct {
	WalletID uuid.UUID
	Balance  decimal.Decimal
	Message  string
}
