package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store persists wallet balances. All shared state lives here; the service
// holds no wallet state between calls.
type Store interface {
	// Get returns the current balance or ErrWalletNotFound. Inside an
	// Atomic block the read locks the row so concurrent operations on the
	// same wallet serialize; rows of other wallets are not touched.
	Get(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error)

	// CreateIfAbsent inserts a wallet row with the given initial balance.
	// It is a no-op when the row already exists and is safe under
	// concurrent calls for the same identifier.
	CreateIfAbsent(ctx context.Context, walletID uuid.UUID, initial decimal.Decimal) error

	// UpdateBalance overwrites the balance of an existing row and reports
	// how many rows were affected. Zero means the row does not exist.
	UpdateBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) (int64, error)

	// Atomic runs fn inside a single atomicity boundary: either every write
	// fn performs commits, or none do.
	Atomic(ctx context.Context, fn func(Store) error) error
}
