package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestMemoryStore_CreateIfAbsentIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	walletID := uuid.New()

	if err := store.CreateIfAbsent(ctx, walletID, decimal.NewFromInt(500)); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Second create must not overwrite the existing balance.
	if err := store.CreateIfAbsent(ctx, walletID, decimal.Zero); err != nil {
		t.Fatalf("repeat create: %v", err)
	}

	balance, err := store.Get(ctx, walletID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected balance 500, got %s", balance)
	}
}

func TestMemoryStore_GetUnknownWallet(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Get(context.Background(), uuid.New()); !errors.Is(err, ErrWalletNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStore_UpdateBalanceReportsAffectedRows(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	walletID := uuid.New()

	rows, err := store.UpdateBalance(ctx, walletID, decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("update missing wallet: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows for missing wallet, got %d", rows)
	}

	if err := store.CreateIfAbsent(ctx, walletID, decimal.Zero); err != nil {
		t.Fatalf("create: %v", err)
	}
	rows, err = store.UpdateBalance(ctx, walletID, decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row, got %d", rows)
	}

	balance, err := store.Get(ctx, walletID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected balance 10, got %s", balance)
	}
}

func TestMemoryStore_AtomicRollsBackOnError(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	existing := uuid.New()
	if err := store.CreateIfAbsent(ctx, existing, decimal.NewFromInt(100)); err != nil {
		t.Fatalf("create: %v", err)
	}

	fresh := uuid.New()
	failure := errors.New("boom")
	err := store.Atomic(ctx, func(tx Store) error {
		if err := tx.CreateIfAbsent(ctx, fresh, decimal.Zero); err != nil {
			return err
		}
		if _, err := tx.UpdateBalance(ctx, existing, decimal.NewFromInt(999)); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("expected callback error, got %v", err)
	}

	// Neither the insert nor the update may survive the failed block.
	if _, err := store.Get(ctx, fresh); !errors.Is(err, ErrWalletNotFound) {
		t.Fatalf("insert survived failed atomic block: %v", err)
	}
	balance, err := store.Get(ctx, existing)
	if err != nil {
		t.Fatalf("get existing: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("update survived failed atomic block: %s", balance)
	}
}

func TestMemoryStore_AtomicSerializesAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	walletID := uuid.New()

	err := store.Atomic(ctx, func(tx Store) error {
		if err := tx.CreateIfAbsent(ctx, walletID, decimal.Zero); err != nil {
			return err
		}
		if _, err := tx.UpdateBalance(ctx, walletID, decimal.NewFromInt(42)); err != nil {
			return err
		}
		// Nested Atomic joins the outer boundary instead of deadlocking.
		return tx.Atomic(ctx, func(inner Store) error {
			balance, err := inner.Get(ctx, walletID)
			if err != nil {
				return err
			}
			if !balance.Equal(decimal.NewFromInt(42)) {
				t.Fatalf("expected balance 42 inside tx, got %s", balance)
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("atomic: %v", err)
	}

	balance, err := store.Get(ctx, walletID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(42)) {
		t.Fatalf("expected balance 42, got %s", balance)
	}
}
