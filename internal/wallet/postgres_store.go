package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresStore keeps wallet balances in PostgreSQL. Pool-level calls serve
// the read-only query path; Atomic hands out a transaction-bound view whose
// reads take row locks, so two operations against one wallet cannot both
// observe the pre-update balance.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get fetches the current balance without locking.
func (s *PostgresStore) Get(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.db.QueryRow(ctx, `SELECT balance FROM wallets WHERE id = $1`, walletID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Decimal{}, ErrWalletNotFound
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("select wallet %s: %w", walletID, err)
	}
	return balance, nil
}

// CreateIfAbsent inserts the wallet row, ignoring conflicts on the primary
// key so concurrent creators converge on one logical row.
func (s *PostgresStore) CreateIfAbsent(ctx context.Context, walletID uuid.UUID, initial decimal.Decimal) error {
	return createIfAbsent(ctx, s.db, walletID, initial)
}

// UpdateBalance overwrites the stored balance, reporting affected rows.
func (s *PostgresStore) UpdateBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) (int64, error) {
	return updateBalance(ctx, s.db, walletID, balance)
}

// Atomic runs fn inside a database transaction. The Store passed to fn is
// bound to that transaction and its Get locks rows with FOR UPDATE.
func (s *PostgresStore) Atomic(ctx context.Context, fn func(Store) error) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if err := fn(&postgresTxStore{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// postgresTxStore is a transaction-scoped view of the store.
type postgresTxStore struct {
	tx pgx.Tx
}

func (s *postgresTxStore) Get(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.tx.QueryRow(ctx, `SELECT balance FROM wallets WHERE id = $1 FOR UPDATE`, walletID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Decimal{}, ErrWalletNotFound
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("select wallet %s for update: %w", walletID, err)
	}
	return balance, nil
}

func (s *postgresTxStore) CreateIfAbsent(ctx context.Context, walletID uuid.UUID, initial decimal.Decimal) error {
	return createIfAbsent(ctx, s.tx, walletID, initial)
}

func (s *postgresTxStore) UpdateBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) (int64, error) {
	return updateBalance(ctx, s.tx, walletID, balance)
}

// Atomic on a transaction-scoped store joins the surrounding transaction.
func (s *postgresTxStore) Atomic(_ context.Context, fn func(Store) error) error {
	return fn(s)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func createIfAbsent(ctx context.Context, q querier, walletID uuid.UUID, initial decimal.Decimal) error {
	_, err := q.Exec(ctx, `INSERT INTO wallets (id, balance) VALUES ($1, $2)
        ON CONFLICT (id) DO NOTHING`, walletID, initial)
	if err != nil {
		return fmt.Errorf("insert wallet %s: %w", walletID, err)
	}
	return nil
}

func updateBalance(ctx context.Context, q querier, walletID uuid.UUID, balance decimal.Decimal) (int64, error) {
	tag, err := q.Exec(ctx, `UPDATE wallets SET balance = $1 WHERE id = $2`, balance, walletID)
	if err != nil {
		return 0, fmt.Errorf("update wallet %s: %w", walletID, err)
	}
	return tag.RowsAffected(), nil
}
