package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/kibo-pay/kibo_pay/internal/metrics"
)

// maxAttempts bounds how many times the whole operation sequence re-runs
// after a transient storage failure before surfacing the error.
const maxAttempts = 3

// Service applies deposit and withdraw operations against the store. It
// keeps no wallet state between calls; every invocation works on a fresh
// snapshot read inside the store's atomicity boundary.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService builds a wallet service instance.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// PerformOperation atomically applies a deposit or withdrawal to the wallet,
// creating the wallet with a zero balance when it does not exist yet. The
// returned balance is re-read after the write so callers always see the
// value the store actually holds.
func (s *Service) PerformOperation(ctx context.Context, walletID uuid.UUID, opType OperationType, amount int64) (OperationResult, error) {
	if !opType.Valid() {
		return OperationResult{}, fmt.Errorf("unknown operation type %q", opType)
	}
	if amount <= 0 {
		return OperationResult{}, ErrInvalidAmount
	}

	start := time.Now()
	result, err := s.applyWithRetry(ctx, walletID, opType, decimal.NewFromInt(amount))
	metrics.OperationDuration.WithLabelValues(string(opType)).Observe(time.Since(start).Seconds())
	metrics.OperationsTotal.WithLabelValues(string(opType), outcomeLabel(err)).Inc()

	return result, err
}

// Balance returns the current wallet balance. The read runs outside the
// atomic boundary; it only needs point-in-time consistency.
func (s *Service) Balance(ctx context.Context, walletID uuid.UUID) (BalanceSnapshot, error) {
	balance, err := s.store.Get(ctx, walletID)
	if err != nil {
		if !errors.Is(err, ErrWalletNotFound) {
			s.logger.Error("balance lookup failed", slog.String("wallet_id", walletID.String()), slog.Any("error", err))
		}
		return BalanceSnapshot{}, err
	}
	return BalanceSnapshot{WalletID: walletID, Balance: balance}, nil
}

func (s *Service) applyWithRetry(ctx context.Context, walletID uuid.UUID, opType OperationType, amount decimal.Decimal) (OperationResult, error) {
	var result OperationResult
	var err error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err = s.apply(ctx, walletID, opType, amount)
		if err == nil || !retryable(err) {
			return result, err
		}
		// Balances may have moved; the whole sequence re-runs from the read.
		metrics.OperationRetries.Inc()
		s.logger.Warn("transient storage error, retrying operation",
			slog.String("wallet_id", walletID.String()),
			slog.String("operation", string(opType)),
			slog.Int("attempt", attempt),
			slog.Any("error", err))
	}

	s.logger.Error("operation failed after retries",
		slog.String("wallet_id", walletID.String()),
		slog.String("operation", string(opType)),
		slog.Any("error", err))
	return OperationResult{}, err
}

// apply runs the read-modify-write sequence inside one atomic boundary.
func (s *Service) apply(ctx context.Context, walletID uuid.UUID, opType OperationType, amount decimal.Decimal) (OperationResult, error) {
	var result OperationResult

	err := s.store.Atomic(ctx, func(tx Store) error {
		balance, err := s.resolveWallet(ctx, tx, walletID)
		if err != nil {
			return err
		}

		var newBalance decimal.Decimal
		switch opType {
		case OperationDeposit:
			newBalance = balance.Add(amount)
		case OperationWithdraw:
			if balance.LessThan(amount) {
				return &InsufficientFundsError{Balance: balance, Requested: amount}
			}
			newBalance = balance.Sub(amount)
		}

		rows, err := tx.UpdateBalance(ctx, walletID, newBalance)
		if err != nil {
			return err
		}
		if rows == 0 {
			// The row existed moments ago; treat the disappearance as a
			// store malfunction, not a user-facing miss.
			s.logger.Error("wallet row vanished during update", slog.String("wallet_id", walletID.String()))
			return ErrWalletNotFound
		}

		// Re-read so the response reflects any normalization the store
		// applied to the written value.
		stored, err := tx.Get(ctx, walletID)
		if err != nil {
			return err
		}

		result = OperationResult{
			WalletID: walletID,
			Balance:  stored,
			Message:  fmt.Sprintf("operation %s completed successfully", opType),
		}
		return nil
	})
	if err != nil {
		return OperationResult{}, err
	}
	return result, nil
}

// resolveWallet reads the balance, materializing the wallet with a zero
// balance on first reference. A wallet still absent after the creation
// attempt means the store is misbehaving.
func (s *Service) resolveWallet(ctx context.Context, tx Store, walletID uuid.UUID) (decimal.Decimal, error) {
	balance, err := tx.Get(ctx, walletID)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, ErrWalletNotFound) {
		return decimal.Decimal{}, err
	}

	if err := tx.CreateIfAbsent(ctx, walletID, decimal.Zero); err != nil {
		return decimal.Decimal{}, err
	}

	balance, err = tx.Get(ctx, walletID)
	if errors.Is(err, ErrWalletNotFound) {
		s.logger.Error("wallet absent after creation attempt", slog.String("wallet_id", walletID.String()))
	}
	return balance, err
}

// retryable reports whether the error is a transient storage failure worth
// re-running the sequence for: a serialization or deadlock abort, or a
// network error that occurred before the request was sent.
func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return true
		}
	}
	return pgconn.SafeToRetry(err)
}

func outcomeLabel(err error) string {
	var insufficient *InsufficientFundsError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrWalletNotFound):
		return metrics.OutcomeNotFound
	case errors.As(err, &insufficient):
		return metrics.OutcomeInsufficientFunds
	default:
		return metrics.OutcomeError
	}
}
