package repository

import (
	"context"
	"database/sql"
	"errors"
	"go-ledger-api/logger"
	"go-ledger-api/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Sentinel errors shared by every store implementation.
var (
	ErrAccountExists     = errors.New("account already exists")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// IAccountRepository defines the storage contract for ledger accounts.
// ApplyDelta must be atomic per account: concurrent deltas against the same
// id serialize with no lost updates, and deltas against different ids do not
// block each other.
type IAccountRepository interface {
	Create(ctx context.Context, id string, initialBalance decimal.Decimal) (*model.Account, error)
	Get(ctx context.Context, id string) (*model.Account, error)
	ApplyDelta(ctx context.Context, id string, delta decimal.Decimal) (*model.Account, error)
}

// AccountRepository implements IAccountRepository on PostgreSQL.
type AccountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

const uniqueViolation = pq.ErrorCode("23505")

// Create inserts a new account row.
func (r *AccountRepository) Create(ctx context.Context, id string, initialBalance decimal.Decimal) (*model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id":      id,
		"initial_balance": initialBalance,
	})
	log.Info("Executing query to create a new account")

	query := `INSERT INTO accounts (id, balance) VALUES ($1, $2) RETURNING balance`
	var balance decimal.Decimal
	err := r.DB.QueryRowContext(ctx, query, id, initialBalance).Scan(&balance)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			log.Info("Account already exists")
			return nil, ErrAccountExists
		}
		log.WithError(err).Error("Failed to execute create account query")
		return nil, err
	}
	return &model.Account{ID: id, Balance: balance}, nil
}

// Get retrieves the current balance for an account.
func (r *AccountRepository) Get(ctx context.Context, id string) (*model.Account, error) {
	log := logger.Log.WithField("account_id", id)
	log.Debug("Executing query to get account balance")

	query := `SELECT balance FROM accounts WHERE id = $1`
	var balance decimal.Decimal
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Info("Account not found")
			return nil, ErrAccountNotFound
		}
		log.WithError(err).Error("Failed to execute get account query")
		return nil, err
	}
	return &model.Account{ID: id, Balance: balance}, nil
}

// ApplyDelta atomically adds a signed amount to the account balance, refusing
// any update that would drive it below zero. A single conditional UPDATE
// leans on Postgres row-level locking: two concurrent deltas on the same row
// serialize, while rows for other accounts stay untouched. Transient lock
// failures are retried once before surfacing.
func (r *AccountRepository) ApplyDelta(ctx context.Context, id string, delta decimal.Decimal) (*model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": id,
		"delta":      delta,
	})
	log.Info("Executing query to apply balance delta")

	query := `UPDATE accounts SET balance = balance + $2 WHERE id = $1 AND balance + $2 >= 0 RETURNING balance`

	var balance decimal.Decimal
	err := r.DB.QueryRowContext(ctx, query, id, delta).Scan(&balance)
	if isRetryable(err) {
		log.WithError(err).Warn("Transient storage failure, retrying balance update once")
		err = r.DB.QueryRowContext(ctx, query, id, delta).Scan(&balance)
	}
	if err == nil {
		return &model.Account{ID: id, Balance: balance}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.WithError(err).Error("Failed to execute balance update query")
		return nil, err
	}

	// The conditional update matched no row: the account is either missing or
	// the delta would overdraw it.
	exists, exErr := r.exists(ctx, id)
	if exErr != nil {
		log.WithError(exErr).Error("Failed to check account existence")
		return nil, exErr
	}
	if !exists {
		log.Info("Account not found")
		return nil, ErrAccountNotFound
	}
	log.Info("Balance update rejected, insufficient funds")
	return nil, ErrInsufficientFunds
}

func (r *AccountRepository) exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM accounts WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// isRetryable reports whether the error is a transient Postgres locking
// failure: lock_not_available, deadlock_detected or serialization_failure.
func isRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case "55P03", "40P01", "40001":
		return true
	}
	return false
}
