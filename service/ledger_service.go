// file: service/ledger_service.go

package service

import (
	"context"
	"errors"
	"go-ledger-api/common"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrAccountNotFound   = errors.New("account does not exist")
	ErrAccountExists     = errors.New("account already exists")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrNegativeBalance   = errors.New("initial balance must be non-negative")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAccountID  = errors.New("account id must be 1-64 characters of letters, digits, underscore or hyphen")
)

// LedgerService holds the business rules for account creation and balance
// mutation. All monetary amounts are quantized to two decimal places before
// they touch the store, so repeated fractional operations never drift.
type LedgerService struct {
	repo repository.IAccountRepository
}

func NewLedgerService(repo repository.IAccountRepository) *LedgerService {
	return &LedgerService{repo: repo}
}

// round2 quantizes a monetary amount to two decimal places, half up.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CreateAccount validates the identifier and initial balance, then creates
// the account. The identifier format is checked before any store access.
func (s *LedgerService) CreateAccount(ctx context.Context, id string, initialBalance *decimal.Decimal) (*model.Account, error) {
	if err := common.ValidateAccountID(id); err != nil {
		return nil, ErrInvalidAccountID
	}

	initial := decimal.Zero
	if initialBalance != nil {
		initial = round2(*initialBalance)
	}
	if initial.IsNegative() {
		return nil, ErrNegativeBalance
	}

	account, err := s.repo.Create(ctx, id, initial)
	if err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"account_id":      account.ID,
		"initial_balance": account.Balance,
	}).Info("Account created")
	return account, nil
}

// GetBalance returns the current balance for an account.
func (s *LedgerService) GetBalance(ctx context.Context, id string) (*model.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// Deposit adds a positive amount to the account balance.
func (s *LedgerService) Deposit(ctx context.Context, id string, amount decimal.Decimal) (*model.Account, error) {
	amt := round2(amount)
	if !amt.IsPositive() {
		return nil, ErrInvalidAmount
	}

	account, err := s.repo.ApplyDelta(ctx, id, amt)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"account_id":  account.ID,
		"amount":      amt,
		"new_balance": account.Balance,
	}).Info("Deposit applied")
	return account, nil
}

// Withdraw removes a positive amount from the account balance. A withdrawal
// that would overdraw the account is rejected in full.
func (s *LedgerService) Withdraw(ctx context.Context, id string, amount decimal.Decimal) (*model.Account, error) {
	amt := round2(amount)
	if !amt.IsPositive() {
		return nil, ErrInvalidAmount
	}

	account, err := s.repo.ApplyDelta(ctx, id, amt.Neg())
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		if errors.Is(err, repository.ErrInsufficientFunds) {
			logger.Log.WithFields(logrus.Fields{
				"account_id": id,
				"amount":     amt,
			}).Info("Withdrawal rejected, insufficient funds")
			return nil, ErrInsufficientFunds
		}
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"account_id":  account.ID,
		"amount":      amt,
		"new_balance": account.Balance,
	}).Info("Withdrawal applied")
	return account, nil
}
