package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"go-ledger-api/common"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/service"
	"net/http"

	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	service *service.LedgerService
}

func NewAccountHandler(service *service.LedgerService) *AccountHandler {
	return &AccountHandler{service: service}
}

// CreateAccount godoc
// @Summary      Create a new account
// @Description  Creates an account with the given identifier and an optional non-negative initial balance.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Account identifier (1-64 chars, letters/digits/_/- only)"
// @Param        body body model.CreateAccountRequest false "Optional initial balance"
// @Success      201  {object}  model.Account
// @Failure      400  {object}  common.AppError "Negative initial balance"
// @Failure      409  {object}  common.AppError "Account already exists"
// @Failure      415  {object}  common.AppError "Body is not JSON"
// @Failure      422  {object}  common.AppError "Malformed identifier or body"
// @Router       /accounts/{id} [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	id := r.PathValue("id")

	var req model.CreateAccountRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	logger.Log.WithField("account_id", id).Info("Create account request received")

	account, err := h.service.CreateAccount(r.Context(), id, req.InitialBalance)
	if err != nil {
		return mapServiceError(id, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(account)
	return nil
}

// GetBalance godoc
// @Summary      Get account balance
// @Description  Returns the current balance for the account.
// @Tags         accounts
// @Produce      json
// @Param        id path string true "Account identifier"
// @Success      200  {object}  model.Account
// @Failure      404  {object}  common.AppError "Account not found"
// @Router       /accounts/{id}/balance [get]
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) *common.AppError {
	id := r.PathValue("id")

	account, err := h.service.GetBalance(r.Context(), id)
	if err != nil {
		return mapServiceError(id, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(account)
	return nil
}

// Deposit godoc
// @Summary      Deposit into an account
// @Description  Adds a positive amount to the account balance.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Account identifier"
// @Param        body body model.AmountRequest true "Amount to deposit"
// @Success      200  {object}  model.Account
// @Failure      400  {object}  common.AppError "Amount is zero or negative"
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      415  {object}  common.AppError "Body is not JSON"
// @Failure      422  {object}  common.AppError "Malformed body or amount"
// @Router       /accounts/{id}/deposit [post]
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) *common.AppError {
	id := r.PathValue("id")

	var req model.AmountRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	logger.Log.WithFields(logrus.Fields{
		"account_id": id,
		"amount":     req.Amount,
	}).Info("Deposit request received")

	account, err := h.service.Deposit(r.Context(), id, *req.Amount)
	if err != nil {
		return mapServiceError(id, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(account)
	return nil
}

// Withdraw godoc
// @Summary      Withdraw from an account
// @Description  Removes a positive amount from the account balance. Overdraws are rejected in full.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Account identifier"
// @Param        body body model.AmountRequest true "Amount to withdraw"
// @Success      200  {object}  model.Account
// @Failure      400  {object}  common.AppError "Amount is zero or negative"
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      409  {object}  common.AppError "Insufficient funds"
// @Failure      415  {object}  common.AppError "Body is not JSON"
// @Failure      422  {object}  common.AppError "Malformed body or amount"
// @Router       /accounts/{id}/withdraw [post]
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) *common.AppError {
	id := r.PathValue("id")

	var req model.AmountRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	logger.Log.WithFields(logrus.Fields{
		"account_id": id,
		"amount":     req.Amount,
	}).Info("Withdraw request received")

	account, err := h.service.Withdraw(r.Context(), id, *req.Amount)
	if err != nil {
		return mapServiceError(id, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(account)
	return nil
}

// mapServiceError translates ledger business errors into the HTTP error
// taxonomy. Anything unrecognized is an internal storage failure and must not
// leak details to the client.
func mapServiceError(id string, err error) *common.AppError {
	switch {
	case errors.Is(err, service.ErrInvalidAccountID):
		return common.NewAppError(http.StatusUnprocessableEntity, common.CodeValidation, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrNegativeBalance):
		return common.NewAppError(http.StatusBadRequest, common.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrAccountNotFound):
		return common.NewAppError(http.StatusNotFound, common.CodeNotFound, fmt.Sprintf("Account '%s' does not exist", id), nil)
	case errors.Is(err, service.ErrAccountExists):
		return common.NewAppError(http.StatusConflict, common.CodeConflict, fmt.Sprintf("Account '%s' already exists", id), nil)
	case errors.Is(err, service.ErrInsufficientFunds):
		return common.NewAppError(http.StatusConflict, common.CodeInsufficientFunds, err.Error(), nil)
	default:
		return common.NewAppError(http.StatusInternalServerError, common.CodeInternal, "Could not complete the operation", err)
	}
}
