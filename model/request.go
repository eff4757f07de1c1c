// file: model/request.go

package model

import "github.com/shopspring/decimal"

// AmountRequest is the payload for deposit and withdraw operations. The
// amount is a pointer so that a missing field can be told apart from an
// explicit zero and rejected at the validation layer.
type AmountRequest struct {
	Amount *decimal.Decimal `json:"amount" validate:"required"`
}

// CreateAccountRequest is the payload for account creation. The initial
// balance is optional and defaults to zero.
type CreateAccountRequest struct {
	InitialBalance *decimal.Decimal `json:"initial_balance"`
}
