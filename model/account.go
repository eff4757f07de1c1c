package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Account is a single ledger row: an externally supplied identifier and its
// current balance. Balances are exact decimals, never floats.
type Account struct {
	ID      string
	Balance decimal.Decimal
}

// MarshalJSON renders the balance as a plain JSON number with two decimal
// places, e.g. {"id":"alice","balance":130.00}.
func (a Account) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID      string      `json:"id"`
		Balance json.Number `json:"balance"`
	}{
		ID:      a.ID,
		Balance: json.Number(a.Balance.StringFixed(2)),
	})
}
