package db

import (
	"database/sql"
	"fmt"
	"go-ledger-api/logger"
)

// demo accounts inserted on first run
var seedAccounts = []struct {
	ID      string
	Balance string
}{
	{"12345", "10500.00"},
	{"777", "12015.00"},
	{"a111", "5040.00"},
	{"007", "47000.00"},
}

// SeedIfEmpty populates the accounts table with demo data when it has no
// rows. Idempotent, safe to call on every startup.
func SeedIfEmpty(database *sql.DB) error {
	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, acc := range seedAccounts {
		if _, err := database.Exec(`INSERT INTO accounts (id, balance) VALUES ($1, $2)`, acc.ID, acc.Balance); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", acc.ID, err)
		}
	}

	logger.Log.WithField("count", len(seedAccounts)).Info("Seeded demo accounts")
	return nil
}
