// cmd/main.go
package main

import (
	"go-ledger-api/app"
)

// @title           Ledger API
// @version         1.0
// @description     Minimal account-ledger service: balance lookup, deposits and withdrawals.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
