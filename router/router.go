package router

import (
	"go-ledger-api/handler"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(accountHandler *handler.AccountHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handler.Root)
	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	mux.Handle("POST /accounts/{id}", handler.ErrorHandlingMiddleware(accountHandler.CreateAccount))
	mux.Handle("GET /accounts/{id}/balance", handler.ErrorHandlingMiddleware(accountHandler.GetBalance))
	mux.Handle("POST /accounts/{id}/deposit", handler.ErrorHandlingMiddleware(accountHandler.Deposit))
	mux.Handle("POST /accounts/{id}/withdraw", handler.ErrorHandlingMiddleware(accountHandler.Withdraw))

	return handler.EnforceJSONMiddleware(mux)
}
