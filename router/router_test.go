// file: router/router_test.go

package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go-ledger-api/app"
	"go-ledger-api/logger"
	"go-ledger-api/repository"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type balanceResponse struct {
	ID      string      `json:"id"`
	Balance json.Number `json:"balance"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newTestApp wires the full HTTP stack over the in-memory store, which
// honors the same atomic-delta contract as the Postgres repository.
func newTestApp() *app.TestApp {
	return app.NewTestApp(repository.NewMemoryAccountRepository())
}

// doJSON sends a JSON request through the router and returns the recorder.
func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBalance(t *testing.T, rr *httptest.ResponseRecorder) balanceResponse {
	t.Helper()
	var resp balanceResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestAccountLifecycle(t *testing.T) {
	testApp := newTestApp()
	r := testApp.Router

	// Create alice with an initial balance of 100.00.
	rr := doJSON(t, r, "POST", "/accounts/alice", `{"initial_balance": 100.00}`)
	assert.Equal(t, http.StatusCreated, rr.Code)
	resp := decodeBalance(t, rr)
	assert.Equal(t, "alice", resp.ID)
	assert.Equal(t, json.Number("100.00"), resp.Balance)

	// Deposit 50.00 -> 150.00.
	rr = doJSON(t, r, "POST", "/accounts/alice/deposit", `{"amount": 50.00}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, json.Number("150.00"), decodeBalance(t, rr).Balance)

	// Withdraw 20.00 -> 130.00.
	rr = doJSON(t, r, "POST", "/accounts/alice/withdraw", `{"amount": 20.00}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, json.Number("130.00"), decodeBalance(t, rr).Balance)

	// Overdraw is rejected in full.
	rr = doJSON(t, r, "POST", "/accounts/alice/withdraw", `{"amount": 1000.00}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "INSUFFICIENT_FUNDS", decodeError(t, rr).Error.Code)

	// Balance unchanged after the failed withdrawal.
	rr = doJSON(t, r, "GET", "/accounts/alice/balance", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, json.Number("130.00"), decodeBalance(t, rr).Balance)
}

func TestGetBalance_UnknownAccount(t *testing.T) {
	testApp := newTestApp()

	rr := doJSON(t, testApp.Router, "GET", "/accounts/ghost/balance", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	resp := decodeError(t, rr)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "ghost")
}

func TestCreateAccount_Conflict(t *testing.T) {
	testApp := newTestApp()
	r := testApp.Router

	rr := doJSON(t, r, "POST", "/accounts/bob", `{"initial_balance": 42.00}`)
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, r, "POST", "/accounts/bob", `{"initial_balance": 1.00}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "CONFLICT", decodeError(t, rr).Error.Code)

	// The existing account keeps its original balance.
	rr = doJSON(t, r, "GET", "/accounts/bob/balance", "")
	assert.Equal(t, json.Number("42.00"), decodeBalance(t, rr).Balance)
}

func TestCreateAccount_Validation(t *testing.T) {
	testApp := newTestApp()
	r := testApp.Router

	t.Run("disallowed characters in id", func(t *testing.T) {
		rr := doJSON(t, r, "POST", "/accounts/bad%20id%21", `{}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rr).Error.Code)
	})

	t.Run("id exceeding maximum length", func(t *testing.T) {
		longID := strings.Repeat("a", 65)
		rr := doJSON(t, r, "POST", "/accounts/"+longID, `{}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rr).Error.Code)
	})

	t.Run("negative initial balance", func(t *testing.T) {
		rr := doJSON(t, r, "POST", "/accounts/carol", `{"initial_balance": -10.00}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "BAD_REQUEST", decodeError(t, rr).Error.Code)
	})

	t.Run("empty body defaults to zero balance", func(t *testing.T) {
		rr := doJSON(t, r, "POST", "/accounts/dave", "")
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, json.Number("0.00"), decodeBalance(t, rr).Balance)
	})
}

func TestDeposit_InvalidRequests(t *testing.T) {
	testApp := newTestApp()
	r := testApp.Router

	rr := doJSON(t, r, "POST", "/accounts/alice", `{"initial_balance": 10.00}`)
	assert.Equal(t, http.StatusCreated, rr.Code)

	t.Run("zero amount", func(t *testing.T) {
		rr := doJSON(t, r, "POST", "/accounts/alice/deposit", `{"amount": 0}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "BAD_REQUEST", decodeError(t, rr).Error.Code)
	})

	t.Run("negative amount", func(t *testing.T) {
		rr := doJSON(t, r, "POST", "/accounts/alice/deposit", `{"amount": -5.00}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "BAD_REQUEST", decodeError(t, rr).Error.Code)
	})

	t.Run("missing amount", func(t *testing.T) {
		rr := doJSON(t, r, "POST", "/accounts/alice/deposit", `{}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rr).Error.Code)
	})

	t.Run("non-numeric amount", func(t *testing.T) {
		rr := doJSON(t, r, "POST", "/accounts/alice/deposit", `{"amount": "lots"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rr).Error.Code)
	})

	t.Run("deposit to unknown account", func(t *testing.T) {
		rr := doJSON(t, r, "POST", "/accounts/ghost/deposit", `{"amount": 5.00}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, rr).Error.Code)
	})
}

func TestUnsupportedMediaType(t *testing.T) {
	testApp := newTestApp()

	req := httptest.NewRequest("POST", "/accounts/alice/deposit", strings.NewReader(`{"amount": 5.00}`))
	req.Header.Set("Content-Type", "text/plain")
	rr := httptest.NewRecorder()
	testApp.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", decodeError(t, rr).Error.Code)
}

func TestHealthAndRoot(t *testing.T) {
	testApp := newTestApp()

	rr := doJSON(t, testApp.Router, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = doJSON(t, testApp.Router, "GET", "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

// Fifty concurrent deposits of 1.00 through the full HTTP stack must end at
// exactly 50.00.
func TestConcurrentDeposits_Stress(t *testing.T) {
	testApp := newTestApp()
	ts := httptest.NewServer(testApp.Router)
	defer ts.Close()
	client := ts.Client()

	resp, err := client.Post(ts.URL+"/accounts/stress1", "application/json",
		bytes.NewReader([]byte(`{"initial_balance": 0}`)))
	assert.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Post(ts.URL+"/accounts/stress1/deposit", "application/json",
				bytes.NewReader([]byte(`{"amount": 1.00}`)))
			if assert.NoError(t, err) {
				resp.Body.Close()
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			}
		}()
	}
	wg.Wait()

	resp, err = client.Get(fmt.Sprintf("%s/accounts/stress1/balance", ts.URL))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var balance balanceResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&balance))
	assert.Equal(t, json.Number("50.00"), balance.Balance)
}
