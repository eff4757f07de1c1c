package common

import (
	"encoding/json"
	"go-ledger-api/logger"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Machine-readable error codes carried in every error response body.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeBadRequest        = "BAD_REQUEST"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeInternal          = "INTERNAL"
	CodeUnsupportedMedia  = "UNSUPPORTED_MEDIA_TYPE"
)

type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Send writes the error response in the uniform envelope
// {"error": {"code": ..., "message": ...}}. Internal causes are logged but
// never leak into the response body.
func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Status,
			"error_code":     e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Status)
	json.NewEncoder(w).Encode(map[string]*AppError{"error": e})
}
