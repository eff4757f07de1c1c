package common

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Account identifiers are 1-64 characters: letters, digits, underscore, hyphen.
var accountIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func init() {
	validate.RegisterValidation("account_id", func(fl validator.FieldLevel) bool {
		return accountIDPattern.MatchString(fl.Field().String())
	})
}

// ValidateAccountID checks the identifier format. It must be called before
// any store access so malformed ids never reach the database.
func ValidateAccountID(id string) error {
	return validate.Var(id, "required,account_id")
}

// ValidateAndDecode parses the JSON request body into payload and runs the
// struct validation rules. An empty body is allowed and leaves the payload
// zero-valued, so optional-body endpoints still pass through validation.
func ValidateAndDecode(r *http.Request, payload interface{}) *AppError {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil && !errors.Is(err, io.EOF) {
		return NewAppError(http.StatusUnprocessableEntity, CodeValidation, "Invalid request body", err)
	}

	if err := validate.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewAppError(http.StatusUnprocessableEntity, CodeValidation, validationErrors.Error(), nil)
		}
		return NewAppError(http.StatusUnprocessableEntity, CodeValidation, "Invalid request body", err)
	}

	return nil
}
