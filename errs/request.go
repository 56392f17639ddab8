package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Authentication & authorization errors
var (
	ErrMissingToken     = errors.New("missing access token")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrInsufficientRole = errors.New("insufficient role")
)

// Request & input-validation errors
var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrValidation       = errors.New("validation error")
	ErrMissingRecordID  = errors.New("an ID is required")
	ErrMissingReference = errors.New("referenced record does not exist")
)

func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMissingToken,
		Details:    "Missing authentication token",
		Field:      "authorization",
	}
}

func NewInvalidTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrInvalidToken,
		Details:    "Invalid or expired token",
		Field:      "authorization",
	}
}

func NewAdminRequiredError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrInsufficientRole,
		Details:    "Access denied. Administrator rights required",
		Field:      "authorization",
	}
}

func NewMalformedPayloadError(payloadType string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMalformedPayload,
		Details:    fmt.Sprintf("Malformed %s payload", payloadType),
		Cause:      cause,
		Field:      "payload",
	}
}

// NewValidationError carries the per-field failures produced by schema validation.
func NewValidationError(fields []FieldError) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrValidation,
		Fields:     fields,
	}
}

// NewMissingRecordIDError signals a mutating request that omitted the record id.
func NewMissingRecordIDError(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMissingRecordID,
		Details:    fmt.Sprintf("An ID is required to modify the %s", entity),
		Field:      "id",
	}
}

// NewMissingReferenceError reports which referenced ids do not exist in table.
func NewMissingReferenceError(table string, missingIDs []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMissingReference,
		Details:    fmt.Sprintf("The following IDs do not exist in %s: %s", table, strings.Join(missingIDs, ", ")),
		Field:      "id",
	}
}

func IsInvalidTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsMissingReferenceError(err error) bool {
	return errors.Is(err, ErrMissingReference)
}
