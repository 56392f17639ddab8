package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Record-store errors
var (
	ErrUpstreamStore    = errors.New("record store request failed")
	ErrStoreUnreachable = errors.New("record store unreachable")
)

// NewUpstreamError wraps a rejection returned by the hosted record store.
// storeType and storeMessage come from the store's error body when available.
func NewUpstreamError(operation, table string, storeType, storeMessage string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s in %s", operation, table)
	if storeMessage != "" {
		details = fmt.Sprintf("%s: %s", details, storeMessage)
	}
	if storeType != "" {
		details = fmt.Sprintf("%s (%s)", details, storeType)
	}
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUpstreamStore,
		Details:    details,
		Cause:      cause,
	}
}

// NewStoreUnreachableError covers transport failures before any store response.
func NewStoreUnreachableError(operation, table string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrStoreUnreachable,
		Details:    fmt.Sprintf("Could not reach record store to %s in %s", operation, table),
		Cause:      cause,
	}
}

func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstreamStore) || errors.Is(err, ErrStoreUnreachable)
}
