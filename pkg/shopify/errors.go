package shopify

import (
	"errors"
	"fmt"
)

// ErrRetryExhausted is returned when all rate-limit retry attempts are used up.
var ErrRetryExhausted = errors.New("retry attempts exhausted")

// StatusError represents a non-success response from the admin API.
// These are not retried: the page is dropped and the run continues.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("shopify API error (status %d): %s", e.StatusCode, e.Body)
}
