// Package osinterr defines the failure conditions a run reports to the
// operator instead of crashing on.
package osinterr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrLocationNotFound is returned when a postcode cannot be geocoded.
var ErrLocationNotFound = errors.New("location not found")

// LocationNotFound wraps ErrLocationNotFound with the postcode that failed.
func LocationNotFound(postcode string) error {
	return fmt.Errorf("could not find location for postcode: %s: %w", postcode, ErrLocationNotFound)
}

// ServiceError reports an unexpected HTTP status from an OSINT service.
type ServiceError struct {
	Service    string
	StatusCode int
	// RetryAfter carries the Retry-After header of a 429 response, if any.
	RetryAfter string
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("error fetching results from %s: unexpected status %d", e.Service, e.StatusCode)
	if e.RateLimited() {
		msg += " (rate limited"
		if e.RetryAfter != "" {
			msg += ", retry after " + e.RetryAfter + "s"
		}
		msg += ")"
	}
	return msg
}

// RateLimited reports whether the service rejected the call with 429.
func (e *ServiceError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// NewServiceError builds a ServiceError from a response.
func NewServiceError(service string, resp *http.Response) *ServiceError {
	se := &ServiceError{Service: service, StatusCode: resp.StatusCode}
	if se.RateLimited() {
		se.RetryAfter = resp.Header.Get("Retry-After")
	}
	return se
}

// IsServiceError returns true if err (or any error in its chain) is a ServiceError.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}

// IsHandled returns true for failures that end a run with a printed message
// rather than a non-zero exit.
func IsHandled(err error) bool {
	return errors.Is(err, ErrLocationNotFound) || IsServiceError(err)
}
