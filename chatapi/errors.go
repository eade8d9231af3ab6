package chatapi

import (
	"errors"
	"fmt"
)

// StatusError is a non-2xx API response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat API request failed: %s %s: status=%d body=%q", e.Method, e.Path, e.StatusCode, e.Body)
}

func isStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
