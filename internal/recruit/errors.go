package recruit

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when the API answers with a non-success status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s: bad status %d %s: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
	}
	return fmt.Sprintf("%s %s: bad status %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// NotFound reports whether the API answered 404.
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// AppError carries the error field of an otherwise successful payload.
type AppError struct {
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("api reported an error: %s", e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.NotFound()
}
