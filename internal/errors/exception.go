package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsClientError reports whether err carries a status below 500, meaning its
// message is safe to show to the caller.
func IsClientError(err error) bool {
	var appErr *Exception
	return errors.As(err, &appErr) && appErr.StatusCode < http.StatusInternalServerError
}
