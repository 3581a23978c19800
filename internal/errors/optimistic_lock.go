package errors

import "net/http"

// ErrOptimisticLock is returned when a todo changed between read and write
// more often than the caller was willing to retry.
var ErrOptimisticLock = &Exception{
	Message:    "todo was modified concurrently, try again",
	StatusCode: http.StatusConflict,
}
