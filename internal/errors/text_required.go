package errors

import "net/http"

var ErrTextRequired = &Exception{
	Message:    "Text field is required",
	StatusCode: http.StatusBadRequest,
}
