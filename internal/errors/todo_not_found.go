package errors

import "net/http"

var ErrTodoNotFound = &Exception{
	Message:    "Todo not found",
	StatusCode: http.StatusNotFound,
}
