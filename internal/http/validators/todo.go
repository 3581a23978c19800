package validators

import (
	"strings"

	dto "todo-digest.com/todo-digest/internal/data_models"
	apperrors "todo-digest.com/todo-digest/internal/errors"
)

func ValidateTodoRequest(r *dto.TodoRequestData) error {
	if strings.TrimSpace(r.Text) == "" {
		return apperrors.ErrTextRequired
	}
	return nil
}
