package errors

import "fmt"

// SummaryGenerationError is fatal to the summary operation.
type SummaryGenerationError struct {
	Err error
}

func (e *SummaryGenerationError) Error() string {
	return fmt.Sprintf("summary generation failed: %v", e.Err)
}

func (e *SummaryGenerationError) Unwrap() error {
	return e.Err
}

// NotificationError records a failed summary broadcast. It is logged and
// attached to the summary outcome, never returned to callers.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("summary notification failed: %v", e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
