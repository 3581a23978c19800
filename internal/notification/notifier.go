package notification

import "context"

// Notifier delivers a message to a chat channel.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
