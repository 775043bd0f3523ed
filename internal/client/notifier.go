package client

import "context"

// Notifier is the user-facing feedback channel of the contact clients.
type Notifier interface {
	Success(title, text string)
	Error(title, text string)
	// Confirm asks a yes/no question and reports whether the user accepted.
	Confirm(ctx context.Context, title, text string) (bool, error)
}
