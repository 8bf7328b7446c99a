package interfaces

import "context"

// Notifier sends human-facing notifications about check failures.
type Notifier interface {
	Notify(ctx context.Context, msg string) error
}
