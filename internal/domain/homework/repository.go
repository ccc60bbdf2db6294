// internal/domain/homework/repository.go
package homework

import (
	"context"
	"time"
)

// Notification is one delivered status message.
// Corresponds to the 'homework_notifications' table.
type Notification struct {
	ID           int64
	HomeworkName string
	Status       Status
	Message      string
	SentAt       time.Time
}

// Journal keeps an audit trail of delivered notifications.
// It is write-only: nothing is restored from it on startup.
type Journal interface {
	Record(ctx context.Context, n *Notification) error
}
