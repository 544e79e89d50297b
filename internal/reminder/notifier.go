package reminder

import (
	"context"

	"github.com/Venkata-Manoj/Habit-Zen-Web/internal"
)

// Notifier delivers a reminder to the user. The platform behind it decides
// display and delivery; no acknowledgment ever comes back.
type Notifier interface {
	// RequestPermission is probed lazily before the first emission. A
	// denial is internal.ErrPermissionDenied and is never escalated.
	RequestPermission(ctx context.Context) error
	Notify(ctx context.Context, title, body string) error
}

// LogNotifier writes reminders to the process log. Permission is always
// granted. Development default.
type LogNotifier struct {
	logger internal.Logger
}

func NewLogNotifier(logger internal.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) RequestPermission(ctx context.Context) error {
	return nil
}

func (n *LogNotifier) Notify(ctx context.Context, title, body string) error {
	n.logger.Infof("notification: %s - %s", title, body)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
