package notify

import (
	"context"
	"log/slog"
)

// Notifier delivers watch-list alerts to a user.
type Notifier interface {
	Alert(ctx context.Context, user, message string) error
}

// LogNotifier writes alerts to the structured log. It is the fallback when
// no delivery channel is configured.
type LogNotifier struct{}

// Alert implements Notifier.
func (LogNotifier) Alert(_ context.Context, user, message string) error {
	slog.Info("watch alert", "user", user, "message", message)
	return nil
}
