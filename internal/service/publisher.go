package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/work-nest/backoffice/internal/events"
)

// publishAsync dispatches an event in the background. Notification side
// effects are fire-and-forget relative to the HTTP response: the durable
// state is already committed and handlers absorb their own failures.
func publishAsync(dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = dispatcher.Publish(ctx, event)
	}()
}
