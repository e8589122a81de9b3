package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spec-kit/records-service/internal/events"
)

// EventPublisher delivers an encoded event to an external broker.
type EventPublisher interface {
	Publish(ctx context.Context, messageID, messageType string, body []byte) error
}

// StartEventRelay forwards every record change event to publisher as JSON.
func StartEventRelay(dispatcher events.Dispatcher, publisher EventPublisher) {
	if dispatcher == nil || publisher == nil {
		return
	}
	relay := func(ctx context.Context, event events.Event) error {
		body, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode event %s: %w", event.ID, err)
		}
		return publisher.Publish(ctx, event.ID, string(event.Type), body)
	}
	for _, eventType := range events.RecordEventTypes {
		dispatcher.Subscribe(eventType, relay)
	}
}
