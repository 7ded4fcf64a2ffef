package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishRunsAllHandlersDespiteError(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	dispatcher := NewInMemoryDispatcher(zap.New(core))

	var calls []string
	dispatcher.Subscribe(EventContactMessageReceived, func(context.Context, Event) error {
		calls = append(calls, "failing")
		return errors.New("smtp down")
	})
	dispatcher.Subscribe(EventContactMessageReceived, func(context.Context, Event) error {
		calls = append(calls, "second")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{
		ID:        "evt-1",
		Type:      EventContactMessageReceived,
		Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(calls) != 2 || calls[0] != "failing" || calls[1] != "second" {
		t.Fatalf("calls = %v, want both handlers in order", calls)
	}

	entries := logs.FilterMessage("event handler failed").All()
	if len(entries) != 1 {
		t.Fatalf("warn entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["event_id"] != "evt-1" {
		t.Errorf("event_id = %v", fields["event_id"])
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(nil)
	if err := dispatcher.Publish(context.Background(), Event{Type: EventSessionsReaped}); err != nil {
		t.Fatalf("publish: %v", err)
	}
}
