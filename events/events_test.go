package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestEventDeliveryIntegration tests the complete event flow from TransactionalBus to main Bus
func TestEventDeliveryIntegration(t *testing.T) {
	// Create main event bus
	mainBus := NewBus()

	// Create transactional bus that wraps the main bus
	transactionalBus := NewTransactionalBus(mainBus)

	// Set up a channel to capture received events
	eventReceived := make(chan RequestSubmittedEvent, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	// Subscribe to request submission events on the main bus
	mainBus.Subscribe(EventTypeRequestSubmitted, func(ctx context.Context, event Event) {
		defer wg.Done()
		if submittedEvent, ok := event.(RequestSubmittedEvent); ok {
			select {
			case eventReceived <- submittedEvent:
			case <-time.After(1 * time.Second):
				t.Error("Timeout sending event to channel")
			}
		} else {
			t.Errorf("Expected RequestSubmittedEvent, got %T", event)
		}
	})

	// Create a test event
	testEvent := RequestSubmittedEvent{
		RequestID:   "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		GuildID:     789,
		RequesterID: 123456,
		GameName:    "Elden Ring",
	}

	// Publish event to transactional bus (simulating service layer)
	transactionalBus.Publish(testEvent)

	// Flush events (simulating successful transaction commit)
	transactionalBus.Flush(context.Background())

	// Wait for event to be processed
	wg.Wait()

	// Verify the event was received
	select {
	case receivedEvent := <-eventReceived:
		assert.Equal(t, testEvent.RequestID, receivedEvent.RequestID)
		assert.Equal(t, testEvent.GuildID, receivedEvent.GuildID)
		assert.Equal(t, testEvent.RequesterID, receivedEvent.RequesterID)
		assert.Equal(t, testEvent.GameName, receivedEvent.GameName)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

// TestMultipleEventsDelivery tests delivering multiple events in sequence
func TestMultipleEventsDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventsReceived := make(chan SettingsUpdatedEvent, 3)
	var wg sync.WaitGroup
	wg.Add(3)

	mainBus.Subscribe(EventTypeSettingsUpdated, func(ctx context.Context, event Event) {
		defer wg.Done()
		if settingsEvent, ok := event.(SettingsUpdatedEvent); ok {
			eventsReceived <- settingsEvent
		}
	})

	// Create and publish multiple test events
	events := []SettingsUpdatedEvent{
		{GuildID: 100, Field: "log_channel", ActorID: 1},
		{GuildID: 100, Field: "update_channel", ActorID: 2},
		{GuildID: 100, Field: "status_channel", ActorID: 3},
	}

	for _, event := range events {
		transactionalBus.Publish(event)
	}

	// Flush all events
	transactionalBus.Flush(context.Background())

	// Wait for all events to be processed
	wg.Wait()

	// Verify all events were received
	receivedEvents := make([]SettingsUpdatedEvent, 0, 3)
	for i := 0; i < 3; i++ {
		select {
		case event := <-eventsReceived:
			receivedEvents = append(receivedEvents, event)
		case <-time.After(2 * time.Second):
			t.Fatalf("Only received %d out of 3 events", len(receivedEvents))
		}
	}

	assert.Len(t, receivedEvents, 3)

	// Check that all original events were received (order may vary due to goroutines)
	fields := make(map[string]bool)
	for _, received := range receivedEvents {
		fields[received.Field] = true
	}

	assert.True(t, fields["log_channel"])
	assert.True(t, fields["update_channel"])
	assert.True(t, fields["status_channel"])
}

// TestTransactionalBusDiscard tests that discarded events are not delivered
func TestTransactionalBusDiscard(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan bool, 1)

	mainBus.Subscribe(EventTypeRequestResolved, func(ctx context.Context, event Event) {
		eventReceived <- true
	})

	// Publish event
	testEvent := RequestResolvedEvent{
		RequestID:  "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		GuildID:    789,
		ResolverID: 123456,
	}
	transactionalBus.Publish(testEvent)

	// Discard instead of flush (simulating transaction rollback)
	transactionalBus.Discard()

	// Verify no event was received
	select {
	case <-eventReceived:
		t.Fatal("Event was received despite being discarded")
	case <-time.After(100 * time.Millisecond):
		// Expected - no event should be received
	}
}

// TestHandlerPanicRecovery tests that a panicking handler does not take down
// other subscribers
func TestHandlerPanicRecovery(t *testing.T) {
	bus := NewBus()

	received := make(chan bool, 1)

	bus.Subscribe(EventTypeRequestResolved, func(ctx context.Context, event Event) {
		panic("handler failure")
	})
	bus.Subscribe(EventTypeRequestResolved, func(ctx context.Context, event Event) {
		received <- true
	})

	bus.Emit(context.Background(), RequestResolvedEvent{RequestID: "abc", GuildID: 1, ResolverID: 2})

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("Second handler was not invoked")
	}
}
