package events

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []domain.ChangeEvent
	err    error
}

func (s *recordingSink) Deliver(ctx context.Context, event domain.ChangeEvent) error {
	s.events = append(s.events, event)
	return s.err
}

func newTestHub() *Hub {
	return NewHub(slog.Default())
}

func TestHub_DeliversToMatchingSubscriber(t *testing.T) {
	hub := newTestHub()
	ch, cancel := hub.Subscribe("wp-1", nil)
	defer cancel()

	hub.Publish(context.Background(), domain.ChangeEvent{
		Table:       "bills",
		Action:      domain.ActionInsert,
		EntityID:    "bill-1",
		WorkplaceID: "wp-1",
	})

	select {
	case event := <-ch:
		assert.Equal(t, "bills", event.Table)
		assert.Equal(t, "bill-1", event.EntityID)
		assert.False(t, event.OccurredAt.IsZero())
	default:
		t.Fatal("expected an event on the channel")
	}
}

func TestHub_FiltersByWorkplace(t *testing.T) {
	hub := newTestHub()
	ch, cancel := hub.Subscribe("wp-1", nil)
	defer cancel()

	hub.Publish(context.Background(), domain.ChangeEvent{
		Table:       "bills",
		Action:      domain.ActionInsert,
		EntityID:    "bill-1",
		WorkplaceID: "wp-other",
	})

	assert.Empty(t, ch)
}

func TestHub_FiltersByTable(t *testing.T) {
	hub := newTestHub()
	ch, cancel := hub.Subscribe("wp-1", []string{"vehicles"})
	defer cancel()

	hub.Publish(context.Background(), domain.ChangeEvent{
		Table:       "bills",
		WorkplaceID: "wp-1",
	})
	hub.Publish(context.Background(), domain.ChangeEvent{
		Table:       "vehicles",
		EntityID:    "v-1",
		WorkplaceID: "wp-1",
	})

	require.Len(t, ch, 1)
	event := <-ch
	assert.Equal(t, "vehicles", event.Table)
}

func TestHub_CancelClosesChannel(t *testing.T) {
	hub := newTestHub()
	ch, cancel := hub.Subscribe("wp-1", nil)

	cancel()
	// Cancelling twice is safe.
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic on the closed channel.
	hub.Publish(context.Background(), domain.ChangeEvent{Table: "bills", WorkplaceID: "wp-1"})
}

func TestHub_SlowSubscriberDropsEvents(t *testing.T) {
	hub := newTestHub()
	ch, cancel := hub.Subscribe("wp-1", nil)
	defer cancel()

	for i := 0; i < subscriberBuffer+10; i++ {
		hub.Publish(context.Background(), domain.ChangeEvent{
			Table:       "bills",
			WorkplaceID: "wp-1",
		})
	}

	// The buffer fills and the overflow is dropped, never blocking Publish.
	assert.Len(t, ch, subscriberBuffer)
}

func TestHub_SinksReceiveAllEvents(t *testing.T) {
	hub := newTestHub()
	sink := &recordingSink{}
	hub.AddSink(sink)

	hub.Publish(context.Background(), domain.ChangeEvent{Table: "bills", WorkplaceID: "wp-1"})
	hub.Publish(context.Background(), domain.ChangeEvent{Table: "vehicles", WorkplaceID: "wp-2"})

	require.Len(t, sink.events, 2)
	assert.Equal(t, "bills", sink.events[0].Table)
	assert.Equal(t, "vehicles", sink.events[1].Table)
}

func TestHub_SinkFailureDoesNotStopDelivery(t *testing.T) {
	hub := newTestHub()
	failing := &recordingSink{err: errors.New("broker down")}
	healthy := &recordingSink{}
	hub.AddSink(failing)
	hub.AddSink(healthy)

	ch, cancel := hub.Subscribe("wp-1", nil)
	defer cancel()

	hub.Publish(context.Background(), domain.ChangeEvent{Table: "bills", WorkplaceID: "wp-1"})

	assert.Len(t, healthy.events, 1)
	assert.Len(t, ch, 1)
}
