package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bizdesk/bizdesk_backend/internal/core/domain"
)

// Sink receives every published change event. Sinks are for side channels
// (cache invalidation, broker mirroring); subscriber fanout is handled by the
// hub itself.
type Sink interface {
	Deliver(ctx context.Context, event domain.ChangeEvent) error
}

// Notifier is the publishing side of the change feed, implemented by Hub.
type Notifier interface {
	Publish(ctx context.Context, event domain.ChangeEvent)
}

const subscriberBuffer = 64

type subscriber struct {
	workplaceID string
	tables      map[string]struct{} // empty means all tables
	ch          chan domain.ChangeEvent
}

// Hub fans row-level change events out to in-process subscribers (the SSE
// stream) and to registered sinks. Publishing never blocks: a subscriber that
// cannot keep up loses events, which is acceptable because consumers treat
// events as re-fetch triggers, not as a delta feed.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]*subscriber
	nextID int
	sinks  []Sink
	logger *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[int]*subscriber),
		logger: logger,
	}
}

var _ Notifier = (*Hub)(nil)

// AddSink registers a sink. Not safe to call after publishing starts.
func (h *Hub) AddSink(s Sink) {
	h.sinks = append(h.sinks, s)
}

// Subscribe registers a subscriber for change events scoped to a workplace and,
// optionally, a set of tables. The returned cancel func must be called to
// release the subscription.
func (h *Hub) Subscribe(workplaceID string, tables []string) (<-chan domain.ChangeEvent, func()) {
	sub := &subscriber{
		workplaceID: workplaceID,
		tables:      make(map[string]struct{}, len(tables)),
		ch:          make(chan domain.ChangeEvent, subscriberBuffer),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = sub
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if s, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(s.ch)
		}
		h.mu.Unlock()
	}
	return sub.ch, cancel
}

// Publish delivers the event to all matching subscribers and all sinks.
func (h *Hub) Publish(ctx context.Context, event domain.ChangeEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	h.mu.RLock()
	for _, sub := range h.subs {
		if sub.workplaceID != "" && sub.workplaceID != event.WorkplaceID {
			continue
		}
		if len(sub.tables) > 0 {
			if _, ok := sub.tables[event.Table]; !ok {
				continue
			}
		}
		select {
		case sub.ch <- event:
		default:
			// Slow subscriber; drop rather than block the mutation path.
		}
	}
	h.mu.RUnlock()

	for _, sink := range h.sinks {
		if err := sink.Deliver(ctx, event); err != nil {
			h.logger.Warn("change event sink delivery failed",
				slog.String("table", event.Table),
				slog.String("entity_id", event.EntityID),
				slog.String("error", err.Error()))
		}
	}
}
