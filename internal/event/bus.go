package event

import (
	"runtime/debug"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Iron-Ham/scrolldash/internal/logging"
)

// Handler receives published events.
type Handler func(Event)

// AnyType subscribes a handler to every event type.
const AnyType = "*"

type subscription struct {
	id      string
	topic   string
	handler Handler
}

// Bus delivers events to subscribers on the publishing goroutine.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	seq    atomic.Uint64
	logger *logging.Logger
}

// NewBus returns an empty bus. Panics raised by handlers are logged to
// logger, which may be nil.
func NewBus(logger *logging.Logger) *Bus {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Bus{logger: logger.WithComponent("event")}
}

// Subscribe registers handler for events of type topic and returns an id
// for Unsubscribe.
func (b *Bus) Subscribe(topic string, handler Handler) string {
	id := "sub-" + strconv.FormatUint(b.seq.Add(1), 10)

	b.mu.Lock()
	b.subs = append(b.subs, subscription{id: id, topic: topic, handler: handler})
	b.mu.Unlock()
	return id
}

// SubscribeAll registers handler for every event.
func (b *Bus) SubscribeAll(handler Handler) string {
	return b.Subscribe(AnyType, handler)
}

// Unsubscribe removes a subscription and reports whether it existed.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.IndexFunc(b.subs, func(s subscription) bool { return s.id == id })
	if i < 0 {
		return false
	}
	b.subs = slices.Delete(b.subs, i, i+1)
	return true
}

// Publish hands e to the handlers of its type, then to AnyType handlers,
// each group in subscription order. Handlers may subscribe or unsubscribe
// while running; the change applies from the next Publish.
func (b *Bus) Publish(e Event) {
	topic := e.EventType()

	b.mu.RLock()
	targets := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.topic == topic {
			targets = append(targets, s.handler)
		}
	}
	for _, s := range b.subs {
		if s.topic == AnyType && topic != AnyType {
			targets = append(targets, s.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range targets {
		b.deliver(h, e)
	}
}

func (b *Bus) deliver(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				"event", e.EventType(),
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()
	h(e)
}

// Clear drops every subscription.
func (b *Bus) Clear() {
	b.mu.Lock()
	b.subs = nil
	b.mu.Unlock()
}

// SubscriptionCount returns the number of live subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// LogAll subscribes logger to every event at debug level.
func (b *Bus) LogAll(logger *logging.Logger) string {
	return b.SubscribeAll(func(e Event) {
		args := []any{"event", e.EventType()}
		switch ev := e.(type) {
		case PanelStateEvent:
			args = append(args, "panel", ev.Panel, "from", ev.From, "to", ev.To, "offset", ev.Offset)
		case PanelSpeedEvent:
			args = append(args, "panel", ev.Panel, "speed", ev.Speed)
		case SheetLoadedEvent:
			args = append(args, "path", ev.Path, "records", ev.Records)
		case SheetFailedEvent:
			args = append(args, "path", ev.Path, "error", ev.Err)
		}
		logger.Debug("event", args...)
	})
}
