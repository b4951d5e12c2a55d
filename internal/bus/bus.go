// Package bus provides the in-process read-invalidation signal. The
// persistence layer publishes an entity kind after every successful
// mutation; readers subscribe and re-query on delivery. The bus carries
// no row data.
package bus

import "sync"

// Entity kinds published on the bus.
const (
	KindTasks    = "tasks"
	KindSubtasks = "subtasks"
	KindPrefs    = "prefs"
)

const defaultBufferSize = 16

// Notifier is the write-side view of the bus. Use-cases and the
// restore engine depend on it rather than on the concrete Bus.
type Notifier interface {
	Invalidate(kind string)
}

// Subscription is one reader's registration for a single entity kind.
type Subscription struct {
	id   int
	kind string
	ch   chan string
}

// Ch returns the channel invalidation kinds are delivered on.
func (s *Subscription) Ch() <-chan string {
	return s.ch
}

// Bus is a small in-process pub/sub for invalidation signals.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]*Subscription
	nextID int
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[int]*Subscription)}
}

// Subscribe registers for invalidations of one entity kind. An empty
// kind receives every invalidation. The channel is buffered; a slow
// consumer misses signals rather than blocking writers.
func (b *Bus) Subscribe(kind string) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	sub := &Subscription{
		id:   b.nextID,
		kind: kind,
		ch:   make(chan string, defaultBufferSize),
	}
	b.subs[sub.id] = sub
	return sub
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub.id]; !ok {
		return
	}
	delete(b.subs, sub.id)
	close(sub.ch)
}

// Invalidate notifies subscribers that rows of the given kind may have
// changed. Non-blocking; delivery to a full subscriber is dropped.
func (b *Bus) Invalidate(kind string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if sub.kind != "" && sub.kind != kind {
			continue
		}
		select {
		case sub.ch <- kind:
		default:
		}
	}
}
