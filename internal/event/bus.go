// Package event carries change notifications between the state components.
// Identity and store-selection publish; the cart engine subscribes and
// resyncs. Delivery is synchronous and in subscription order, so one change
// produces exactly one resync before Publish returns.
package event

import "sync"

type Topic string

const (
	// TopicSession fires on login, signup, logout, and profile upsert.
	TopicSession Topic = "session.changed"
	// TopicStore fires on store selection and clearing.
	TopicStore Topic = "store.changed"
)

// Notification is the payload fanned out to listeners.
type Notification struct {
	Topic Topic
}

// Listener receives notifications for one subscribed topic.
type Listener func(Notification)

type subscription struct {
	id int
	fn Listener
}

// Bus is a process-local publish/subscribe wire.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Topic][]subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers fn for topic and returns a cancel func. Cancel is
// idempotent.
func (b *Bus) Subscribe(topic Topic, fn Listener) func() {
	if fn == nil {
		return func() {}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[topic]
		for i, sub := range list {
			if sub.id == id {
				b.subs[topic] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers n to every listener of n.Topic before returning. The
// subscriber list is snapshotted under the lock; listeners run outside it so
// they may publish or subscribe themselves.
func (b *Bus) Publish(n Notification) {
	b.mu.Lock()
	listeners := make([]Listener, 0, len(b.subs[n.Topic]))
	for _, sub := range b.subs[n.Topic] {
		listeners = append(listeners, sub.fn)
	}
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(n)
	}
}
