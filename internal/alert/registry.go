// Package alert fans low-stock notifications out to registered listeners.
// Delivery is best-effort: listener failures are swallowed and nothing is
// retried or deduplicated.
package alert

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Listener receives a formatted alert message.
type Listener func(message string)

type subscription struct {
	id       string
	listener Listener
}

// Registry maps subscription ids to listeners and notifies them
// synchronously in registration order.
type Registry struct {
	mu   sync.Mutex
	subs []subscription
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a listener and returns its subscription id.
func (r *Registry) Register(l Listener) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.subs = append(r.subs, subscription{id: id, listener: l})
	return id
}

// Unregister removes a listener by subscription id. Unknown ids are ignored.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return
		}
	}
}

// Notify delivers the message to every listener in registration order.
// A panicking listener does not stop delivery to the rest.
func (r *Registry) Notify(message string) {
	r.mu.Lock()
	subs := make([]subscription, len(r.subs))
	copy(subs, r.subs)
	r.mu.Unlock()

	for _, s := range subs {
		deliver(s, message)
	}
}

func deliver(s subscription, message string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("alert listener %s panicked: %v", s.id, rec)
		}
	}()
	s.listener(message)
}
