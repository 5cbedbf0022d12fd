package hub

import (
	"sync"

	model "auction-engine/internal/models"
	"auction-engine/utils"
)

// Event is a single fan-out message: an accepted bid published under its
// room-scoped event name.
type Event struct {
	Name string    `json:"event"`
	Bid  model.Bid `json:"data"`
}

// Subscriber is one connected client's receive side. Events arrive on a
// buffered queue drained by the transport; Done signals shutdown.
type Subscriber struct {
	id     string
	events chan Event

	closeOnce sync.Once
	done      chan struct{}
}

// NewSubscriber creates a subscriber with a fresh identity.
func NewSubscriber() *Subscriber {
	return &Subscriber{
		id:     utils.GenerateID(),
		events: make(chan Event, subscriberBuffer),
		done:   make(chan struct{}),
	}
}

// ID returns the subscriber's identity, used for logging.
func (s *Subscriber) ID() string {
	return s.id
}

// Events is the queue the transport drains.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Done is closed when the subscriber is shut down.
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

// Close shuts the subscriber down. Safe to call more than once. The events
// channel is left open so a concurrent deliver can never panic; the
// transport stops draining once Done is closed.
func (s *Subscriber) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// deliver enqueues the event without blocking. It reports false when the
// subscriber is closed or its queue is full, in which case the hub drops the
// connection.
func (s *Subscriber) deliver(evt Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.events <- evt:
		return true
	default:
		return false
	}
}
