package paginator

import (
	"time"

	"github.com/google/uuid"

	"github.com/O-tero/pagination-engine/pkg/logging"
)

// EventType identifies the navigation action that produced an Event.
type EventType string

const (
	EventNavigate EventType = "navigate"
	EventNext     EventType = "next"
	EventPrevious EventType = "previous"
	EventFirst    EventType = "first"
	EventLast     EventType = "last"
	EventJump     EventType = "jump"
	EventRefresh  EventType = "refresh"
	EventBack     EventType = "back"
	EventForward  EventType = "forward"
)

// Event describes a completed page change. Listeners receive one event per
// successful navigation; failed navigations emit nothing.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	At         time.Time `json:"at"`
}

// Listener is a callback invoked after each successful navigation.
// Listeners run synchronously in registration order; a panicking listener
// is logged and skipped without affecting the others.
type Listener func(Event)

type registration struct {
	id string
	fn Listener
}

// listenerSet holds registered listeners in registration order. Not safe
// for concurrent use; the owning Paginator serializes access.
type listenerSet struct {
	regs []registration
	log  *logging.Logger
}

func newListenerSet(log *logging.Logger) *listenerSet {
	return &listenerSet{log: log}
}

func (ls *listenerSet) add(fn Listener) string {
	id := uuid.NewString()
	ls.regs = append(ls.regs, registration{id: id, fn: fn})
	return id
}

func (ls *listenerSet) remove(id string) bool {
	for i, reg := range ls.regs {
		if reg.id == id {
			ls.regs = append(ls.regs[:i], ls.regs[i+1:]...)
			return true
		}
	}
	return false
}

// snapshot copies the registrations so dispatch can run without a lock.
func (ls *listenerSet) snapshot() []registration {
	out := make([]registration, len(ls.regs))
	copy(out, ls.regs)
	return out
}

func (ls *listenerSet) dispatch(regs []registration, ev Event) {
	for _, reg := range regs {
		ls.notify(reg, ev)
	}
}

func (ls *listenerSet) notify(reg registration, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			ls.log.Warn("listener panicked", logging.Fields{
				"listener": reg.id,
				"event":    string(ev.Type),
				"panic":    r,
			})
		}
	}()
	reg.fn(ev)
}
