package ecs

// ActionEvent targets an entity with an action value.
type ActionEvent[T comparable] struct {
	Entity Entity
	Action T
}

type eventRecord[T any] struct {
	id    uint64
	value T
}

// Events is a double-buffered event store. Every sent event stays readable for
// two Swap calls, so an event sent late in tick N is still seen by readers that
// run early in tick N+1. Each EventReader keeps its own cursor.
type Events[T any] struct {
	older  []eventRecord[T]
	newer  []eventRecord[T]
	nextID uint64
}

// NewEvents creates an empty event store.
func NewEvents[T any]() *Events[T] {
	return &Events[T]{}
}

// Send appends an event.
func (q *Events[T]) Send(evt T) {
	if q == nil {
		return
	}
	q.newer = append(q.newer, eventRecord[T]{id: q.nextID, value: evt})
	q.nextID++
}

// Len returns the number of retained events.
func (q *Events[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.older) + len(q.newer)
}

// Swap drops events older than one swap and starts a fresh buffer.
func (q *Events[T]) Swap() {
	if q == nil {
		return
	}
	recycled := q.older[:0]
	clear(q.older)
	q.older = q.newer
	q.newer = recycled
}

// Drain returns all retained events and clears the store without touching reader cursors.
func (q *Events[T]) Drain() []T {
	if q == nil || q.Len() == 0 {
		return nil
	}
	out := make([]T, 0, q.Len())
	for _, rec := range q.older {
		out = append(out, rec.value)
	}
	for _, rec := range q.newer {
		out = append(out, rec.value)
	}
	q.older = nil
	q.newer = nil
	return out
}

// NewReader returns a reader that will see every event still retained.
func (q *Events[T]) NewReader() *EventReader[T] {
	r := &EventReader[T]{events: q}
	if q != nil {
		switch {
		case len(q.older) > 0:
			r.next = q.older[0].id
		case len(q.newer) > 0:
			r.next = q.newer[0].id
		default:
			r.next = q.nextID
		}
	}
	return r
}

// EventReader iterates events it has not read yet.
type EventReader[T any] struct {
	events *Events[T]
	next   uint64
}

// Read returns unread events in send order and marks them read.
func (r *EventReader[T]) Read() []T {
	if r == nil || r.events == nil {
		return nil
	}
	var out []T
	for _, buf := range [2][]eventRecord[T]{r.events.older, r.events.newer} {
		for _, rec := range buf {
			if rec.id >= r.next {
				out = append(out, rec.value)
			}
		}
	}
	r.next = r.events.nextID
	return out
}

// Pending reports how many events Read would return.
func (r *EventReader[T]) Pending() int {
	if r == nil || r.events == nil {
		return 0
	}
	n := 0
	for _, buf := range [2][]eventRecord[T]{r.events.older, r.events.newer} {
		for _, rec := range buf {
			if rec.id >= r.next {
				n++
			}
		}
	}
	return n
}

type eventsSystem[T any] struct {
	events *Events[T]
}

func (s eventsSystem[T]) Update(*World) {
	s.events.Swap()
}

// EventsSystem returns a system that swaps q's buffers. Schedule it after the
// last reader of a tick.
func EventsSystem[T any](q *Events[T]) System {
	return eventsSystem[T]{events: q}
}
