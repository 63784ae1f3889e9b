package system

import (
	"log"

	"github.com/milk9111/actionanim/ecs"
	"github.com/milk9111/actionanim/ecs/component"
)

// CatalogProvider resolves catalog handles. ok is false while the asset is not loaded.
type CatalogProvider[T comparable] interface {
	Catalog(name string) (*component.Catalog[T], bool)
}

// ClipProvider resolves clip table handles. ok is false while the asset is not loaded.
type ClipProvider interface {
	Clips(name string) (*component.ClipTable, bool)
}

// OverflowPolicy decides what happens when an expansion does not fit a capped queue.
type OverflowPolicy int

const (
	// OverflowDropNewest appends until the queue is full and discards the rest.
	OverflowDropNewest OverflowPolicy = iota
	// OverflowDropOldest appends everything and evicts steps from the front.
	OverflowDropOldest
	// OverflowReject discards the whole expansion.
	OverflowReject
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowDropNewest:
		return "drop_newest"
	case OverflowDropOldest:
		return "drop_oldest"
	case OverflowReject:
		return "reject"
	default:
		return "unknown"
	}
}

// QueueLimits caps per-entity queue depth. MaxDepth <= 0 means unbounded.
type QueueLimits struct {
	MaxDepth int
	Overflow OverflowPolicy
}

// AnimationQueueSystem turns action events into queued steps.
type AnimationQueueSystem[T comparable] struct {
	components component.AnimationComponents[T]
	catalogs   CatalogProvider[T]
	reader     *ecs.EventReader[ecs.ActionEvent[T]]
	rng        RandomSource
	limits     QueueLimits
}

func NewAnimationQueueSystem[T comparable](
	components component.AnimationComponents[T],
	catalogs CatalogProvider[T],
	events *ecs.Events[ecs.ActionEvent[T]],
	rng RandomSource,
	limits QueueLimits,
) *AnimationQueueSystem[T] {
	if rng == nil {
		rng = NewRandomSource(0)
	}
	return &AnimationQueueSystem[T]{
		components: components,
		catalogs:   catalogs,
		reader:     events.NewReader(),
		rng:        rng,
		limits:     limits,
	}
}

func (s *AnimationQueueSystem[T]) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range s.reader.Read() {
		s.enqueue(w, evt)
	}
}

func (s *AnimationQueueSystem[T]) enqueue(w *ecs.World, evt ecs.ActionEvent[T]) {
	queue, ok := ecs.Get(w, evt.Entity, s.components.Queue.Kind())
	if !ok {
		return
	}
	assets, ok := ecs.Get(w, evt.Entity, component.AnimationAssetsComponent.Kind())
	if !ok || s.catalogs == nil {
		return
	}
	catalog, ok := s.catalogs.Catalog(assets.Catalog)
	if !ok {
		return
	}
	set, ok := catalog.Lookup(evt.Action)
	if !ok {
		return
	}

	steps := ExpandSet(set, s.rng)
	if len(steps) == 0 {
		return
	}
	s.push(evt, queue, steps)
}

func (s *AnimationQueueSystem[T]) push(evt ecs.ActionEvent[T], queue *component.AnimationQueue[T], steps []component.Step[T]) {
	limit := s.limits.MaxDepth
	if limit <= 0 {
		queue.Steps = append(queue.Steps, steps...)
		return
	}

	free := limit - queue.Len()
	if len(steps) <= free {
		queue.Steps = append(queue.Steps, steps...)
		return
	}

	switch s.limits.Overflow {
	case OverflowReject:
		log.Printf("animation: entity=%s action=%v queue full (%d/%d), rejected %d steps", evt.Entity, evt.Action, queue.Len(), limit, len(steps))
	case OverflowDropOldest:
		queue.Steps = append(queue.Steps, steps...)
		dropped := queue.Len() - limit
		queue.DropFront(dropped)
		log.Printf("animation: entity=%s action=%v queue full, evicted %d oldest steps", evt.Entity, evt.Action, dropped)
	default:
		if free < 0 {
			free = 0
		}
		queue.Steps = append(queue.Steps, steps[:free]...)
		log.Printf("animation: entity=%s action=%v queue full, dropped %d newest steps", evt.Entity, evt.Action, len(steps)-free)
	}
}
