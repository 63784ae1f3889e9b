package component

import "time"

// AnimationQueue holds step copies waiting for playback, front first.
type AnimationQueue[T comparable] struct {
	Steps []Step[T]
}

func (q *AnimationQueue[T]) Len() int {
	return len(q.Steps)
}

// Push appends a copy of step.
func (q *AnimationQueue[T]) Push(step Step[T]) {
	q.Steps = append(q.Steps, step.Clone())
}

// Peek returns the front step without removing it.
func (q *AnimationQueue[T]) Peek() (Step[T], bool) {
	if len(q.Steps) == 0 {
		return Step[T]{}, false
	}
	return q.Steps[0], true
}

// Pop removes and returns the front step.
func (q *AnimationQueue[T]) Pop() (Step[T], bool) {
	step, ok := q.Peek()
	if !ok {
		return step, false
	}
	q.Steps[0] = Step[T]{}
	q.Steps = q.Steps[1:]
	if len(q.Steps) == 0 {
		q.Steps = nil
	}
	return step, true
}

// DropFront discards up to n steps from the front.
func (q *AnimationQueue[T]) DropFront(n int) {
	if n <= 0 {
		return
	}
	if n >= len(q.Steps) {
		q.Steps = nil
		return
	}
	clear(q.Steps[:n])
	q.Steps = q.Steps[n:]
}

// DefaultPlaybackPeriod is the timer period of a freshly spawned entity.
const DefaultPlaybackPeriod = time.Second

// Playback is the active step of an entity: its range, loop mode, timer and the
// triggers to emit when it completes. Frame index and flips live in Sprite.
type Playback[T comparable] struct {
	Range    ClipRange
	Mode     LoopMode
	Timer    Timer
	Triggers []T
}

// NewPlayback returns the spawn state: frame range {0,0}, once, one second timer.
func NewPlayback[T comparable]() Playback[T] {
	return Playback[T]{
		Mode:  LoopOnce,
		Timer: NewTimer(DefaultPlaybackPeriod),
	}
}

// Complete reports whether the active step has finished given the sprite's
// current index and the number of queued steps.
func (p *Playback[T]) Complete(index uint, queued int) bool {
	if p.Mode == LoopRepeating {
		return queued > 0
	}
	return index == p.Range.Last
}

// AnimationComponents groups the per-action-type component handles. Generic
// components cannot be package-level values, so each plugin owns one.
type AnimationComponents[T comparable] struct {
	Queue    ComponentHandle[AnimationQueue[T]]
	Playback ComponentHandle[Playback[T]]
}

func NewAnimationComponents[T comparable]() AnimationComponents[T] {
	return AnimationComponents[T]{
		Queue:    NewComponent[AnimationQueue[T]](),
		Playback: NewComponent[Playback[T]](),
	}
}
