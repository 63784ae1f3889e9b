package component

import (
	"slices"
	"time"
)

// ClipID names a clip inside a ClipTable.
type ClipID string

// ClipRange is an inclusive frame range on a sprite sheet. The index moves
// towards Last: ascending when First <= Last, descending otherwise.
type ClipRange struct {
	First uint
	Last  uint
}

// Descending reports whether the range is played with decreasing indices.
func (r ClipRange) Descending() bool {
	return r.First > r.Last
}

// Next returns the frame after index. At Last the index wraps to First when
// mode is LoopRepeating and holds otherwise.
func (r ClipRange) Next(index uint, mode LoopMode) uint {
	if index == r.Last {
		if mode == LoopRepeating {
			return r.First
		}
		return r.Last
	}
	if r.Descending() {
		if index == 0 {
			return 0
		}
		return index - 1
	}
	return index + 1
}

// Len is the number of frames in the range.
func (r ClipRange) Len() uint {
	if r.Descending() {
		return r.First - r.Last + 1
	}
	return r.Last - r.First + 1
}

// LoopMode decides what happens when playback reaches the last frame.
type LoopMode int

const (
	LoopOnce LoopMode = iota
	LoopRepeating
)

func (m LoopMode) String() string {
	switch m {
	case LoopOnce:
		return "once"
	case LoopRepeating:
		return "repeating"
	default:
		return "unknown"
	}
}

// AttributeKind tags an Attribute.
type AttributeKind int

const (
	AttributeFlipX AttributeKind = iota
	AttributeFlipY
	AttributeTrigger
)

// Attribute is applied, in list order, when its step becomes active.
// Trigger is only meaningful for AttributeTrigger.
type Attribute[T comparable] struct {
	Kind    AttributeKind
	Trigger T
}

func FlipHorizontal[T comparable]() Attribute[T] {
	return Attribute[T]{Kind: AttributeFlipX}
}

func FlipVertical[T comparable]() Attribute[T] {
	return Attribute[T]{Kind: AttributeFlipY}
}

func EmitTrigger[T comparable](action T) Attribute[T] {
	return Attribute[T]{Kind: AttributeTrigger, Trigger: action}
}

// Step is one scheduled playback unit.
type Step[T comparable] struct {
	Clip       ClipID
	Period     time.Duration
	Mode       LoopMode
	Attributes []Attribute[T]
}

// Clone returns a copy that shares no memory with s.
func (s Step[T]) Clone() Step[T] {
	if s.Attributes != nil {
		s.Attributes = append([]Attribute[T](nil), s.Attributes...)
	}
	return s
}

// Ordering controls how a set's steps are expanded into a queue.
type Ordering int

const (
	OrderSequential Ordering = iota
	OrderShuffled
	OrderRandomPick
)

func (o Ordering) String() string {
	switch o {
	case OrderSequential:
		return "sequential"
	case OrderShuffled:
		return "shuffled"
	case OrderRandomPick:
		return "random_pick"
	default:
		return "unknown"
	}
}

// AnimationSet is the ordered collection of steps bound to one action.
type AnimationSet[T comparable] struct {
	Steps    []Step[T]
	Ordering Ordering
}

// Catalog maps actions to animation sets. It is never mutated after
// construction; reloads build a new Catalog.
type Catalog[T comparable] struct {
	sets map[T]AnimationSet[T]
}

// NewCatalog copies sets into a new catalog.
func NewCatalog[T comparable](sets map[T]AnimationSet[T]) *Catalog[T] {
	c := &Catalog[T]{sets: make(map[T]AnimationSet[T], len(sets))}
	for action, set := range sets {
		steps := make([]Step[T], len(set.Steps))
		for i, step := range set.Steps {
			steps[i] = step.Clone()
		}
		c.sets[action] = AnimationSet[T]{Steps: steps, Ordering: set.Ordering}
	}
	return c
}

// Lookup returns the set bound to action.
func (c *Catalog[T]) Lookup(action T) (AnimationSet[T], bool) {
	if c == nil {
		return AnimationSet[T]{}, false
	}
	set, ok := c.sets[action]
	return set, ok
}

// Len returns the number of bound actions.
func (c *Catalog[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.sets)
}

// ClipTable maps clip ids to frame ranges and carries the sheet geometry the
// ranges index into. Immutable after construction.
type ClipTable struct {
	FrameWidth  int
	FrameHeight int
	Columns     int

	clips map[ClipID]ClipRange
}

// NewClipTable copies clips into a new table.
func NewClipTable(frameWidth, frameHeight, columns int, clips map[ClipID]ClipRange) *ClipTable {
	t := &ClipTable{
		FrameWidth:  frameWidth,
		FrameHeight: frameHeight,
		Columns:     columns,
		clips:       make(map[ClipID]ClipRange, len(clips)),
	}
	for id, r := range clips {
		t.clips[id] = r
	}
	return t
}

// Lookup returns the range of clip id.
func (t *ClipTable) Lookup(id ClipID) (ClipRange, bool) {
	if t == nil {
		return ClipRange{}, false
	}
	r, ok := t.clips[id]
	return r, ok
}

// IDs returns the clip ids in sorted order.
func (t *ClipTable) IDs() []ClipID {
	if t == nil {
		return nil
	}
	ids := make([]ClipID, 0, len(t.clips))
	for id := range t.clips {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of clips.
func (t *ClipTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.clips)
}

// AnimationAssets binds an entity to its catalog and clip table by asset name.
type AnimationAssets struct {
	Catalog string
	Clips   string
}

var AnimationAssetsComponent = NewComponent[AnimationAssets]()
