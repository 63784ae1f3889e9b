package prefabs

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/milk9111/actionanim/ecs/component"
)

var (
	ErrInvalidSheet     = errors.New("prefabs: invalid sheet geometry")
	ErrInvalidClip      = errors.New("prefabs: invalid clip")
	ErrInvalidStep      = errors.New("prefabs: invalid step")
	ErrInvalidPeriod    = errors.New("prefabs: period must be positive")
	ErrUnknownOrdering  = errors.New("prefabs: unknown ordering")
	ErrUnknownLoopMode  = errors.New("prefabs: unknown loop mode")
	ErrUnknownAttribute = errors.New("prefabs: unknown attribute")
)

// BuildClipTable validates a clip sheet and converts it to a ClipTable.
func BuildClipTable(spec ClipSheetSpec) (*component.ClipTable, error) {
	if spec.FrameWidth <= 0 || spec.FrameHeight <= 0 || spec.Columns <= 0 {
		return nil, fmt.Errorf("%w: %dx%d frames, %d columns", ErrInvalidSheet, spec.FrameWidth, spec.FrameHeight, spec.Columns)
	}
	clips := make(map[component.ClipID]component.ClipRange, len(spec.Clips))
	for id, r := range spec.Clips {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w: empty clip id", ErrInvalidClip)
		}
		clips[component.ClipID(id)] = component.ClipRange{First: r.First, Last: r.Last}
	}
	return component.NewClipTable(spec.FrameWidth, spec.FrameHeight, spec.Columns, clips), nil
}

// BuildCatalog validates an animation file and decodes its action names with codec.
// Clip ids are not checked against a clip table: the two assets load
// independently and unresolved clips are deferred at playback.
func BuildCatalog[T comparable](spec AnimationCatalogSpec, codec ActionCodec[T]) (*component.Catalog[T], error) {
	sets := make(map[T]component.AnimationSet[T], len(spec.Actions))
	for _, name := range sortedKeys(spec.Actions) {
		setSpec := spec.Actions[name]
		action, err := codec.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", name, err)
		}
		set, err := buildSet(setSpec, codec)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", name, err)
		}
		sets[action] = set
	}
	return component.NewCatalog(sets), nil
}

func buildSet[T comparable](spec AnimationSetSpec, codec ActionCodec[T]) (component.AnimationSet[T], error) {
	ordering, err := ParseOrdering(spec.Ordering)
	if err != nil {
		return component.AnimationSet[T]{}, err
	}
	steps := make([]component.Step[T], 0, len(spec.Steps))
	for i, s := range spec.Steps {
		step, err := buildStep(s, codec)
		if err != nil {
			return component.AnimationSet[T]{}, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, step)
	}
	return component.AnimationSet[T]{Steps: steps, Ordering: ordering}, nil
}

// periodDuration converts seconds to a Duration. ok is false unless the result
// is a finite positive Duration.
func periodDuration(seconds float64) (time.Duration, bool) {
	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return 0, false
	}
	ns := seconds * float64(time.Second)
	if ns >= math.MaxInt64 {
		return 0, false
	}
	d := time.Duration(ns)
	return d, d > 0
}

func buildStep[T comparable](spec StepSpec, codec ActionCodec[T]) (component.Step[T], error) {
	if strings.TrimSpace(spec.Clip) == "" {
		return component.Step[T]{}, fmt.Errorf("%w: missing clip", ErrInvalidStep)
	}
	period, ok := periodDuration(spec.Period)
	if !ok {
		return component.Step[T]{}, fmt.Errorf("%w: clip %s has period %v", ErrInvalidPeriod, spec.Clip, spec.Period)
	}
	mode, err := ParseLoopMode(spec.Mode)
	if err != nil {
		return component.Step[T]{}, err
	}

	step := component.Step[T]{
		Clip:   component.ClipID(spec.Clip),
		Period: period,
		Mode:   mode,
	}
	for _, attr := range spec.Attributes {
		switch attr.Kind {
		case attributeFlipX:
			step.Attributes = append(step.Attributes, component.FlipHorizontal[T]())
		case attributeFlipY:
			step.Attributes = append(step.Attributes, component.FlipVertical[T]())
		case attributeTrigger:
			action, err := codec.ParseAction(attr.Trigger)
			if err != nil {
				return component.Step[T]{}, fmt.Errorf("trigger: %w", err)
			}
			step.Attributes = append(step.Attributes, component.EmitTrigger(action))
		default:
			return component.Step[T]{}, fmt.Errorf("%w: %q", ErrUnknownAttribute, attr.Kind)
		}
	}
	return step, nil
}

// ParseOrdering accepts sequential, shuffled and random_pick, plus the older
// names random and random_select. Empty means sequential.
func ParseOrdering(s string) (component.Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential":
		return component.OrderSequential, nil
	case "shuffled", "random":
		return component.OrderShuffled, nil
	case "random_pick", "random_select":
		return component.OrderRandomPick, nil
	default:
		return component.OrderSequential, fmt.Errorf("%w: %q", ErrUnknownOrdering, s)
	}
}

// ParseLoopMode accepts once and repeating. Empty means once.
func ParseLoopMode(s string) (component.LoopMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "once":
		return component.LoopOnce, nil
	case "repeating", "repeat", "loop":
		return component.LoopRepeating, nil
	default:
		return component.LoopOnce, fmt.Errorf("%w: %q", ErrUnknownLoopMode, s)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
