package system

import (
	"math/rand"
	"time"

	"github.com/milk9111/actionanim/ecs/component"
)

// RandomSource is the randomness used by shuffled and random-pick orderings.
// *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// NewRandomSource returns a seeded source. A zero seed picks one from the clock.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// ExpandSet returns the steps one action contributes to a queue, as copies.
func ExpandSet[T comparable](set component.AnimationSet[T], rng RandomSource) []component.Step[T] {
	if len(set.Steps) == 0 {
		return nil
	}
	switch set.Ordering {
	case component.OrderRandomPick:
		return []component.Step[T]{set.Steps[rng.Intn(len(set.Steps))].Clone()}
	case component.OrderShuffled:
		out := cloneSteps(set.Steps)
		shuffle(out, rng)
		return out
	default:
		return cloneSteps(set.Steps)
	}
}

func cloneSteps[T comparable](steps []component.Step[T]) []component.Step[T] {
	out := make([]component.Step[T], len(steps))
	for i, s := range steps {
		out[i] = s.Clone()
	}
	return out
}

// shuffle is Fisher-Yates over rng.
func shuffle[S ~[]E, E any](s S, rng RandomSource) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
