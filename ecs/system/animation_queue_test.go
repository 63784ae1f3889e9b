package system

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/milk9111/actionanim/ecs"
	"github.com/milk9111/actionanim/ecs/component"
)

func threeSteps(order component.Ordering) component.AnimationSet[string] {
	return component.AnimationSet[string]{
		Ordering: order,
		Steps: []component.Step[string]{
			step("idle", component.LoopOnce),
			step("run", component.LoopOnce),
			step("swing", component.LoopOnce),
		},
	}
}

func TestQueueSequentialExpansion(t *testing.T) {
	f := newAnimationFixture(t, map[string]component.AnimationSet[string]{
		"combo": threeSteps(component.OrderSequential),
	})
	q := f.queue(t)
	q.Push(step("back", component.LoopOnce))

	f.plugin.Send(f.e, "combo")
	f.plugin.queue.Update(f.w)

	want := []component.ClipID{"back", "idle", "run", "swing"}
	if got := clipsOf(q.Steps); !slices.Equal(got, want) {
		t.Fatalf("queue = %v, want %v", got, want)
	}
}

func TestQueueRandomPick(t *testing.T) {
	t.Run("grows_by_one", func(t *testing.T) {
		f := newAnimationFixture(t, map[string]component.AnimationSet[string]{
			"pick": threeSteps(component.OrderRandomPick),
		}, WithRandom(&scriptedRand{values: []int{2}}))

		f.plugin.Send(f.e, "pick")
		f.plugin.queue.Update(f.w)

		if got := clipsOf(f.queue(t).Steps); !slices.Equal(got, []component.ClipID{"swing"}) {
			t.Fatalf("queue = %v, want [swing]", got)
		}
	})

	t.Run("uniform", func(t *testing.T) {
		const trials = 3000
		rng := rand.New(rand.NewSource(42))
		set := threeSteps(component.OrderRandomPick)
		counts := map[component.ClipID]int{}
		for i := 0; i < trials; i++ {
			picked := ExpandSet(set, rng)
			if len(picked) != 1 {
				t.Fatalf("random pick returned %d steps", len(picked))
			}
			counts[picked[0].Clip]++
		}
		for _, clip := range []component.ClipID{"idle", "run", "swing"} {
			if n := counts[clip]; n < 850 || n > 1150 {
				t.Fatalf("clip %s picked %d times out of %d, distribution %v", clip, n, trials, counts)
			}
		}
	})
}

func TestQueueShuffledIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	set := threeSteps(component.OrderShuffled)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		got := clipsOf(ExpandSet(set, rng))
		sorted := slices.Clone(got)
		slices.Sort(sorted)
		if !slices.Equal(sorted, []component.ClipID{"idle", "run", "swing"}) {
			t.Fatalf("shuffle %v is not a permutation", got)
		}
		seen[string(got[0])+string(got[1])+string(got[2])] = true
	}
	if len(seen) != 6 {
		t.Fatalf("expected all 6 orders over 200 shuffles, saw %d", len(seen))
	}

	// Fisher-Yates with j=0 at every step rotates the list.
	scripted := ExpandSet(set, &scriptedRand{values: []int{0}})
	if got := clipsOf(scripted); !slices.Equal(got, []component.ClipID{"run", "swing", "idle"}) {
		t.Fatalf("scripted shuffle = %v", got)
	}
}

func TestQueueSkips(t *testing.T) {
	sets := map[string]component.AnimationSet[string]{"combo": threeSteps(component.OrderSequential)}

	tests := []struct {
		name string
		run  func(t *testing.T, f *animationFixture)
	}{
		{
			name: "unknown_action",
			run: func(t *testing.T, f *animationFixture) {
				f.plugin.Send(f.e, "dance")
				f.plugin.queue.Update(f.w)
				if f.queue(t).Len() != 0 {
					t.Fatalf("unknown action should be ignored")
				}
			},
		},
		{
			name: "catalog_not_loaded",
			run: func(t *testing.T, f *animationFixture) {
				delete(f.assets.catalogs, "player")
				f.plugin.Send(f.e, "combo")
				f.plugin.queue.Update(f.w)
				if f.queue(t).Len() != 0 {
					t.Fatalf("unloaded catalog should be ignored")
				}
			},
		},
		{
			name: "entity_without_components",
			run: func(t *testing.T, f *animationFixture) {
				bare := ecs.CreateEntity(f.w)
				f.plugin.Send(bare, "combo")
				f.plugin.Send(ecs.Entity(0), "combo")
				f.plugin.queue.Update(f.w)
				if f.queue(t).Len() != 0 {
					t.Fatalf("events for other entities leaked into the queue")
				}
			},
		},
		{
			name: "dead_entity",
			run: func(t *testing.T, f *animationFixture) {
				f.plugin.Send(f.e, "combo")
				ecs.DestroyEntity(f.w, f.e)
				f.plugin.queue.Update(f.w)
				if _, ok := f.plugin.Queue(f.w, f.e); ok {
					t.Fatalf("destroyed entity still has a queue")
				}
			},
		},
		{
			name: "unbound_entity",
			run: func(t *testing.T, f *animationFixture) {
				ecs.Remove(f.w, f.e, component.AnimationAssetsComponent.Kind())
				f.plugin.Send(f.e, "combo")
				f.plugin.queue.Update(f.w)
				if f.queue(t).Len() != 0 {
					t.Fatalf("entity without asset binding should be skipped")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.run(t, newAnimationFixture(t, sets))
		})
	}
}

func TestQueueEventsConcatenateInArrivalOrder(t *testing.T) {
	f := newAnimationFixture(t, map[string]component.AnimationSet[string]{
		"a": {Steps: []component.Step[string]{step("idle", component.LoopOnce), step("run", component.LoopOnce)}},
		"b": {Steps: []component.Step[string]{step("swing", component.LoopOnce)}},
	})
	f.plugin.Send(f.e, "b")
	f.plugin.Send(f.e, "a")
	f.plugin.Send(f.e, "b")
	f.plugin.queue.Update(f.w)

	want := []component.ClipID{"swing", "idle", "run", "swing"}
	if got := clipsOf(f.queue(t).Steps); !slices.Equal(got, want) {
		t.Fatalf("queue = %v, want %v", got, want)
	}
}

func TestQueueCopiesDoNotAliasCatalog(t *testing.T) {
	f := newAnimationFixture(t, map[string]component.AnimationSet[string]{
		"swing": {Steps: []component.Step[string]{step("swing", component.LoopOnce, component.EmitTrigger("done"))}},
	})
	f.plugin.Send(f.e, "swing")
	f.plugin.queue.Update(f.w)

	q := f.queue(t)
	q.Steps[0].Attributes[0] = component.FlipVertical[string]()

	set, _ := f.assets.catalogs["player"].Lookup("swing")
	if set.Steps[0].Attributes[0].Kind != component.AttributeTrigger {
		t.Fatalf("mutating a queued step changed the catalog")
	}
}

func TestQueueLimits(t *testing.T) {
	sets := map[string]component.AnimationSet[string]{"combo": threeSteps(component.OrderSequential)}

	tests := []struct {
		name   string
		limits QueueLimits
		want   []component.ClipID
	}{
		{"unbounded", QueueLimits{}, []component.ClipID{"back", "back", "idle", "run", "swing"}},
		{"fits", QueueLimits{MaxDepth: 5, Overflow: OverflowReject}, []component.ClipID{"back", "back", "idle", "run", "swing"}},
		{"reject", QueueLimits{MaxDepth: 4, Overflow: OverflowReject}, []component.ClipID{"back", "back"}},
		{"drop_newest", QueueLimits{MaxDepth: 4, Overflow: OverflowDropNewest}, []component.ClipID{"back", "back", "idle", "run"}},
		{"drop_oldest", QueueLimits{MaxDepth: 4, Overflow: OverflowDropOldest}, []component.ClipID{"back", "idle", "run", "swing"}},
		{"drop_newest_already_full", QueueLimits{MaxDepth: 1, Overflow: OverflowDropNewest}, []component.ClipID{"back", "back"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newAnimationFixture(t, sets, WithQueueLimits(tc.limits))
			q := f.queue(t)
			q.Push(step("back", component.LoopOnce))
			q.Push(step("back", component.LoopOnce))

			f.plugin.Send(f.e, "combo")
			f.plugin.queue.Update(f.w)

			if got := clipsOf(q.Steps); !slices.Equal(got, tc.want) {
				t.Fatalf("queue = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExpandEmptySet(t *testing.T) {
	for _, order := range []component.Ordering{component.OrderSequential, component.OrderShuffled, component.OrderRandomPick} {
		if got := ExpandSet(component.AnimationSet[string]{Ordering: order}, &scriptedRand{values: []int{0}}); len(got) != 0 {
			t.Fatalf("%s: empty set expanded to %v", order, got)
		}
	}
}
