package system

import (
	"testing"
	"time"

	"github.com/milk9111/actionanim/ecs"
	"github.com/milk9111/actionanim/ecs/component"
)

const testPeriod = 100 * time.Millisecond

type testAssets struct {
	catalogs map[string]*component.Catalog[string]
	clips    map[string]*component.ClipTable
}

func (a *testAssets) Catalog(name string) (*component.Catalog[string], bool) {
	c, ok := a.catalogs[name]
	return c, ok
}

func (a *testAssets) Clips(name string) (*component.ClipTable, bool) {
	t, ok := a.clips[name]
	return t, ok
}

func testClips() *component.ClipTable {
	return component.NewClipTable(16, 16, 8, map[component.ClipID]component.ClipRange{
		"idle":   {First: 0, Last: 3},
		"run":    {First: 4, Last: 7},
		"swing":  {First: 8, Last: 11},
		"back":   {First: 15, Last: 12},
		"single": {First: 20, Last: 20},
	})
}

func step(clip component.ClipID, mode component.LoopMode, attrs ...component.Attribute[string]) component.Step[string] {
	return component.Step[string]{Clip: clip, Period: testPeriod, Mode: mode, Attributes: attrs}
}

func newTestAssets(sets map[string]component.AnimationSet[string]) *testAssets {
	return &testAssets{
		catalogs: map[string]*component.Catalog[string]{"player": component.NewCatalog(sets)},
		clips:    map[string]*component.ClipTable{"player": testClips()},
	}
}

type animationFixture struct {
	w      *ecs.World
	plugin *AnimationPlugin[string]
	assets *testAssets
	e      ecs.Entity
	reader *ecs.EventReader[ecs.ActionEvent[string]]
}

func newAnimationFixture(t *testing.T, sets map[string]component.AnimationSet[string], opts ...AnimationPluginOption) *animationFixture {
	t.Helper()
	assets := newTestAssets(sets)
	w := ecs.NewWorld()
	plugin := NewAnimationPlugin[string](assets, opts...)
	plugin.Install(w)
	e := ecs.CreateEntity(w)
	if err := plugin.Spawn(w, e, component.AnimationAssets{Catalog: "player", Clips: "player"}); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	return &animationFixture{
		w:      w,
		plugin: plugin,
		assets: assets,
		e:      e,
		reader: plugin.Events.NewReader(),
	}
}

func (f *animationFixture) queue(t *testing.T) *component.AnimationQueue[string] {
	t.Helper()
	q, ok := f.plugin.Queue(f.w, f.e)
	if !ok {
		t.Fatalf("entity has no queue")
	}
	return q
}

func (f *animationFixture) playback(t *testing.T) *component.Playback[string] {
	t.Helper()
	p, ok := f.plugin.Playback(f.w, f.e)
	if !ok {
		t.Fatalf("entity has no playback")
	}
	return p
}

func (f *animationFixture) sprite(t *testing.T) *component.Sprite {
	t.Helper()
	s, ok := ecs.Get(f.w, f.e, component.SpriteComponent.Kind())
	if !ok {
		t.Fatalf("entity has no sprite")
	}
	return s
}

func (f *animationFixture) tick(n int) {
	for i := 0; i < n; i++ {
		f.w.Tick(testPeriod)
	}
}

func (f *animationFixture) triggers() []string {
	var out []string
	for _, evt := range f.reader.Read() {
		if evt.Entity == f.e {
			out = append(out, evt.Action)
		}
	}
	return out
}

func clipsOf(steps []component.Step[string]) []component.ClipID {
	out := make([]component.ClipID, len(steps))
	for i, s := range steps {
		out[i] = s.Clip
	}
	return out
}

// scriptedRand replays fixed values, reduced modulo n.
type scriptedRand struct {
	values []int
	next   int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v % n
}
