package system

import (
	"errors"
	"slices"
	"testing"

	"github.com/milk9111/actionanim/ecs"
	"github.com/milk9111/actionanim/ecs/component"
	"github.com/milk9111/actionanim/prefabs"
)

type scriptFixture struct {
	w      *ecs.World
	events *ecs.Events[ecs.ActionEvent[string]]
	script *ActionScriptSystem[string]
	reader *ecs.EventReader[ecs.ActionEvent[string]]
	e      ecs.Entity
}

func newScriptFixture(t *testing.T, sources map[string]string) *scriptFixture {
	t.Helper()
	w := ecs.NewWorld()
	events := ecs.NewEvents[ecs.ActionEvent[string]]()
	script := NewActionScriptSystem[string](events, prefabs.StringCodec[string]{})
	if sources != nil {
		script.SetScriptLoader(func(path string) ([]byte, error) {
			src, ok := sources[path]
			if !ok {
				return nil, errors.New("missing script")
			}
			return []byte(src), nil
		})
	}
	w.AddSystem(script)
	w.AddSystem(ecs.EventsSystem(events))

	e := ecs.CreateEntity(w)
	return &scriptFixture{w: w, events: events, script: script, reader: events.NewReader(), e: e}
}

func (f *scriptFixture) actions() []string {
	var out []string
	for _, evt := range f.reader.Read() {
		out = append(out, evt.Action)
	}
	return out
}

func TestActionScriptEmbeddedPlayer(t *testing.T) {
	f := newScriptFixture(t, nil)
	if err := ecs.Add(f.w, f.e, component.ActionScriptComponent.Kind(), &component.ActionScript{Path: "scripts/player.tengo"}); err != nil {
		t.Fatalf("add script: %v", err)
	}

	f.events.Send(ecs.ActionEvent[string]{Entity: f.e, Action: "swing"})
	f.w.Tick(0)
	if got := f.actions(); !slices.Equal(got, []string{"swing"}) {
		t.Fatalf("actions = %v, want [swing]", got)
	}

	f.events.Send(ecs.ActionEvent[string]{Entity: f.e, Action: "swing_finished"})
	f.w.Tick(0)
	if got := f.actions(); !slices.Equal(got, []string{"swing_finished", "idle"}) {
		t.Fatalf("actions = %v, want [swing_finished idle]", got)
	}

	rt := f.script.cache[f.e]
	if rt == nil {
		t.Fatalf("runtime not cached")
	}
	if got := objectAsString(rt.state.Value["received"]); got != "2" {
		t.Fatalf("script state received = %s, want 2", got)
	}
}

func TestActionScriptIgnoresEntitiesWithoutScript(t *testing.T) {
	f := newScriptFixture(t, map[string]string{})
	f.events.Send(ecs.ActionEvent[string]{Entity: f.e, Action: "swing_finished"})
	f.w.Tick(0)
	if got := f.actions(); !slices.Equal(got, []string{"swing_finished"}) {
		t.Fatalf("actions = %v", got)
	}
}

func TestActionScriptErrorsAreContained(t *testing.T) {
	f := newScriptFixture(t, map[string]string{
		"broken.tengo": "react := func(engine, state, action) { x := 1 / 0 }",
		"syntax.tengo": "react := func(",
	})
	other := ecs.CreateEntity(f.w)
	_ = ecs.Add(f.w, f.e, component.ActionScriptComponent.Kind(), &component.ActionScript{Path: "broken.tengo"})
	_ = ecs.Add(f.w, other, component.ActionScriptComponent.Kind(), &component.ActionScript{Path: "syntax.tengo"})

	f.events.Send(ecs.ActionEvent[string]{Entity: f.e, Action: "a"})
	f.events.Send(ecs.ActionEvent[string]{Entity: other, Action: "b"})
	f.w.Tick(0)

	if got := f.actions(); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("actions = %v", got)
	}
}

func TestActionScriptInvalidate(t *testing.T) {
	sources := map[string]string{
		"scripts/echo.tengo": `react := func(engine, state, action) { if action == "ping" { engine.emit("pong") } }`,
	}
	f := newScriptFixture(t, sources)
	_ = ecs.Add(f.w, f.e, component.ActionScriptComponent.Kind(), &component.ActionScript{Path: "scripts/echo.tengo"})

	f.events.Send(ecs.ActionEvent[string]{Entity: f.e, Action: "ping"})
	f.w.Tick(0)
	if got := f.actions(); !slices.Equal(got, []string{"ping", "pong"}) {
		t.Fatalf("actions = %v", got)
	}

	sources["scripts/echo.tengo"] = `react := func(engine, state, action) { if action == "ping" { engine.emit("pang") } }`
	f.script.Invalidate("prefabs/scripts/echo.tengo")
	if _, ok := f.script.cache[f.e]; ok {
		t.Fatalf("runtime survived invalidation")
	}

	f.events.Send(ecs.ActionEvent[string]{Entity: f.e, Action: "ping"})
	f.w.Tick(0)
	if got := f.actions(); !slices.Equal(got, []string{"ping", "pang"}) {
		t.Fatalf("actions = %v", got)
	}
}
