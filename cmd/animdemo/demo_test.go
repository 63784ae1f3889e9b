package main

import (
	"testing"
	"time"

	"github.com/milk9111/actionanim/ecs"
	"github.com/milk9111/actionanim/ecs/component"
	"github.com/milk9111/actionanim/ecs/entity"
	"github.com/milk9111/actionanim/ecs/system"
	"github.com/milk9111/actionanim/prefabs"
)

func TestActionNames(t *testing.T) {
	for name, action := range actionNames {
		if action.String() != name {
			t.Fatalf("%d.String() = %q, want %q", action, action.String(), name)
		}
	}
	if got := Action(99).String(); got != "99" {
		t.Fatalf("unknown action formats as %q", got)
	}
}

func TestEmbeddedPlayerWithScript(t *testing.T) {
	store := prefabs.NewStore[Action](prefabs.DefaultLoader, actionCodec)
	if err := store.Load("player"); err != nil {
		t.Fatalf("load assets: %v", err)
	}
	table, _ := store.Clips("player")
	if rows := sheetRows(table); rows != 3 {
		t.Fatalf("sheet rows = %d, want 3", rows)
	}

	w := ecs.NewWorld()
	plugin := system.NewAnimationPlugin[Action](store)
	w.AddSystem(system.NewActionScriptSystem[Action](plugin.Events, actionCodec))
	plugin.Install(w)

	e, err := entity.NewPlayer(w, entity.PluginBinder[Action]{Plugin: plugin, Codec: actionCodec, Clips: store})
	if err != nil {
		t.Fatalf("build player: %v", err)
	}

	plugin.Send(e, ActionSwing)
	w.Tick(0)
	w.Tick(0)
	p, _ := plugin.Playback(w, e)
	if p.Range != (component.ClipRange{First: 16, Last: 21}) {
		t.Fatalf("swing not playing after idle yields: %+v", p)
	}

	// swing (6 frames) then recover (6 frames) at well under a second each.
	for i := 0; i < 40; i++ {
		w.Tick(100 * time.Millisecond)
	}
	p, _ = plugin.Playback(w, e)
	if p.Range != (component.ClipRange{First: 0, Last: 3}) || p.Mode != component.LoopRepeating {
		t.Fatalf("player did not return to idle after swing: %+v", p)
	}
	if q, _ := plugin.Queue(w, e); q.Len() != 0 {
		t.Fatalf("idle queued more than once after swing, queue = %d", q.Len())
	}
}
