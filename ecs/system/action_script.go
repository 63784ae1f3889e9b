package system

import (
	"fmt"
	"log"
	"path"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/actionanim/ecs"
	"github.com/milk9111/actionanim/ecs/component"
	"github.com/milk9111/actionanim/prefabs"
)

const actionScriptDispatch = `
if __phase == "react" {
	react(__engine, __state, __action)
}
`

type actionScriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// ActionScriptSystem runs an entity's tengo script for every action the entity
// receives. Actions the script emits are sent back to the bus; schedule the
// system before the animation plugin so they are queued on the same tick.
type ActionScriptSystem[T comparable] struct {
	events *ecs.Events[ecs.ActionEvent[T]]
	reader *ecs.EventReader[ecs.ActionEvent[T]]
	codec  prefabs.ActionCodec[T]
	load   func(path string) ([]byte, error)
	cache  map[ecs.Entity]*actionScriptRuntime
}

func NewActionScriptSystem[T comparable](events *ecs.Events[ecs.ActionEvent[T]], codec prefabs.ActionCodec[T]) *ActionScriptSystem[T] {
	return &ActionScriptSystem[T]{
		events: events,
		reader: events.NewReader(),
		codec:  codec,
		load:   prefabs.LoadScript,
		cache:  map[ecs.Entity]*actionScriptRuntime{},
	}
}

// SetScriptLoader replaces prefabs.LoadScript as the script source.
func (s *ActionScriptSystem[T]) SetScriptLoader(load func(path string) ([]byte, error)) {
	if s == nil || load == nil {
		return
	}
	s.load = load
	clear(s.cache)
}

// Invalidate drops compiled scripts loaded from file so the next action
// recompiles them. Matching is by file name.
func (s *ActionScriptSystem[T]) Invalidate(file string) {
	if s == nil {
		return
	}
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	for e, rt := range s.cache {
		if path.Base(rt.path) == base {
			delete(s.cache, e)
		}
	}
}

func (s *ActionScriptSystem[T]) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	var out []ecs.ActionEvent[T]
	for _, evt := range s.reader.Read() {
		script, ok := ecs.Get(w, evt.Entity, component.ActionScriptComponent.Kind())
		if !ok || strings.TrimSpace(script.Path) == "" {
			continue
		}
		rt, err := s.runtime(evt.Entity, script.Path)
		if err != nil {
			log.Printf("script: entity=%s load %s: %v", evt.Entity, script.Path, err)
			continue
		}
		emitted, err := s.react(w, rt, evt)
		if err != nil {
			log.Printf("script: entity=%s react error: %v", evt.Entity, err)
			continue
		}
		out = append(out, emitted...)
	}

	for e := range s.cache {
		if !w.IsAlive(e) {
			delete(s.cache, e)
		}
	}

	for _, evt := range out {
		s.events.Send(evt)
	}
}

func (s *ActionScriptSystem[T]) runtime(e ecs.Entity, scriptPath string) (*actionScriptRuntime, error) {
	if rt, ok := s.cache[e]; ok && rt.path == scriptPath {
		return rt, nil
	}

	scriptBytes, err := s.load(scriptPath)
	if err != nil {
		return nil, err
	}

	src := string(scriptBytes) + "\n" + actionScriptDispatch
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__action", "")

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	rt := &actionScriptRuntime{
		path:     scriptPath,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.cache[e] = rt
	return rt, nil
}

func (s *ActionScriptSystem[T]) react(w *ecs.World, rt *actionScriptRuntime, evt ecs.ActionEvent[T]) ([]ecs.ActionEvent[T], error) {
	var emitted []ecs.ActionEvent[T]
	engine := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"entity": &tengo.String{Value: evt.Entity.String()},
		"tick":   &tengo.Int{Value: int64(w.Ticks())},
		"emit": &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 1 {
				return tengo.FalseValue, nil
			}
			name := strings.TrimSpace(objectAsString(args[0]))
			action, err := s.codec.ParseAction(name)
			if err != nil {
				log.Printf("script: entity=%s emit %q: %v", evt.Entity, name, err)
				return tengo.FalseValue, nil
			}
			emitted = append(emitted, ecs.ActionEvent[T]{Entity: evt.Entity, Action: action})
			return tengo.TrueValue, nil
		}},
	}}

	if err := rt.compiled.Set("__phase", "react"); err != nil {
		return nil, err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return nil, err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return nil, err
	}
	if err := rt.compiled.Set("__action", s.codec.FormatAction(evt.Action)); err != nil {
		return nil, err
	}
	if err := rt.compiled.Run(); err != nil {
		return nil, fmt.Errorf("run %s: %w", rt.path, err)
	}
	return emitted, nil
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
