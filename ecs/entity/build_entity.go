package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/actionanim/ecs"
	"github.com/milk9111/actionanim/ecs/component"
	"github.com/milk9111/actionanim/prefabs"
)

var ErrNoAnimationBinder = errors.New("build entity: animation component needs a binder")

// AnimationBinder attaches the animation bundle for one action type.
type AnimationBinder interface {
	// Bind spawns the animation components on e and sends initial, if set.
	Bind(w *ecs.World, e ecs.Entity, assets component.AnimationAssets, initial string) error
	// FrameSize reports the frame geometry of a loaded clip table.
	FrameSize(clips string) (width, height int, ok bool)
}

type buildContext struct {
	PrefabPath   string
	Binder       AnimationBinder
	centerOrigin bool
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":                   addPlayerTag,
	prefabs.TransformComponentName: addTransform,
	prefabs.SpriteComponentName:    addSprite,
	"render_layer":                 addRenderLayer,
	prefabs.ScriptComponentName:    addScript,
	prefabs.AnimationComponentName: addAnimation,
}

// Sprite goes before animation so Spawn keeps the configured sink; animation
// goes last because it may send the initial action.
var componentBuildOrder = []string{
	"player_tag",
	prefabs.TransformComponentName,
	prefabs.SpriteComponentName,
	"render_layer",
	prefabs.ScriptComponentName,
	prefabs.AnimationComponentName,
}

func BuildEntity(w *ecs.World, prefabPath string, binder AnimationBinder) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Binder: binder}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}
	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			if _, ok := componentRegistry[name]; !ok {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			sort.Strings(names)
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
		}
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	if ctx.centerOrigin {
		centerSpriteOrigin(w, e, ctx.Binder)
	}
	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      spec.X,
		Y:      spec.Y,
		ScaleX: spec.ScaleX,
		ScaleY: spec.ScaleY,
	})
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.CenterOriginIfZero && spec.OriginX == 0 && spec.OriginY == 0 {
		ctx.centerOrigin = true
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		OriginX: spec.OriginX,
		OriginY: spec.OriginY,
	})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func addScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScriptComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Path == "" {
		return fmt.Errorf("script path is empty")
	}
	return ecs.Add(w, e, component.ActionScriptComponent.Kind(), &component.ActionScript{Path: spec.Path})
}

func addAnimation(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimationComponentSpec](raw)
	if err != nil {
		return err
	}
	if ctx.Binder == nil {
		return ErrNoAnimationBinder
	}
	if spec.Clips == "" {
		spec.Clips = spec.Catalog
	}
	return ctx.Binder.Bind(w, e, component.AnimationAssets{Catalog: spec.Catalog, Clips: spec.Clips}, spec.Initial)
}

func centerSpriteOrigin(w *ecs.World, e ecs.Entity, binder AnimationBinder) {
	if binder == nil {
		return
	}
	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok {
		return
	}
	assets, ok := ecs.Get(w, e, component.AnimationAssetsComponent.Kind())
	if !ok {
		return
	}
	fw, fh, ok := binder.FrameSize(assets.Clips)
	if !ok {
		return
	}
	sprite.OriginX = float64(fw) / 2
	sprite.OriginY = float64(fh) / 2
}
