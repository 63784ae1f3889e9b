package entity

import (
	"fmt"

	"github.com/milk9111/actionanim/ecs"
	"github.com/milk9111/actionanim/ecs/component"
	"github.com/milk9111/actionanim/ecs/system"
	"github.com/milk9111/actionanim/prefabs"
)

// PluginBinder binds prefab animation blocks to an AnimationPlugin, decoding
// the initial action with Codec.
type PluginBinder[T comparable] struct {
	Plugin *system.AnimationPlugin[T]
	Codec  prefabs.ActionCodec[T]
	Clips  system.ClipProvider
}

func (b PluginBinder[T]) Bind(w *ecs.World, e ecs.Entity, assets component.AnimationAssets, initial string) error {
	if b.Plugin == nil {
		return fmt.Errorf("animation plugin is nil")
	}
	if err := b.Plugin.Spawn(w, e, assets); err != nil {
		return err
	}
	if initial == "" {
		return nil
	}
	action, err := b.Codec.ParseAction(initial)
	if err != nil {
		return fmt.Errorf("initial action: %w", err)
	}
	b.Plugin.Send(e, action)
	return nil
}

func (b PluginBinder[T]) FrameSize(clips string) (int, int, bool) {
	if b.Clips == nil {
		return 0, 0, false
	}
	table, ok := b.Clips.Clips(clips)
	if !ok {
		return 0, 0, false
	}
	return table.FrameWidth, table.FrameHeight, true
}
