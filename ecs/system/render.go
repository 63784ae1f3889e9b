package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/actionanim/ecs"
	"github.com/milk9111/actionanim/ecs/component"
	"github.com/milk9111/actionanim/ecs/render"
)

// SpriteRenderSystem draws the current frame of every animated sprite, lowest
// render layer first. Sprites without their own sheet use the sheet registered
// under their clip handle.
type SpriteRenderSystem struct {
	clips ClipProvider
}

func NewSpriteRenderSystem(clips ClipProvider) *SpriteRenderSystem {
	return &SpriteRenderSystem{clips: clips}
}

func (r *SpriteRenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil || r.clips == nil {
		return
	}

	entities := w.Query(
		component.TransformComponent.Kind().ID(),
		component.SpriteComponent.Kind().ID(),
		component.AnimationAssetsComponent.Kind().ID(),
	)
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			continue
		}
		assets, ok := ecs.Get(w, e, component.AnimationAssetsComponent.Kind())
		if !ok {
			continue
		}
		table, ok := r.clips.Clips(assets.Clips)
		if !ok {
			continue
		}
		frame, ok := render.Frame(render.GetSheet(assets.Clips), table, s.Index)
		if !ok {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM = render.FlipGeoM(table.FrameWidth, table.FrameHeight, s.FlipX, s.FlipY)
		op.GeoM.Translate(-s.OriginX, -s.OriginY)
		sx, sy := t.Scale()
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(t.X, t.Y)

		screen.DrawImage(frame, op)
	}
}

// Update is a no-op; the system only draws.
func (r *SpriteRenderSystem) Update(*ecs.World) {}
