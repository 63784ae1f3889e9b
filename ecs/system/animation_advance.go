package system

import (
	"github.com/milk9111/actionanim/ecs"
	"github.com/milk9111/actionanim/ecs/component"
)

// AnimationAdvanceSystem steps playback timers and frames, and installs the
// next queued step when the active one completes. Triggers of a completed step
// are sent to the event bus; QueueingStage sees them on the following tick.
type AnimationAdvanceSystem[T comparable] struct {
	components component.AnimationComponents[T]
	catalogs   CatalogProvider[T]
	clips      ClipProvider
	events     *ecs.Events[ecs.ActionEvent[T]]
}

func NewAnimationAdvanceSystem[T comparable](
	components component.AnimationComponents[T],
	catalogs CatalogProvider[T],
	clips ClipProvider,
	events *ecs.Events[ecs.ActionEvent[T]],
) *AnimationAdvanceSystem[T] {
	return &AnimationAdvanceSystem[T]{
		components: components,
		catalogs:   catalogs,
		clips:      clips,
		events:     events,
	}
}

func (s *AnimationAdvanceSystem[T]) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.Delta()
	ecs.ForEach4(w,
		s.components.Queue.Kind(),
		s.components.Playback.Kind(),
		component.SpriteComponent.Kind(),
		component.AnimationAssetsComponent.Kind(),
		func(e ecs.Entity, queue *component.AnimationQueue[T], playback *component.Playback[T], sprite *component.Sprite, assets *component.AnimationAssets) {
			if !s.ready(assets) {
				return
			}

			playback.Timer.Tick(dt)
			if playback.Timer.JustFinished() {
				sprite.Index = playback.Range.Next(sprite.Index, playback.Mode)
			}

			if !playback.Complete(sprite.Index, queue.Len()) {
				return
			}

			for _, trigger := range playback.Triggers {
				s.events.Send(ecs.ActionEvent[T]{Entity: e, Action: trigger})
			}
			playback.Triggers = playback.Triggers[:0]

			s.installNext(assets, queue, playback, sprite)
		})
}

// ready reports whether the entity's catalog handle resolves.
func (s *AnimationAdvanceSystem[T]) ready(assets *component.AnimationAssets) bool {
	if s.catalogs == nil {
		return false
	}
	_, ok := s.catalogs.Catalog(assets.Catalog)
	return ok
}

// installNext pops the front step and makes it active. A step whose clip does
// not resolve yet stays queued and the current state is left as is.
func (s *AnimationAdvanceSystem[T]) installNext(assets *component.AnimationAssets, queue *component.AnimationQueue[T], playback *component.Playback[T], sprite *component.Sprite) {
	next, ok := queue.Peek()
	if !ok {
		return
	}
	if s.clips == nil {
		return
	}
	table, ok := s.clips.Clips(assets.Clips)
	if !ok {
		return
	}
	clip, ok := table.Lookup(next.Clip)
	if !ok {
		return
	}
	queue.Pop()

	playback.Timer.Reset(next.Period)
	playback.Range = clip
	playback.Mode = next.Mode
	sprite.FlipX = false
	sprite.FlipY = false
	sprite.Index = clip.First

	for _, attr := range next.Attributes {
		switch attr.Kind {
		case component.AttributeFlipX:
			sprite.FlipX = true
		case component.AttributeFlipY:
			sprite.FlipY = true
		case component.AttributeTrigger:
			playback.Triggers = append(playback.Triggers, attr.Trigger)
		}
	}
}
