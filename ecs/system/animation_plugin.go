package system

import (
	"github.com/milk9111/actionanim/ecs"
	"github.com/milk9111/actionanim/ecs/component"
)

// AnimationAssetProvider resolves both asset kinds an animated entity binds to.
type AnimationAssetProvider[T comparable] interface {
	CatalogProvider[T]
	ClipProvider
}

// AnimationPlugin wires the animation stages for one action type.
type AnimationPlugin[T comparable] struct {
	Components component.AnimationComponents[T]
	Events     *ecs.Events[ecs.ActionEvent[T]]

	queue   *AnimationQueueSystem[T]
	advance *AnimationAdvanceSystem[T]
}

// AnimationPluginOption configures an AnimationPlugin.
type AnimationPluginOption func(*animationPluginConfig)

type animationPluginConfig struct {
	rng    RandomSource
	limits QueueLimits
	events any
}

// WithRandom injects the ordering random source.
func WithRandom(rng RandomSource) AnimationPluginOption {
	return func(c *animationPluginConfig) {
		c.rng = rng
	}
}

// WithQueueLimits caps queue depth.
func WithQueueLimits(limits QueueLimits) AnimationPluginOption {
	return func(c *animationPluginConfig) {
		c.limits = limits
	}
}

// WithEvents shares an existing action bus instead of creating one. The bus
// must carry ecs.ActionEvent of the plugin's action type.
func WithEvents[T comparable](events *ecs.Events[ecs.ActionEvent[T]]) AnimationPluginOption {
	return func(c *animationPluginConfig) {
		c.events = events
	}
}

func NewAnimationPlugin[T comparable](assets AnimationAssetProvider[T], opts ...AnimationPluginOption) *AnimationPlugin[T] {
	cfg := animationPluginConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	events, _ := cfg.events.(*ecs.Events[ecs.ActionEvent[T]])
	if events == nil {
		events = ecs.NewEvents[ecs.ActionEvent[T]]()
	}

	components := component.NewAnimationComponents[T]()
	return &AnimationPlugin[T]{
		Components: components,
		Events:     events,
		queue:      NewAnimationQueueSystem(components, CatalogProvider[T](assets), events, cfg.rng, cfg.limits),
		advance:    NewAnimationAdvanceSystem(components, CatalogProvider[T](assets), ClipProvider(assets), events),
	}
}

// Install registers queueing, advancing and the bus swap, in that order.
// Systems producing action events should be added before Install.
func (p *AnimationPlugin[T]) Install(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	w.AddSystem(p.queue)
	w.AddSystem(p.advance)
	w.AddSystem(ecs.EventsSystem(p.Events))
}

// Spawn attaches the animation bundle to e: an empty queue, the spawn playback
// state, the asset binding and a sprite sink if e has none.
func (p *AnimationPlugin[T]) Spawn(w *ecs.World, e ecs.Entity, assets component.AnimationAssets) error {
	if err := ecs.Add(w, e, p.Components.Queue.Kind(), &component.AnimationQueue[T]{}); err != nil {
		return err
	}
	playback := component.NewPlayback[T]()
	if err := ecs.Add(w, e, p.Components.Playback.Kind(), &playback); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.AnimationAssetsComponent.Kind(), &assets); err != nil {
		return err
	}
	if !ecs.Has(w, e, component.SpriteComponent.Kind()) {
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{}); err != nil {
			return err
		}
	}
	return nil
}

// Send publishes an action for e.
func (p *AnimationPlugin[T]) Send(e ecs.Entity, action T) {
	p.Events.Send(ecs.ActionEvent[T]{Entity: e, Action: action})
}

// Queue returns the pending steps of e.
func (p *AnimationPlugin[T]) Queue(w *ecs.World, e ecs.Entity) (*component.AnimationQueue[T], bool) {
	return ecs.Get(w, e, p.Components.Queue.Kind())
}

// Playback returns the active playback state of e.
func (p *AnimationPlugin[T]) Playback(w *ecs.World, e ecs.Entity) (*component.Playback[T], bool) {
	return ecs.Get(w, e, p.Components.Playback.Kind())
}
