package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/actionanim/ecs"
	"github.com/milk9111/actionanim/ecs/component"
	"github.com/milk9111/actionanim/ecs/entity"
	"github.com/milk9111/actionanim/ecs/render"
	"github.com/milk9111/actionanim/ecs/system"
	"github.com/milk9111/actionanim/prefabs"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 960
	baseHeight = 540
)

type Options struct {
	Prefab string
	Sheet  string
	Watch  bool
	Seed   int64
}

type keyBinding struct {
	key    ebiten.Key
	action Action
}

var keyBindings = []keyBinding{
	{ebiten.Key1, ActionIdle},
	{ebiten.Key2, ActionRun},
	{ebiten.Key3, ActionSwing},
}

type Game struct {
	frames int

	world   *ecs.World
	plugin  *system.AnimationPlugin[Action]
	store   *prefabs.Store[Action]
	watcher *prefabs.Watcher
	player  ecs.Entity
	ui      *ebitenui.UI
}

func NewGame(opts Options) (*Game, error) {
	loader := prefabs.DefaultLoader

	spec, err := prefabs.LoadEntityBuildSpec(opts.Prefab)
	if err != nil {
		return nil, err
	}
	anim, ok, err := prefabs.Component[prefabs.AnimationComponentSpec](spec, prefabs.AnimationComponentName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("prefab %s has no %s component", opts.Prefab, prefabs.AnimationComponentName)
	}
	if anim.Clips == "" {
		anim.Clips = anim.Catalog
	}

	store := prefabs.NewStore[Action](loader, actionCodec)
	if err := store.LoadClips(anim.Clips); err != nil {
		return nil, err
	}
	if err := store.LoadCatalog(anim.Catalog); err != nil {
		return nil, err
	}

	cfg, err := prefabs.LoadAnimationConfigSpec()
	if err != nil {
		return nil, err
	}
	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}
	pluginOpts, err := system.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	g := &Game{
		world: ecs.NewWorld(),
		store: store,
	}
	g.plugin = system.NewAnimationPlugin[Action](store, pluginOpts...)
	scripts := system.NewActionScriptSystem[Action](g.plugin.Events, actionCodec)

	if opts.Watch {
		watcher, err := prefabs.WatchLoader(loader)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", loader.Dir, err)
		}
		g.watcher = watcher
		g.world.AddSystem(system.NewAssetReloadSystem(watcher, store, scripts))
		log.Printf("demo: watching %s for changes", loader.Dir)
	}
	g.world.AddSystem(scripts)
	g.plugin.Install(g.world)
	g.world.AddSystem(system.NewSpriteRenderSystem(store))

	table, _ := store.Clips(anim.Clips)
	if opts.Sheet != "" {
		if _, err := render.LoadSheet(loader, anim.Clips, opts.Sheet); err != nil {
			return nil, err
		}
	} else {
		render.RegisterSheet(anim.Clips, GenerateSheet(table, sheetRows(table)))
	}

	binder := entity.PluginBinder[Action]{Plugin: g.plugin, Codec: actionCodec, Clips: store}
	g.player, err = entity.BuildEntity(g.world, opts.Prefab, binder)
	if err != nil {
		return nil, err
	}
	g.ui = NewActionUI(g)
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("demo: close watcher: %v", err)
		}
	}
}

// Send queues an action for the player.
func (g *Game) Send(action Action) {
	g.plugin.Send(g.player, action)
}

func (g *Game) Update() error {
	g.frames++

	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			g.Send(b.action)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.ui.Update()
	g.world.Tick(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	g.world.Draw(screen)
	g.ui.Draw(screen)
	ebitenutil.DebugPrint(screen, g.status())
}

func (g *Game) status() string {
	queued := 0
	if q, ok := g.plugin.Queue(g.world, g.player); ok {
		queued = q.Len()
	}
	s, ok := ecs.Get(g.world, g.player, component.SpriteComponent.Kind())
	if !ok {
		return "player missing"
	}
	p, ok := g.plugin.Playback(g.world, g.player)
	if !ok {
		return "player missing"
	}
	return fmt.Sprintf("keys 1 idle  2 run  3 swing  esc quit\nframe %d  range %d..%d  %s  queued %d  flip_x %v\nTPS %.0f",
		s.Index, p.Range.First, p.Range.Last, p.Mode, queued, s.FlipX, ebiten.ActualTPS())
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
