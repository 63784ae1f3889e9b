package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	prefab := flag.String("prefab", "player.yaml", "entity prefab in prefabs/")
	sheet := flag.String("sheet", "", "PNG sprite sheet in prefabs/ (a generated sheet is used when empty)")
	watch := flag.Bool("watch", false, "reload prefabs/ when files change")
	seed := flag.Int64("seed", 0, "random seed for shuffled and random_pick orderings (0 uses animation.yaml)")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("actionanim")

	game, err := NewGame(Options{
		Prefab: *prefab,
		Sheet:  *sheet,
		Watch:  *watch,
		Seed:   *seed,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
