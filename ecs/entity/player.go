package entity

import (
	"fmt"

	"github.com/milk9111/actionanim/ecs"
)

const PlayerPrefab = "player.yaml"

func NewPlayer(w *ecs.World, binder AnimationBinder) (ecs.Entity, error) {
	return BuildEntity(w, PlayerPrefab, binder)
}

func NewPlayerAt(w *ecs.World, binder AnimationBinder, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, PlayerPrefab, binder)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return entity, nil
}
