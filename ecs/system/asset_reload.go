package system

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/actionanim/ecs"
	"github.com/milk9111/actionanim/prefabs"
)

// ChangeSource reports changed files without blocking. *prefabs.Watcher is one.
type ChangeSource interface {
	Poll() []string
}

// AssetReloader re-reads the asset behind a file. *prefabs.Store is one.
type AssetReloader interface {
	Reload(file string) (prefabs.AssetKind, error)
}

// ScriptInvalidator forgets compiled scripts loaded from a file.
type ScriptInvalidator interface {
	Invalidate(file string)
}

// AssetReloadSystem applies file changes at the start of a tick, so the
// animation stages never see a table change halfway through a tick.
type AssetReloadSystem struct {
	source  ChangeSource
	store   AssetReloader
	scripts []ScriptInvalidator
}

func NewAssetReloadSystem(source ChangeSource, store AssetReloader, scripts ...ScriptInvalidator) *AssetReloadSystem {
	return &AssetReloadSystem{source: source, store: store, scripts: scripts}
}

func (s *AssetReloadSystem) Update(w *ecs.World) {
	if s == nil || s.source == nil {
		return
	}
	for _, file := range s.source.Poll() {
		if strings.EqualFold(filepath.Ext(file), ".tengo") {
			for _, inv := range s.scripts {
				if inv != nil {
					inv.Invalidate(file)
				}
			}
			log.Printf("reload: script %s", file)
			continue
		}
		if s.store == nil {
			continue
		}
		if _, err := s.store.Reload(file); err != nil {
			log.Printf("reload: %s: %v (keeping previous version)", file, err)
		}
	}
}
