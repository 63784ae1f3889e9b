package prefabs

import (
	"fmt"
	"log"
	"maps"
	"path"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/milk9111/actionanim/ecs/component"
)

// AssetKind tells which table a file feeds.
type AssetKind int

const (
	AssetNone AssetKind = iota
	AssetCatalog
	AssetClips
)

func (k AssetKind) String() string {
	switch k {
	case AssetCatalog:
		return "catalog"
	case AssetClips:
		return "clips"
	default:
		return "none"
	}
}

// ClassifyAsset returns the handle name and kind for an asset file name.
func ClassifyAsset(name string) (string, AssetKind) {
	base := path.Base(name)
	lower := strings.ToLower(base)
	switch {
	case strings.HasSuffix(lower, animSuffix):
		return base[:len(base)-len(animSuffix)], AssetCatalog
	case strings.HasSuffix(lower, clipsSuffix):
		return base[:len(base)-len(clipsSuffix)], AssetClips
	default:
		return "", AssetNone
	}
}

type storeSnapshot[T comparable] struct {
	catalogs map[string]*component.Catalog[T]
	clips    map[string]*component.ClipTable
}

// Store holds loaded catalogs and clip tables by handle name. Readers see an
// immutable snapshot; every load publishes a new one.
type Store[T comparable] struct {
	loader *Loader
	codec  ActionCodec[T]

	mu    sync.Mutex
	state atomic.Pointer[storeSnapshot[T]]
}

func NewStore[T comparable](loader *Loader, codec ActionCodec[T]) *Store[T] {
	if loader == nil {
		loader = DefaultLoader
	}
	s := &Store[T]{loader: loader, codec: codec}
	s.state.Store(&storeSnapshot[T]{
		catalogs: map[string]*component.Catalog[T]{},
		clips:    map[string]*component.ClipTable{},
	})
	return s
}

func (s *Store[T]) Loader() *Loader {
	return s.loader
}

// Catalog returns the catalog loaded under name.
func (s *Store[T]) Catalog(name string) (*component.Catalog[T], bool) {
	c, ok := s.state.Load().catalogs[name]
	return c, ok
}

// Clips returns the clip table loaded under name.
func (s *Store[T]) Clips(name string) (*component.ClipTable, bool) {
	t, ok := s.state.Load().clips[name]
	return t, ok
}

// Load reads both assets of a handle.
func (s *Store[T]) Load(name string) error {
	if err := s.LoadClips(name); err != nil {
		return err
	}
	return s.LoadCatalog(name)
}

func (s *Store[T]) LoadCatalog(name string) error {
	spec, err := LoadSpecFrom[AnimationCatalogSpec](s.loader, AnimFile(name))
	if err != nil {
		return err
	}
	catalog, err := BuildCatalog(spec, s.codec)
	if err != nil {
		return fmt.Errorf("prefabs: build %s: %w", AnimFile(name), err)
	}
	s.publish(func(next *storeSnapshot[T]) {
		next.catalogs[name] = catalog
	})
	return nil
}

func (s *Store[T]) LoadClips(name string) error {
	spec, err := LoadSpecFrom[ClipSheetSpec](s.loader, ClipsFile(name))
	if err != nil {
		return err
	}
	table, err := BuildClipTable(spec)
	if err != nil {
		return fmt.Errorf("prefabs: build %s: %w", ClipsFile(name), err)
	}
	s.publish(func(next *storeSnapshot[T]) {
		next.clips[name] = table
	})
	return nil
}

// Unload drops both assets of a handle. Entities bound to it pause until it
// is loaded again.
func (s *Store[T]) Unload(name string) {
	s.publish(func(next *storeSnapshot[T]) {
		delete(next.catalogs, name)
		delete(next.clips, name)
	})
}

// Reload re-reads the asset behind a changed file. Files that are not
// animation assets are ignored. A failed reload keeps the previous version.
func (s *Store[T]) Reload(file string) (AssetKind, error) {
	rel := s.loader.Rel(file)
	if rel == "" {
		rel = file
	}
	name, kind := ClassifyAsset(rel)
	var err error
	switch kind {
	case AssetCatalog:
		err = s.LoadCatalog(name)
	case AssetClips:
		err = s.LoadClips(name)
	default:
		return AssetNone, nil
	}
	if err != nil {
		return kind, err
	}
	log.Printf("prefabs: reloaded %s %s", kind, name)
	return kind, nil
}

func (s *Store[T]) publish(mutate func(next *storeSnapshot[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.state.Load()
	next := &storeSnapshot[T]{
		catalogs: maps.Clone(cur.catalogs),
		clips:    maps.Clone(cur.clips),
	}
	mutate(next)
	s.state.Store(next)
}
