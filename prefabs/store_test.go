package prefabs

import (
	"os"
	"path/filepath"
	"testing"
)

const storeClips = "frame_width: 8\nframe_height: 8\ncolumns: 4\nclips:\n  idle: { first: 0, last: 1 }\n"

func writeAsset(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestStoreReload(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "hero.clips.yaml", storeClips)
	animPath := writeAsset(t, dir, "hero.anim.yaml", "actions:\n  idle:\n    steps:\n      - { clip: idle, period: 0.5 }\n")

	store := NewStore[testAction](&Loader{Dir: dir}, StringCodec[testAction]{})
	if _, ok := store.Catalog("hero"); ok {
		t.Fatalf("catalog resolved before load")
	}
	if err := store.Load("hero"); err != nil {
		t.Fatalf("load: %v", err)
	}
	before, _ := store.Catalog("hero")

	writeAsset(t, dir, "hero.anim.yaml", "actions:\n  idle:\n    steps:\n      - { clip: idle, period: 0.5 }\n  wave:\n    steps:\n      - { clip: idle, period: 0.1 }\n")
	kind, err := store.Reload(animPath)
	if err != nil || kind != AssetCatalog {
		t.Fatalf("reload = %s, %v", kind, err)
	}

	after, _ := store.Catalog("hero")
	if after == before {
		t.Fatalf("reload did not publish a new catalog")
	}
	if before.Len() != 1 || after.Len() != 2 {
		t.Fatalf("catalog sizes before=%d after=%d, want 1 and 2", before.Len(), after.Len())
	}
	if _, ok := store.Clips("hero"); !ok {
		t.Fatalf("clip table lost on catalog reload")
	}
}

func TestStoreFailedReloadKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	clipsPath := writeAsset(t, dir, "hero.clips.yaml", storeClips)

	store := NewStore[testAction](&Loader{Dir: dir}, StringCodec[testAction]{})
	if err := store.LoadClips("hero"); err != nil {
		t.Fatalf("load: %v", err)
	}
	before, _ := store.Clips("hero")

	writeAsset(t, dir, "hero.clips.yaml", "frame_width: 0\n")
	if _, err := store.Reload(clipsPath); err == nil {
		t.Fatalf("expected reload error")
	}
	after, ok := store.Clips("hero")
	if !ok || after != before {
		t.Fatalf("failed reload replaced the clip table")
	}
}

func TestStoreIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeAsset(t, dir, "notes.yaml", "x: 1\n")
	store := NewStore[testAction](&Loader{Dir: dir}, StringCodec[testAction]{})
	kind, err := store.Reload(path)
	if kind != AssetNone || err != nil {
		t.Fatalf("reload = %s, %v", kind, err)
	}
}

func TestStoreUnload(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "hero.clips.yaml", storeClips)
	writeAsset(t, dir, "hero.anim.yaml", "actions: {}\n")
	store := NewStore[testAction](&Loader{Dir: dir}, StringCodec[testAction]{})
	if err := store.Load("hero"); err != nil {
		t.Fatalf("load: %v", err)
	}
	store.Unload("hero")
	if _, ok := store.Catalog("hero"); ok {
		t.Fatalf("catalog still loaded")
	}
	if _, ok := store.Clips("hero"); ok {
		t.Fatalf("clips still loaded")
	}
}

func TestClassifyAsset(t *testing.T) {
	tests := []struct {
		in   string
		name string
		kind AssetKind
	}{
		{"prefabs/Hero.anim.yaml", "Hero", AssetCatalog},
		{"hero.CLIPS.yaml", "hero", AssetClips},
		{"animation.yaml", "", AssetNone},
		{"scripts/hero.tengo", "", AssetNone},
	}
	for _, tc := range tests {
		name, kind := ClassifyAsset(tc.in)
		if name != tc.name || kind != tc.kind {
			t.Fatalf("ClassifyAsset(%q) = %q, %s; want %q, %s", tc.in, name, kind, tc.name, tc.kind)
		}
	}
}

func TestLoaderPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, ConfigFile, "queue:\n  max_depth: 3\n")
	l := &Loader{Dir: dir, Embedded: embeddedFS{}}

	cfg, err := LoadSpecFrom[AnimationConfigSpec](l, filepath.Join(dir, ConfigFile))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Queue.MaxDepth != 3 {
		t.Fatalf("max_depth = %d, want disk override 3", cfg.Queue.MaxDepth)
	}
	if _, ok := l.ModTime(ConfigFile); !ok {
		t.Fatalf("ModTime missing for disk file")
	}
	if got := l.Rel(filepath.Join(dir, "hero.anim.yaml")); got != "hero.anim.yaml" {
		t.Fatalf("Rel = %q", got)
	}
}
