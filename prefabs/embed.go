package prefabs

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

const (
	ConfigFile   = "animation.yaml"
	clipsSuffix  = ".clips.yaml"
	animSuffix   = ".anim.yaml"
	defaultDir   = "prefabs"
	scriptPrefix = "scripts/"
)

// ClipsFile names the clip sheet asset for a handle.
func ClipsFile(name string) string { return name + clipsSuffix }

// AnimFile names the animation catalog asset for a handle.
func AnimFile(name string) string { return name + animSuffix }

// Loader reads assets from Dir on disk and falls back to the embedded copies,
// so edited files override the built-in ones.
type Loader struct {
	Dir      string
	Embedded fs.FS
}

// DefaultLoader reads ./prefabs, then the files compiled into the binary.
var DefaultLoader = &Loader{Dir: defaultDir, Embedded: embeddedFS{}}

// Load is DefaultLoader.Load.
func Load(name string) ([]byte, error) {
	return DefaultLoader.Load(name)
}

// LoadScript reads a tengo script from scripts/ on disk or from the binary.
func LoadScript(name string) ([]byte, error) {
	return DefaultLoader.Load(cleanScriptPath(name))
}

func (l *Loader) Load(name string) ([]byte, error) {
	clean := l.clean(name)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty asset name", fs.ErrNotExist)
	}
	if l.Dir != "" {
		if data, err := os.ReadFile(l.diskPath(clean)); err == nil {
			return data, nil
		}
	}
	if l.Embedded == nil {
		return nil, fmt.Errorf("%s: %w", clean, fs.ErrNotExist)
	}
	return fs.ReadFile(l.Embedded, clean)
}

func (l *Loader) ModTime(name string) (time.Time, bool) {
	if l.Dir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(l.diskPath(l.clean(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Rel maps a path reported by the file watcher to an asset name, or "" if the
// path is outside Dir.
func (l *Loader) Rel(path string) string {
	if l.Dir == "" {
		return ""
	}
	rel, err := filepath.Rel(l.Dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}

func (l *Loader) clean(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if l.Dir != "" {
		if after, ok := strings.CutPrefix(s, filepath.ToSlash(l.Dir)+"/"); ok {
			return after
		}
	}
	return s
}

func (l *Loader) diskPath(clean string) string {
	return filepath.Join(l.Dir, filepath.FromSlash(clean))
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, scriptPrefix); ok {
		s = after
	}

	return scriptPrefix + s
}

// embeddedFS merges the yaml and script embeds.
type embeddedFS struct{}

func (embeddedFS) Open(name string) (fs.File, error) {
	if strings.HasPrefix(name, scriptPrefix) {
		return ScriptsFS.Open(name)
	}
	return PrefabsFS.Open(name)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
