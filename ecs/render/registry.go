package render

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	sheetsMu sync.RWMutex
	sheets   = map[string]*ebiten.Image{}
)

// RegisterSheet stores a sprite sheet under a clip table handle.
func RegisterSheet(name string, img *ebiten.Image) {
	if name == "" || img == nil {
		return
	}
	sheetsMu.Lock()
	sheets[name] = img
	sheetsMu.Unlock()
}

// GetSheet returns the sheet registered under name.
func GetSheet(name string) *ebiten.Image {
	if name == "" {
		return nil
	}
	sheetsMu.RLock()
	defer sheetsMu.RUnlock()
	return sheets[name]
}
