package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/actionanim/prefabs"
)

// LoadSheet decodes a PNG through loader and registers it under name.
// A sheet already registered under name is returned as is.
func LoadSheet(loader *prefabs.Loader, name, file string) (*ebiten.Image, error) {
	if name == "" {
		return nil, fmt.Errorf("render: empty sheet name")
	}
	if img := GetSheet(name); img != nil {
		return img, nil
	}
	if loader == nil {
		loader = prefabs.DefaultLoader
	}
	data, err := loader.Load(file)
	if err != nil {
		return nil, fmt.Errorf("render: load sheet %s: %w", file, err)
	}
	im, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("render: decode sheet %s: %w", file, err)
	}
	img := ebiten.NewImageFromImage(im)
	RegisterSheet(name, img)
	return img, nil
}
