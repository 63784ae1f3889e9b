package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/actionanim/ecs/component"
)

// FrameRect returns the pixel rectangle of frame index on a sheet laid out
// row-major with table's geometry. ok is false for an unusable geometry.
func FrameRect(table *component.ClipTable, index uint) (image.Rectangle, bool) {
	if table == nil || table.FrameWidth <= 0 || table.FrameHeight <= 0 || table.Columns <= 0 {
		return image.Rectangle{}, false
	}
	col := int(index % uint(table.Columns))
	row := int(index / uint(table.Columns))
	x := col * table.FrameWidth
	y := row * table.FrameHeight
	return image.Rect(x, y, x+table.FrameWidth, y+table.FrameHeight), true
}

// Frame cuts frame index out of sheet. ok is false when the frame lies outside it.
func Frame(sheet *ebiten.Image, table *component.ClipTable, index uint) (*ebiten.Image, bool) {
	if sheet == nil {
		return nil, false
	}
	rect, ok := FrameRect(table, index)
	if !ok || !rect.In(sheet.Bounds()) {
		return nil, false
	}
	sub, ok := sheet.SubImage(rect).(*ebiten.Image)
	return sub, ok
}

// FlipGeoM mirrors a w by h frame in place, so the flipped frame covers the
// same rectangle as the original.
func FlipGeoM(w, h int, flipX, flipY bool) ebiten.GeoM {
	var m ebiten.GeoM
	sx, sy := 1.0, 1.0
	if flipX {
		sx = -1
	}
	if flipY {
		sy = -1
	}
	m.Scale(sx, sy)
	tx, ty := 0.0, 0.0
	if flipX {
		tx = float64(w)
	}
	if flipY {
		ty = float64(h)
	}
	m.Translate(tx, ty)
	return m
}
