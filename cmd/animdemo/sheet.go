package main

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/actionanim/ecs/component"
	"golang.org/x/image/colornames"
)

// rowColors tints each sheet row so clips are easy to tell apart.
var rowColors = []color.RGBA{
	colornames.Steelblue,
	colornames.Orange,
	colornames.Crimson,
	colornames.Seagreen,
}

// GenerateSheet draws a placeholder sheet matching table's geometry: every
// frame is a body with an arm whose angle follows the column, so frame order
// and horizontal flips are visible.
func GenerateSheet(table *component.ClipTable, rows int) *ebiten.Image {
	fw, fh, cols := table.FrameWidth, table.FrameHeight, table.Columns
	img := image.NewRGBA(image.Rect(0, 0, cols*fw, rows*fh))

	for row := 0; row < rows; row++ {
		body := rowColors[row%len(rowColors)]
		for col := 0; col < cols; col++ {
			ox, oy := col*fw, row*fh
			bodyRect := image.Rect(ox+fw/4, oy+fh/4, ox+fw/2, oy+fh-2)
			draw.Draw(img, bodyRect, &image.Uniform{body}, image.Point{}, draw.Src)

			head := image.Rect(ox+fw/4, oy+2, ox+fw/2, oy+fh/4)
			draw.Draw(img, head, &image.Uniform{colornames.Wheat}, image.Point{}, draw.Src)

			angle := -math.Pi/2 + float64(col)*math.Pi/float64(cols)
			drawArm(img, ox+fw/2, oy+fh/2, fw/2-2, angle, colornames.White)
		}
	}
	return ebiten.NewImageFromImage(img)
}

func drawArm(img *image.RGBA, x0, y0, length int, angle float64, c color.Color) {
	for i := 0; i <= length; i++ {
		x := x0 + int(math.Round(float64(i)*math.Cos(angle)))
		y := y0 + int(math.Round(float64(i)*math.Sin(angle)))
		img.Set(x, y, c)
	}
}

// sheetRows is how many rows a table's clips reach.
func sheetRows(table *component.ClipTable) int {
	var last uint
	for _, id := range table.IDs() {
		r, _ := table.Lookup(id)
		last = max(last, r.First, r.Last)
	}
	return int(last)/table.Columns + 1
}
