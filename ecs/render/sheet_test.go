package render

import (
	"image"
	"testing"

	"github.com/milk9111/actionanim/ecs/component"
)

func TestFrameRect(t *testing.T) {
	table := component.NewClipTable(16, 8, 4, nil)

	tests := []struct {
		index uint
		want  image.Rectangle
	}{
		{0, image.Rect(0, 0, 16, 8)},
		{3, image.Rect(48, 0, 64, 8)},
		{4, image.Rect(0, 8, 16, 16)},
		{9, image.Rect(16, 16, 32, 24)},
	}
	for _, tc := range tests {
		got, ok := FrameRect(table, tc.index)
		if !ok || got != tc.want {
			t.Fatalf("FrameRect(%d) = %v, %v; want %v", tc.index, got, ok, tc.want)
		}
	}

	if _, ok := FrameRect(component.NewClipTable(16, 8, 0, nil), 0); ok {
		t.Fatalf("zero columns should be rejected")
	}
	if _, ok := FrameRect(nil, 0); ok {
		t.Fatalf("nil table should be rejected")
	}
}

func TestFlipGeoM(t *testing.T) {
	tests := []struct {
		name         string
		flipX, flipY bool
		inX, inY     float64
		wantX, wantY float64
	}{
		{"none", false, false, 2, 3, 2, 3},
		{"x", true, false, 0, 3, 16, 3},
		{"y", false, true, 2, 0, 2, 8},
		{"both", true, true, 16, 8, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := FlipGeoM(16, 8, tc.flipX, tc.flipY)
			x, y := m.Apply(tc.inX, tc.inY)
			if x != tc.wantX || y != tc.wantY {
				t.Fatalf("Apply(%v, %v) = (%v, %v), want (%v, %v)", tc.inX, tc.inY, x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestUnregisteredSheetYieldsNoFrame(t *testing.T) {
	if GetSheet("no_such_clips") != nil {
		t.Fatalf("expected no sheet for an unregistered clip table")
	}
	RegisterSheet("no_such_clips", nil)
	if GetSheet("no_such_clips") != nil {
		t.Fatalf("nil sheet must not be registered")
	}
	if _, ok := Frame(GetSheet("no_such_clips"), component.NewClipTable(16, 8, 4, nil), 0); ok {
		t.Fatalf("frame from a missing sheet should be rejected")
	}
}
