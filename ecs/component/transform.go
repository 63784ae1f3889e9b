package component

type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

// Scale returns the scale factors, treating zero as 1.
func (t Transform) Scale() (float64, float64) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

var TransformComponent = NewComponent[Transform]()
