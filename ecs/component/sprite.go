package component

// Sprite is the frame sink written by the animation systems. Index addresses a
// frame on the sheet registered under the entity's clip table name.
type Sprite struct {
	Index   uint
	FlipX   bool
	FlipY   bool
	OriginX float64
	OriginY float64
}

var SpriteComponent = NewComponent[Sprite]()
