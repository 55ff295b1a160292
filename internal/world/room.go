package world

import "github.com/samdwyer/pitd/internal/geom"

// Room is a carved room in absolute grid coordinates.
type Room struct {
	geom.Rect
	Leaf int // owning BSP leaf, or -1 for rooms placed without a tree
}
