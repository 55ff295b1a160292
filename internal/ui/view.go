package ui

import (
	"math"

	"github.com/samdwyer/pitd/internal/geom"
	"github.com/samdwyer/pitd/internal/world"
)

// View is everything a frame needs: the grid, the viewer and display flags.
type View struct {
	Grid   *world.Grid
	Viewer geom.Point
	Glyph  rune // viewer glyph
	Radius int  // sight radius, used for distance shading
	Reveal bool // draw every tile regardless of visibility
	Status string
}

// cellKind classifies how a tile should be drawn in a frame.
type cellKind int

const (
	cellHidden cellKind = iota
	cellViewer
	cellVisible
	cellRemembered
)

func (v View) classify(x, y int) cellKind {
	if x == v.Viewer.X && y == v.Viewer.Y {
		return cellViewer
	}
	t := &v.Grid.Tiles[y][x]
	switch {
	case t.Kind == world.TileEmpty:
		return cellHidden
	case v.Reveal || t.Visible:
		return cellVisible
	case t.Explored:
		return cellRemembered
	default:
		return cellHidden
	}
}

// Shade returns a gray level in [0, 200) that fades with distance from the
// viewer. Tiles at the corner of the sight square fade to black.
func Shade(px, py, x, y, radius int) int32 {
	maxDist := math.Sqrt(float64(2 * radius * radius))
	if maxDist == 0 {
		return 0
	}
	dist := math.Hypot(float64(px-x), float64(py-y))
	v := math.Mod((1-dist/maxDist)*200, 200)
	if v < 0 {
		v += 200
	}
	return int32(v)
}
