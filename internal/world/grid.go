package world

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/pitd/internal/fov"
	"github.com/samdwyer/pitd/internal/geom"
)

// Grid is a rectangular field of tiles, indexed Tiles[y][x].
type Grid struct {
	Width  int
	Height int
	Tiles  [][]Tile
}

// NewGrid creates a grid filled with tiles of the given kind.
func NewGrid(width, height int, kind TileKind) *Grid {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = Tile{Kind: kind}
		}
	}
	return &Grid{Width: width, Height: height, Tiles: tiles}
}

// Size implements fov.Grid.
func (g *Grid) Size() (int, int) {
	return g.Width, g.Height
}

// Cell implements fov.Grid.
func (g *Grid) Cell(x, y int) fov.Cell {
	return &g.Tiles[y][x]
}

// InBounds reports whether x, y lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at x, y, or nil when out of bounds.
func (g *Grid) At(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.Tiles[y][x]
}

// IsPassable returns true if the given position can be walked on.
func (g *Grid) IsPassable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.Tiles[y][x].IsPassable()
}

// ClearVisibility marks every tile not visible. Explored flags are kept.
func (g *Grid) ClearVisibility() {
	for y := range g.Tiles {
		for x := range g.Tiles[y] {
			g.Tiles[y][x].Visible = false
		}
	}
}

// Interior returns the area inside the outermost ring of the grid.
func (g *Grid) Interior() geom.Rect {
	return geom.Rect{X: 1, Y: 1, Width: g.Width - 2, Height: g.Height - 2}
}

// Fill sets every tile inside r to kind, leaving the outermost ring of the
// grid untouched.
func (g *Grid) Fill(r geom.Rect, kind TileKind) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			if x > 0 && x < g.Width-1 && y > 0 && y < g.Height-1 {
				g.Tiles[y][x].Kind = kind
			}
		}
	}
}

// Count returns the number of tiles of the given kind.
func (g *Grid) Count(kind TileKind) int {
	n := 0
	for y := range g.Tiles {
		for x := range g.Tiles[y] {
			if g.Tiles[y][x].Kind == kind {
				n++
			}
		}
	}
	return n
}

// Reachable returns every passable position connected to x, y through
// orthogonal steps, including x, y itself when it is passable.
func (g *Grid) Reachable(x, y int) mapset.Set[geom.Point] {
	visited := mapset.New[geom.Point]()
	if !g.IsPassable(x, y) {
		return visited
	}

	queue := []geom.Point{{X: x, Y: y}}
	visited.Put(queue[0])
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, step := range [4]geom.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
			next := geom.Point{X: current.X + step.X, Y: current.Y + step.Y}
			if visited.Has(next) || !g.IsPassable(next.X, next.Y) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}
	return visited
}
