// Package world provides the tile grid and paints generated dungeons onto it.
package world

// TileKind is the semantic type of a tile.
type TileKind int

const (
	// TileEmpty is void: not walkable, but it does not block sight.
	TileEmpty TileKind = iota
	// TileFloor is a walkable, transparent tile.
	TileFloor
	// TileWall is an impassable, opaque tile.
	TileWall
)

// String returns the tag used for the kind in map files.
func (k TileKind) String() string {
	switch k {
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	default:
		return "empty"
	}
}

// Tile is a single map cell.
type Tile struct {
	Kind     TileKind
	Glyph    rune // display character; zero means the kind's default
	Visible  bool
	Explored bool // latched once the tile has been seen
}

// IsOpaque reports whether the tile blocks sight.
func (t *Tile) IsOpaque() bool {
	return t.Kind == TileWall
}

// SetVisible updates the visibility flag.
func (t *Tile) SetVisible(visible bool) {
	t.Visible = visible
	if visible {
		t.Explored = true
	}
}

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t.Kind == TileFloor
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	if t.Glyph != 0 {
		return t.Glyph
	}
	switch t.Kind {
	case TileWall:
		return '#'
	case TileFloor:
		return '.'
	default:
		return ' '
	}
}
