package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/pitd/internal/world"
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the grid, the viewer and the status line. When the terminal
// cannot hold the map, only a notice with the required size is drawn.
func (r *Renderer) Render(v View) {
	if !r.screen.Frame(v.Grid.Width, v.Grid.Height) {
		msg := fmt.Sprintf("terminal too small: need %dx%d", v.Grid.Width, v.Grid.Height+statusRows)
		r.screen.SetText(0, 0, msg, tcell.StyleDefault.Foreground(tcell.ColorRed))
		r.screen.Show()
		return
	}

	for y := 0; y < v.Grid.Height; y++ {
		for x := 0; x < v.Grid.Width; x++ {
			tile := v.Grid.Tiles[y][x]
			switch v.classify(x, y) {
			case cellViewer:
				viewerStyle := tcell.StyleDefault.
					Foreground(tcell.ColorYellow).
					Bold(true)
				r.screen.SetCell(x, y, v.Glyph, viewerStyle)
			case cellVisible:
				r.screen.SetCell(x, y, tile.Rune(), r.visibleStyle(v, x, y, tile))
			case cellRemembered:
				r.screen.SetCell(x, y, tile.Rune(), tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray))
			}
		}
	}

	if v.Status != "" {
		r.RenderMessage(v.Status, v.Grid.Height+1)
	}

	r.screen.Show()
}

// visibleStyle shades a visible tile by its distance to the viewer. Tiles
// drawn only because of reveal mode use their flat kind color.
func (r *Renderer) visibleStyle(v View, x, y int, tile world.Tile) tcell.Style {
	if v.Reveal && !tile.Visible {
		return r.getTileStyle(tile)
	}
	gray := Shade(v.Viewer.X, v.Viewer.Y, x, y, v.Radius)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(gray, gray, gray))
}

// getTileStyle returns the appropriate style for a tile type.
func (r *Renderer) getTileStyle(tile world.Tile) tcell.Style {
	switch tile.Kind {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault
	}
}

// RenderMessage displays a message below the map at the given grid row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetCell(i, y, ch, style)
	}
}
