package ui

import (
	"bufio"
	"io"

	"github.com/gookit/color"

	"github.com/samdwyer/pitd/internal/world"
)

var (
	dumpWall       = color.Style{color.FgGray}
	dumpFloor      = color.Style{color.FgWhite}
	dumpViewer     = color.Style{color.FgYellow, color.OpBold}
	dumpRemembered = color.Style{color.FgDarkGray}
)

// Dump writes the view as text, one line per grid row. Styles are emitted
// only when gookit/color detects a color-capable output.
func Dump(w io.Writer, v View) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < v.Grid.Height; y++ {
		for x := 0; x < v.Grid.Width; x++ {
			tile := v.Grid.Tiles[y][x]
			switch v.classify(x, y) {
			case cellViewer:
				bw.WriteString(dumpViewer.Sprint(string(v.Glyph)))
			case cellVisible:
				bw.WriteString(dumpStyle(tile).Sprint(string(tile.Rune())))
			case cellRemembered:
				bw.WriteString(dumpRemembered.Sprint(string(tile.Rune())))
			default:
				bw.WriteByte(' ')
			}
		}
		bw.WriteByte('\n')
	}
	if v.Status != "" {
		bw.WriteString(v.Status)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func dumpStyle(tile world.Tile) color.Style {
	if tile.Kind == world.TileWall {
		return dumpWall
	}
	return dumpFloor
}
