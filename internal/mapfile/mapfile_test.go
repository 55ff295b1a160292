package mapfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samdwyer/pitd/internal/fov"
	"github.com/samdwyer/pitd/internal/geom"
	"github.com/samdwyer/pitd/internal/world"
)

const testMap = `
[mapinfo]
name=test room
size=7,5
[/mapinfo]

[defs]
player=@
floor=.
wall=#
[/defs]

[map]
#######
#@....#
#..#..#
#.....#
####
[/map]
`

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader(testMap))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if m.Info["name"] != "test room" {
		t.Errorf("name = %q", m.Info["name"])
	}
	if m.Cols != 7 || m.Rows != 5 {
		t.Errorf("size = %dx%d, want 7x5", m.Cols, m.Rows)
	}
	if w, h := m.PixelSize(); w != 140 || h != 100 {
		t.Errorf("PixelSize() = %dx%d, want 140x100", w, h)
	}
	if m.Player != (geom.Point{X: 1, Y: 1}) || m.PlayerGlyph != '@' {
		t.Errorf("player = %v %q", m.Player, m.PlayerGlyph)
	}

	g := m.Grid
	if g.Width != 7 || g.Height != 5 {
		t.Fatalf("grid = %dx%d, want 7x5", g.Width, g.Height)
	}
	if g.At(1, 1).Kind != world.TileFloor {
		t.Error("player tile should be floor")
	}
	if g.At(3, 2).Kind != world.TileWall || g.At(3, 2).Rune() != '#' {
		t.Error("expected wall at (3,2)")
	}
	// Short last row is padded with empty tiles.
	if g.At(5, 4).Kind != world.TileEmpty {
		t.Errorf("padding tile kind = %v, want empty", g.At(5, 4).Kind)
	}
}

func TestParseUndefinedCharIsEmpty(t *testing.T) {
	m, err := Parse(strings.NewReader("[defs]\nwall=#\n[/defs]\n[map]\n#~#\n[/map]\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tile := m.Grid.At(1, 0)
	if tile.Kind != world.TileEmpty || tile.IsOpaque() || tile.IsPassable() {
		t.Errorf("undefined char tile = %+v, want empty", *tile)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"bad size", "[mapinfo]\nsize=7\n[/mapinfo]\n[map]\n#\n[/map]", ErrSyntax},
		{"non numeric size", "[mapinfo]\nsize=a,b\n[/mapinfo]\n[map]\n#\n[/map]", ErrSyntax},
		{"unknown tag", "[defs]\ndoor=+\n[/defs]\n[map]\n#\n[/map]", ErrSyntax},
		{"long def", "[defs]\nwall=##\n[/defs]\n[map]\n#\n[/map]", ErrSyntax},
		{"no rows", "[mapinfo]\nsize=1,1\n[/mapinfo]\n", ErrNoMap},
	}
	for _, tt := range tests {
		if _, err := Parse(strings.NewReader(tt.input)); !errors.Is(err, tt.want) {
			t.Errorf("%s: Parse() = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestLoadFeedsFieldOfView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.map")
	if err := os.WriteFile(path, []byte(testMap), 0o644); err != nil {
		t.Fatalf("write map: %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	caster, _ := fov.New(5)
	if _, err := caster.Compute(m.Player.X, m.Player.Y, m.Grid); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !m.Grid.At(m.Player.X, m.Player.Y).Visible {
		t.Error("player tile should be visible")
	}
	if !m.Grid.At(3, 2).Visible {
		t.Error("pillar should be visible from the player")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.map")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}
