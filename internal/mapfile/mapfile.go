// Package mapfile parses hand-written maps into a tile grid.
//
// A map file has three sections, each opened by a bracketed header and
// closed by its "[/...]" counterpart:
//
//	[mapinfo]
//	size=10,5
//	[/mapinfo]
//	[defs]
//	player=@
//	floor=.
//	wall=#
//	[/defs]
//	[map]
//	##########
//	#@.......#
//	##########
//	[/map]
//
// Characters without a definition become empty tiles.
package mapfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/samdwyer/pitd/internal/geom"
	"github.com/samdwyer/pitd/internal/world"
)

// CellSize is the number of pixels per map cell, used to scale the size entry.
const CellSize = 20

var (
	ErrSyntax = errors.New("map syntax error")
	ErrNoMap  = errors.New("map has no rows")
)

// Tag is the semantic meaning of a defined character.
type Tag string

const (
	TagPlayer Tag = "player"
	TagFloor  Tag = "floor"
	TagWall   Tag = "wall"
)

// Map is a parsed map file.
type Map struct {
	Info        map[string]string
	Cols, Rows  int // from the size entry; zero when absent
	Defs        map[rune]Tag
	Grid        *world.Grid
	Player      geom.Point
	PlayerGlyph rune
}

// PixelSize returns the size entry scaled to pixels.
func (m *Map) PixelSize() (int, int) {
	return m.Cols * CellSize, m.Rows * CellSize
}

// Load parses the map file at path.
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse map %s: %w", path, err)
	}
	return m, nil
}

type section int

const (
	sectionNone section = iota
	sectionInfo
	sectionDefs
	sectionMap
)

type parser struct {
	m    *Map
	mode section
	rows [][]world.Tile
	line int
}

// Parse reads a map from r.
func Parse(r io.Reader) (*Map, error) {
	p := &parser{
		m: &Map{
			Info:        make(map[string]string),
			Defs:        make(map[rune]Tag),
			PlayerGlyph: '@',
		},
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(strings.TrimSpace(scanner.Text())); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(p.rows) == 0 {
		return nil, ErrNoMap
	}
	p.m.Grid = p.grid()
	return p.m, nil
}

func (p *parser) parseLine(line string) error {
	if line == "" {
		return nil
	}

	switch {
	case line == "[mapinfo]":
		p.mode = sectionInfo
		return nil
	case line == "[defs]":
		p.mode = sectionDefs
		return nil
	case line == "[map]":
		p.mode = sectionMap
		return nil
	case strings.HasPrefix(line, "[/"):
		p.mode = sectionNone
		return nil
	}

	switch p.mode {
	case sectionInfo:
		return p.readInfo(line)
	case sectionDefs:
		return p.readDef(line)
	case sectionMap:
		p.readRow(line)
	}
	return nil
}

func (p *parser) readInfo(line string) error {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return p.errorf("expected key=value, got %q", line)
	}
	p.m.Info[key] = value

	if key != "size" {
		return nil
	}
	w, h, ok := strings.Cut(value, ",")
	if !ok {
		return p.errorf("size must be W,H, got %q", value)
	}
	cols, errW := strconv.Atoi(strings.TrimSpace(w))
	rows, errH := strconv.Atoi(strings.TrimSpace(h))
	if errW != nil || errH != nil || cols < 0 || rows < 0 {
		return p.errorf("size must be two non-negative integers, got %q", value)
	}
	p.m.Cols, p.m.Rows = cols, rows
	return nil
}

func (p *parser) readDef(line string) error {
	name, value, ok := strings.Cut(line, "=")
	if !ok {
		return p.errorf("expected tag=char, got %q", line)
	}
	if utf8.RuneCountInString(value) != 1 {
		return p.errorf("definition of %s must be a single character, got %q", name, value)
	}

	tag := Tag(name)
	switch tag {
	case TagPlayer, TagFloor, TagWall:
	default:
		return p.errorf("unknown tag %q", name)
	}

	c, _ := utf8.DecodeRuneInString(value)
	p.m.Defs[c] = tag
	return nil
}

func (p *parser) readRow(line string) {
	y := len(p.rows)
	row := make([]world.Tile, 0, len(line))
	x := 0
	for _, c := range line {
		switch p.m.Defs[c] {
		case TagPlayer:
			p.m.Player = geom.Point{X: x, Y: y}
			p.m.PlayerGlyph = c
			row = append(row, world.Tile{Kind: world.TileFloor})
		case TagFloor:
			row = append(row, world.Tile{Kind: world.TileFloor, Glyph: c})
		case TagWall:
			row = append(row, world.Tile{Kind: world.TileWall, Glyph: c})
		default:
			row = append(row, world.Tile{Kind: world.TileEmpty})
		}
		x++
	}
	p.rows = append(p.rows, row)
}

// grid pads every row to the widest one so the result is rectangular.
func (p *parser) grid() *world.Grid {
	width := 0
	for _, row := range p.rows {
		width = max(width, len(row))
	}

	g := world.NewGrid(width, len(p.rows), world.TileEmpty)
	for y, row := range p.rows {
		copy(g.Tiles[y], row)
	}
	return g
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, p.line, fmt.Sprintf(format, args...))
}
