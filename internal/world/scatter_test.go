package world

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/samdwyer/pitd/internal/geom"
)

func scatterOptions(seed string) ScatterOptions {
	return ScatterOptions{Width: 60, Height: 40, MinSize: 4, MaxSize: 8, Seed: seed}
}

func TestScatterRoomsAreSpacedAndInBounds(t *testing.T) {
	for i := 0; i < 10; i++ {
		opts := scatterOptions(fmt.Sprintf("scatter-%d", i))
		d, err := Scatter(context.Background(), opts)
		if err != nil {
			t.Fatalf("Scatter: %v", err)
		}
		if len(d.Rooms) == 0 {
			t.Fatalf("scatter-%d: no rooms", i)
		}

		for j, room := range d.Rooms {
			if room.Leaf != -1 {
				t.Errorf("scattered room has leaf %d", room.Leaf)
			}
			if room.IsOutOfBounds(opts.Width, opts.Height) {
				t.Errorf("scatter-%d: room %+v out of bounds", i, room.Rect)
			}
			if room.Width < opts.MinSize || room.Width > opts.MaxSize ||
				room.Height < opts.MinSize || room.Height > opts.MaxSize {
				t.Errorf("scatter-%d: room %+v outside size range", i, room.Rect)
			}
			for _, other := range d.Rooms[j+1:] {
				if room.CollidesNear(other.Rect, roomPadding) {
					t.Errorf("scatter-%d: rooms %+v and %+v are too close", i, room.Rect, other.Rect)
				}
			}
		}
	}
}

func TestScatterIsConnectedAndReproducible(t *testing.T) {
	a, err := Scatter(context.Background(), scatterOptions("hello world"))
	if err != nil {
		t.Fatalf("Scatter: %v", err)
	}
	b, _ := Scatter(context.Background(), scatterOptions("hello world"))

	if len(a.Rooms) != len(b.Rooms) {
		t.Fatalf("room counts differ: %d != %d", len(a.Rooms), len(b.Rooms))
	}
	for i := range a.Rooms {
		if a.Rooms[i] != b.Rooms[i] {
			t.Errorf("room %d differs: %+v != %+v", i, a.Rooms[i], b.Rooms[i])
		}
	}
	if a.Tree != nil {
		t.Error("scattered dungeon should not carry a tree")
	}

	sx, sy := a.Start()
	reachable := a.Reachable(sx, sy)
	for _, room := range a.Rooms {
		cx, cy := room.Center()
		if !reachable.Has(geom.Point{X: cx, Y: cy}) {
			t.Errorf("room %+v unreachable", room.Rect)
		}
	}
}

func TestScatterValidation(t *testing.T) {
	tests := []ScatterOptions{
		{Width: 2, Height: 10, MinSize: 1, MaxSize: 1},
		{Width: 10, Height: 10, MinSize: 0, MaxSize: 3},
		{Width: 10, Height: 10, MinSize: 4, MaxSize: 3},
		{Width: 10, Height: 10, MinSize: 9, MaxSize: 9},
	}
	for _, opts := range tests {
		if _, err := Scatter(context.Background(), opts); !errors.Is(err, ErrInvalidScatter) {
			t.Errorf("Scatter(%+v) = %v, want ErrInvalidScatter", opts, err)
		}
	}
}

func TestTileCapabilities(t *testing.T) {
	wall := Tile{Kind: TileWall}
	floor := Tile{Kind: TileFloor}
	empty := Tile{Kind: TileEmpty}

	if !wall.IsOpaque() || floor.IsOpaque() || empty.IsOpaque() {
		t.Error("only walls should be opaque")
	}
	if wall.IsPassable() || !floor.IsPassable() || empty.IsPassable() {
		t.Error("only floors should be passable")
	}
	if wall.Rune() != '#' || floor.Rune() != '.' || empty.Rune() != ' ' {
		t.Error("unexpected default glyphs")
	}
	if (Tile{Kind: TileWall, Glyph: 'X'}).Rune() != 'X' {
		t.Error("explicit glyph should win")
	}

	floor.SetVisible(true)
	floor.SetVisible(false)
	if floor.Visible || !floor.Explored {
		t.Error("explored should latch after the tile is seen")
	}
}
