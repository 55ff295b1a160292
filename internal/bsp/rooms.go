package bsp

import (
	"fmt"

	"github.com/samdwyer/pitd/internal/geom"
)

// GenerateRooms carves one room into every leaf larger than MinRoomSize on
// both axes. Rooms are placed at a random offset, so margins are uneven.
// Any previously carved rooms are discarded first.
func (t *Tree) GenerateRooms() {
	minSize := t.opts.MinRoomSize
	t.Rooms = 0

	for _, id := range t.Leaves() {
		n := &t.Nodes[id]
		n.Room = nil
		if n.Width <= minSize || n.Height <= minSize {
			continue
		}

		maxWidth, maxHeight := n.Width, n.Height
		if t.opts.MaxRoomSize > 0 {
			maxWidth, maxHeight = t.opts.MaxRoomSize, t.opts.MaxRoomSize
		}

		width := clamp(t.between(minSize, maxWidth), minSize, n.Width)
		height := clamp(t.between(minSize, maxHeight), minSize, n.Height)

		n.Room = &geom.Rect{
			X:      t.between(0, n.Width-width),
			Y:      t.between(0, n.Height-height),
			Width:  width,
			Height: height,
		}
		t.Rooms++
	}
}

// Prune removes rooms until at most maxRooms remain. Each pass walks the
// leaves and drops a room on a coin flip; a pass that drops nothing removes
// the first remaining room so every pass makes progress.
func (t *Tree) Prune(maxRooms int) error {
	if maxRooms < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeRooms, maxRooms)
	}

	for t.Rooms > maxRooms {
		removed := false
		leaves := t.Leaves()
		for _, id := range leaves {
			if t.Rooms <= maxRooms {
				break
			}
			if t.Nodes[id].Room != nil && t.coin() {
				t.removeRoom(id)
				removed = true
			}
		}
		if removed {
			continue
		}
		for _, id := range leaves {
			if t.Nodes[id].Room != nil {
				t.removeRoom(id)
				break
			}
		}
	}
	return nil
}

func (t *Tree) removeRoom(id int) {
	t.Nodes[id].Room = nil
	t.Rooms--
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
