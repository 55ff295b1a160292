package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/pitd/internal/bsp"
	"github.com/samdwyer/pitd/internal/logger"
	"github.com/samdwyer/pitd/internal/seed"
	"github.com/samdwyer/pitd/internal/telemetry"
)

// Dungeon is a generated map: the tile grid plus the rooms painted on it.
type Dungeon struct {
	*Grid
	Rooms []Room
	Tree  *bsp.Tree // nil for scattered dungeons
	Seed  seed.Seed

	opts     bsp.Options
	maxRooms int
	rng      *rand.Rand
}

// NewDungeon creates a dungeon filled with walls. Generate paints it.
// maxRooms caps the number of rooms kept after carving; 0 keeps them all.
func NewDungeon(opts bsp.Options, maxRooms int) (*Dungeon, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if maxRooms < 0 {
		return nil, fmt.Errorf("%w: got %d", bsp.ErrNegativeRooms, maxRooms)
	}

	return &Dungeon{
		Grid:     NewGrid(opts.Width, opts.Height, TileWall),
		Rooms:    make([]Room, 0),
		opts:     opts,
		maxRooms: maxRooms,
	}, nil
}

// Generate creates the dungeon layout: partition, carve rooms, prune to the
// room cap, then connect sibling subtrees with corridors.
func (d *Dungeon) Generate(ctx context.Context) error {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()
	runID := telemetry.NewRunID()

	tree, err := bsp.GenerateContext(ctx, d.opts)
	if err != nil {
		span.RecordError(err)
		return err
	}
	tree.GenerateRooms()
	carved := tree.Rooms
	if d.maxRooms > 0 {
		if err := tree.Prune(d.maxRooms); err != nil {
			span.RecordError(err)
			return err
		}
	}

	d.Tree = tree
	d.Seed = tree.Seed
	d.rng = tree.Seed.Rand()
	d.Grid = NewGrid(d.opts.Width, d.opts.Height, TileWall)
	d.Rooms = d.Rooms[:0]

	// Leaves reach the grid edge but the outer ring stays wall, so rooms are
	// clipped to the paintable interior; a room entirely on the ring is dropped.
	byLeaf := make(map[int]Room)
	for _, p := range tree.PlacedRooms() {
		rect, ok := p.Intersect(d.Interior())
		if !ok {
			continue
		}
		room := Room{Rect: rect, Leaf: p.Leaf}
		d.Rooms = append(d.Rooms, room)
		byLeaf[p.Leaf] = room
		d.Fill(room.Rect, TileFloor)
	}

	d.connectRooms(bsp.Root, byLeaf)

	span.SetAttributes(
		telemetry.RunIDKey.String(runID),
		attribute.String("dungeon.seed", d.Seed.String()),
		attribute.Int("dungeon.width", d.Width),
		attribute.Int("dungeon.height", d.Height),
		attribute.Int("dungeon.rooms_carved", carved),
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	logger.Component("world").WithFields(logrus.Fields{
		"run_id": runID,
		"seed":   d.Seed.String(),
		"rooms":  len(d.Rooms),
		"pruned": carved - tree.Rooms,
	}).Info("Dungeon generated.")
	return nil
}

// Start returns a passable starting position: the center of the first room,
// else a random floor tile of any room, else the first floor tile of the grid.
// The grid center is returned only when nothing is walkable.
func (d *Dungeon) Start() (int, int) {
	for i, room := range d.Rooms {
		if x, y := room.Center(); d.IsPassable(x, y) {
			return x, y
		}
		if x, y := d.RandomPointInRoom(i); d.IsPassable(x, y) {
			return x, y
		}
	}
	for y := range d.Tiles {
		for x := range d.Tiles[y] {
			if d.Tiles[y][x].IsPassable() {
				return x, y
			}
		}
	}
	return d.Width / 2, d.Height / 2
}

// RoomIndexAt returns the index of the room containing the position, or -1 if not in a room.
func (d *Dungeon) RoomIndexAt(x, y int) int {
	for i, room := range d.Rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}

// RandomPointInRoom returns a random passable point within the specified room.
func (d *Dungeon) RandomPointInRoom(roomIndex int) (int, int) {
	if roomIndex < 0 || roomIndex >= len(d.Rooms) {
		return -1, -1
	}
	room := d.Rooms[roomIndex]

	for i := 0; i < 100; i++ {
		x := room.X + d.rng.Intn(room.Width)
		y := room.Y + d.rng.Intn(room.Height)
		if d.IsPassable(x, y) {
			return x, y
		}
	}
	return room.Center()
}

// connectRooms joins one room of each child subtree, bottom up, so every
// room ends up reachable.
func (d *Dungeon) connectRooms(id int, byLeaf map[int]Room) {
	n := d.Tree.Node(id)
	if n.IsLeaf() {
		return
	}

	d.connectRooms(n.Left, byLeaf)
	d.connectRooms(n.Right, byLeaf)

	left, okLeft := d.firstRoom(n.Left, byLeaf)
	right, okRight := d.firstRoom(n.Right, byLeaf)
	if okLeft && okRight {
		d.carveCorridor(left, right)
	}
}

// firstRoom returns a room from a subtree (any room will do).
func (d *Dungeon) firstRoom(id int, byLeaf map[int]Room) (Room, bool) {
	if room, ok := byLeaf[id]; ok {
		return room, true
	}
	n := d.Tree.Node(id)
	if n.IsLeaf() {
		return Room{}, false
	}
	if room, ok := d.firstRoom(n.Left, byLeaf); ok {
		return room, true
	}
	return d.firstRoom(n.Right, byLeaf)
}

// carveCorridor creates an L-shaped corridor between two room centers.
func (d *Dungeon) carveCorridor(room1, room2 Room) {
	x1, y1 := room1.Center()
	x2, y2 := room2.Center()

	if d.rng.Intn(2) == 0 {
		d.carveHorizontalTunnel(x1, x2, y1)
		d.carveVerticalTunnel(y1, y2, x2)
	} else {
		d.carveVerticalTunnel(y1, y2, x1)
		d.carveHorizontalTunnel(x1, x2, y2)
	}
}

func (d *Dungeon) carveHorizontalTunnel(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if x > 0 && x < d.Width-1 && y > 0 && y < d.Height-1 {
			d.Tiles[y][x].Kind = TileFloor
		}
	}
}

func (d *Dungeon) carveVerticalTunnel(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if x > 0 && x < d.Width-1 && y > 0 && y < d.Height-1 {
			d.Tiles[y][x].Kind = TileFloor
		}
	}
}
