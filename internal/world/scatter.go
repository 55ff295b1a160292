package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/pitd/internal/geom"
	"github.com/samdwyer/pitd/internal/logger"
	"github.com/samdwyer/pitd/internal/seed"
	"github.com/samdwyer/pitd/internal/telemetry"
)

// ErrInvalidScatter is returned for scatter options that cannot produce a map.
var ErrInvalidScatter = errors.New("invalid scatter options")

// roomPadding is the minimum gap kept between scattered rooms.
const roomPadding = 1

// ScatterOptions configures the scatter generator.
type ScatterOptions struct {
	Width, Height    int
	MinSize, MaxSize int
	Seed             string
}

// Validate reports the first precondition the options violate.
func (o ScatterOptions) Validate() error {
	switch {
	case o.Width < 3 || o.Height < 3:
		return fmt.Errorf("%w: map %dx%d leaves no interior", ErrInvalidScatter, o.Width, o.Height)
	case o.MinSize < 1:
		return fmt.Errorf("%w: min size %d is below 1", ErrInvalidScatter, o.MinSize)
	case o.MaxSize < o.MinSize:
		return fmt.Errorf("%w: max size %d is below min size %d", ErrInvalidScatter, o.MaxSize, o.MinSize)
	case o.MinSize > min(o.Width, o.Height)-2:
		return fmt.Errorf("%w: min size %d does not fit %dx%d", ErrInvalidScatter, o.MinSize, o.Width, o.Height)
	}
	return nil
}

// Scatter generates a dungeon without a partition tree. It sweeps the grid
// proposing random rooms, rejects any that leave the map or come within
// roomPadding of an accepted room, and skips ahead past each room it meets.
// Half of the accepted rooms, chosen by coin flip, are painted and chained
// together with corridors.
func Scatter(ctx context.Context, opts ScatterOptions) (*Dungeon, error) {
	_, span := telemetry.Tracer("world").Start(ctx, "dungeon.scatter")
	defer span.End()

	if err := opts.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s := seed.New(opts.Seed, nil)
	d := &Dungeon{
		Grid:  NewGrid(opts.Width, opts.Height, TileWall),
		Rooms: make([]Room, 0),
		Seed:  s,
		rng:   s.Rand(),
	}

	candidates := d.scatterRects(opts)
	for _, r := range candidates {
		if d.rng.Intn(2) == 1 {
			room := Room{Rect: r, Leaf: -1}
			d.Fill(r, TileFloor)
			if len(d.Rooms) > 0 {
				d.carveCorridor(d.Rooms[len(d.Rooms)-1], room)
			}
			d.Rooms = append(d.Rooms, room)
		}
	}

	runID := telemetry.NewRunID()
	span.SetAttributes(
		telemetry.RunIDKey.String(runID),
		attribute.String("dungeon.seed", s.String()),
		attribute.Int("dungeon.candidates", len(candidates)),
		attribute.Int("dungeon.room_count", len(d.Rooms)),
	)
	logger.Component("world").WithFields(logrus.Fields{
		"run_id":     runID,
		"seed":       s.String(),
		"candidates": len(candidates),
		"rooms":      len(d.Rooms),
	}).Info("Scattered dungeon generated.")
	return d, nil
}

func (d *Dungeon) scatterRects(opts ScatterOptions) []geom.Rect {
	var rects []geom.Rect
	skip := 0
	for y := 1; y < opts.Height-1; y++ {
		for x := 1; x < opts.Width-1; x++ {
			skip = max(0, skip-1)
			if skip != 0 {
				continue
			}

			candidate := geom.Rect{Y: y + between(d.rng, 0, 2), X: x}
			candidate.Width = between(d.rng, opts.MinSize, opts.MaxSize)
			candidate.Height = between(d.rng, opts.MinSize, opts.MaxSize)
			if candidate.IsOutOfBounds(opts.Width, opts.Height) {
				continue
			}

			collided := false
			for _, r := range rects {
				if r.CollidesNear(candidate, roomPadding) {
					collided = true
					skip = r.Width + between(d.rng, 2, 3)
					break
				}
			}
			if !collided {
				rects = append(rects, candidate)
				skip = candidate.Width + between(d.rng, 3, 5)
			}
		}
	}
	return rects
}

func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
