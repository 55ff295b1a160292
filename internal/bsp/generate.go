package bsp

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/pitd/internal/logger"
	"github.com/samdwyer/pitd/internal/seed"
	"github.com/samdwyer/pitd/internal/telemetry"
)

// Generate partitions a Width x Height area. The root is always split once;
// every other node splits until it reaches MaxDepth or is too small to hold
// two regions of MinRoomSize along either axis. Rooms are carved separately
// by GenerateRooms.
func Generate(opts Options) (*Tree, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s := seed.New(opts.Seed, nil)
	t := &Tree{
		Seed: s,
		opts: opts,
		rng:  s.Rand(),
	}

	root := t.add(Node{
		IsRoot: true,
		Width:  opts.Width,
		Height: opts.Height,
		Left:   NoNode,
		Right:  NoNode,
		Parent: NoNode,
	})

	horizontal := t.coin()
	var left, right int
	if horizontal {
		left, right = t.branch(root, true, t.between(opts.MinRoomSize, opts.Width))
	} else {
		left, right = t.branch(root, false, t.between(opts.MinRoomSize, opts.Height))
	}

	t.split(left, 1)
	t.split(right, 1)
	return t, nil
}

// GenerateContext is Generate wrapped in a trace span.
func GenerateContext(ctx context.Context, opts Options) (*Tree, error) {
	_, span := telemetry.Tracer("bsp").Start(ctx, "bsp.generate")
	defer span.End()

	start := time.Now()
	t, err := Generate(opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("bsp.seed", t.Seed.String()),
		attribute.Int("bsp.width", opts.Width),
		attribute.Int("bsp.height", opts.Height),
		attribute.Int("bsp.max_depth", opts.MaxDepth),
		attribute.Int("bsp.nodes", len(t.Nodes)),
		attribute.Int64("bsp.generation_us", time.Since(start).Microseconds()),
	)
	logger.Component("bsp").WithFields(logrus.Fields{
		"seed":  t.Seed.String(),
		"hash":  t.Seed.Value(),
		"nodes": len(t.Nodes),
	}).Debug("Partition generated.")
	return t, nil
}

func (t *Tree) split(id, depth int) {
	if depth >= t.opts.MaxDepth {
		return
	}

	n := t.Nodes[id]
	minSize := t.opts.MinRoomSize
	maxWidth := n.Width - minSize
	maxHeight := n.Height - minSize

	canWidth := maxWidth >= minSize
	canHeight := maxHeight >= minSize
	if !canWidth && !canHeight {
		return
	}

	// Prefer cutting the axis with more room to spare.
	horizontal := canWidth && (!canHeight || maxWidth >= maxHeight)

	var left, right int
	if horizontal {
		left, right = t.branch(id, true, t.between(minSize, maxWidth))
	} else {
		left, right = t.branch(id, false, t.between(minSize, maxHeight))
	}

	t.split(left, depth+1)
	t.split(right, depth+1)
}
