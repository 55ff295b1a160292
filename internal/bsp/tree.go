// Package bsp builds binary space partition trees and carves rooms into their leaves.
package bsp

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/samdwyer/pitd/internal/geom"
	"github.com/samdwyer/pitd/internal/seed"
)

// NoNode marks an absent child or parent.
const NoNode = -1

// Root is the index of the root node in Tree.Nodes.
const Root = 0

var (
	ErrInvalidSize     = errors.New("width and height must be positive")
	ErrInvalidRoomSize = errors.New("invalid room size")
	ErrInvalidDepth    = errors.New("max depth must be at least 1")
	ErrRoomTooLarge    = errors.New("min room size larger than region")
	ErrNegativeRooms   = errors.New("max rooms must not be negative")
)

// Options configures a generation run.
type Options struct {
	Width, Height int
	MinRoomSize   int
	MaxRoomSize   int // 0 means rooms are bounded only by their leaf
	MaxDepth      int
	Seed          string // empty draws a random seed string
}

// Validate reports the first precondition the options violate.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, o.Width, o.Height)
	}
	if o.MinRoomSize < 1 {
		return fmt.Errorf("%w: min room size %d is below 1", ErrInvalidRoomSize, o.MinRoomSize)
	}
	if o.MaxRoomSize != 0 && o.MaxRoomSize < o.MinRoomSize {
		return fmt.Errorf("%w: max room size %d is below min room size %d",
			ErrInvalidRoomSize, o.MaxRoomSize, o.MinRoomSize)
	}
	if o.MaxDepth < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, o.MaxDepth)
	}
	if o.MinRoomSize > min(o.Width, o.Height) {
		return fmt.Errorf("%w: %d does not fit %dx%d", ErrRoomTooLarge, o.MinRoomSize, o.Width, o.Height)
	}
	return nil
}

// Node is a region of the partition. A node is either a leaf, which may hold
// a room, or has exactly two children and no room.
type Node struct {
	IsRoot bool
	IsLeft bool
	// Horizontal is the axis of the cut that produced this node: true when
	// the parent's width was divided, so siblings sit side by side.
	Horizontal bool

	Width, Height int

	Left, Right int
	Parent      int

	// Room is relative to the node's own origin.
	Room *geom.Rect
}

// IsLeaf returns true if this node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == NoNode && n.Right == NoNode
}

// Tree owns every node of a partition in a flat arena.
type Tree struct {
	Nodes []Node
	Rooms int // number of leaves currently holding a room
	Seed  seed.Seed

	opts Options
	rng  *rand.Rand
}

// Options returns the options the tree was generated with.
func (t *Tree) Options() Options {
	return t.opts
}

// Node returns the node with the given index.
func (t *Tree) Node(id int) *Node {
	return &t.Nodes[id]
}

// Leaves returns leaf indices in depth-first, left-to-right order.
func (t *Tree) Leaves() []int {
	var leaves []int
	t.Walk(func(id int, n *Node, _, _ int) {
		if n.IsLeaf() {
			leaves = append(leaves, id)
		}
	})
	return leaves
}

// Depth returns the number of edges between the node and the root.
func (t *Tree) Depth(id int) int {
	depth := 0
	for p := t.Nodes[id].Parent; p != NoNode; p = t.Nodes[p].Parent {
		depth++
	}
	return depth
}

// Walk visits every node in pre-order with the absolute origin of its region.
// A right child is offset from its parent by the left sibling's width for a
// horizontal cut, or by its height for a vertical one.
func (t *Tree) Walk(fn func(id int, n *Node, x, y int)) {
	if len(t.Nodes) == 0 {
		return
	}
	t.walk(Root, 0, 0, fn)
}

func (t *Tree) walk(id, x, y int, fn func(id int, n *Node, x, y int)) {
	n := &t.Nodes[id]
	fn(id, n, x, y)
	if n.IsLeaf() {
		return
	}

	left := &t.Nodes[n.Left]
	t.walk(n.Left, x, y, fn)

	rx, ry := x, y
	if t.Nodes[n.Right].Horizontal {
		rx += left.Width
	} else {
		ry += left.Height
	}
	t.walk(n.Right, rx, ry, fn)
}

// Region returns the absolute bounds of a node.
func (t *Tree) Region(id int) geom.Rect {
	var region geom.Rect
	t.Walk(func(visited int, n *Node, x, y int) {
		if visited == id {
			region = geom.Rect{X: x, Y: y, Width: n.Width, Height: n.Height}
		}
	})
	return region
}

// Placed is a carved room in absolute coordinates.
type Placed struct {
	Leaf int
	geom.Rect
}

// PlacedRooms returns every carved room translated to absolute coordinates.
func (t *Tree) PlacedRooms() []Placed {
	var rooms []Placed
	t.Walk(func(id int, n *Node, x, y int) {
		if n.Room != nil {
			rooms = append(rooms, Placed{Leaf: id, Rect: n.Room.Translate(x, y)})
		}
	})
	return rooms
}

func (t *Tree) add(n Node) int {
	t.Nodes = append(t.Nodes, n)
	return len(t.Nodes) - 1
}

// branch cuts a node in two at offset cut along the given axis.
func (t *Tree) branch(id int, horizontal bool, cut int) (left, right int) {
	parent := t.Nodes[id]

	l := Node{IsLeft: true, Horizontal: horizontal, Left: NoNode, Right: NoNode, Parent: id}
	r := Node{IsLeft: false, Horizontal: horizontal, Left: NoNode, Right: NoNode, Parent: id}
	if horizontal {
		l.Width, l.Height = cut, parent.Height
		r.Width, r.Height = parent.Width-cut, parent.Height
	} else {
		l.Width, l.Height = parent.Width, cut
		r.Width, r.Height = parent.Width, parent.Height-cut
	}

	left = t.add(l)
	right = t.add(r)
	t.Nodes[id].Left = left
	t.Nodes[id].Right = right
	return left, right
}

// between returns a uniform integer in [lo, hi].
func (t *Tree) between(lo, hi int) int {
	return lo + t.rng.Intn(hi-lo+1)
}

func (t *Tree) coin() bool {
	return t.rng.Intn(2) == 1
}
