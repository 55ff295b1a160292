// Package fov computes field of view on a tile grid by shadowcasting.
//
// Each of the eight octants is swept outwards one row (or column) at a time.
// A cell at distance d covers the angular interval [i/d, (i+1)/d] of its
// octant. Opaque cells, and cells that are already hidden, add their interval
// to a list of blocking walls; later cells are tested against that list.
package fov

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/pitd/internal/geom"
	"github.com/samdwyer/pitd/internal/logger"
)

var (
	ErrInvalidRadius = errors.New("radius must be at least 1")
	ErrEmptyGrid     = errors.New("grid is empty")
	ErrJagged        = errors.New("grid rows differ in length")
	ErrOutOfBounds   = errors.New("viewer outside grid")
)

// Cell is the capability FOV needs from a tile.
type Cell interface {
	IsOpaque() bool
	SetVisible(visible bool)
}

// Grid is a rectangular field of cells.
type Grid interface {
	Size() (width, height int)
	Cell(x, y int) Cell
}

// Rows adapts a row-major slice of cells to Grid.
type Rows[T Cell] [][]T

// Size returns the width of the first row and the number of rows.
func (r Rows[T]) Size() (int, int) {
	if len(r) == 0 {
		return 0, 0
	}
	return len(r[0]), len(r)
}

// Cell returns the cell at x, y.
func (r Rows[T]) Cell(x, y int) Cell {
	return r[y][x]
}

func (r Rows[T]) jagged() bool {
	for _, row := range r {
		if len(row) != len(r[0]) {
			return true
		}
	}
	return false
}

// Shadowcaster computes the visible set around a viewer.
type Shadowcaster struct {
	radius int
	log    *logrus.Entry
}

// New creates a Shadowcaster that sees radius rows and columns in every direction.
func New(radius int) (*Shadowcaster, error) {
	if radius < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRadius, radius)
	}
	return &Shadowcaster{
		radius: radius,
		log:    logger.Component("fov"),
	}, nil
}

// Radius returns the sight radius.
func (s *Shadowcaster) Radius() int {
	return s.radius
}

// Compute marks every cell visible from x, y and returns their coordinates.
// Cells are only ever set visible; use Clear to reset a grid between calls.
func (s *Shadowcaster) Compute(x, y int, g Grid) (mapset.Set[geom.Point], error) {
	width, height := g.Size()
	if width == 0 || height == 0 {
		return mapset.Set[geom.Point]{}, ErrEmptyGrid
	}
	if j, ok := g.(interface{ jagged() bool }); ok && j.jagged() {
		return mapset.Set[geom.Point]{}, ErrJagged
	}
	if x < 0 || y < 0 || x >= width || y >= height {
		return mapset.Set[geom.Point]{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, width, height)
	}

	visible := mapset.New[geom.Point]()
	visible.Put(geom.Point{X: x, Y: y})

	sweep := octant{grid: g, width: width, height: height, radius: s.radius, visible: &visible}
	for _, d := range [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		sweep.rows(x, y, d[0], d[1])
	}
	for _, d := range [4][2]int{{-1, 1}, {1, 1}, {-1, -1}, {1, -1}} {
		sweep.cols(x, y, d[0], d[1])
	}

	visible.Each(func(p geom.Point) {
		g.Cell(p.X, p.Y).SetVisible(true)
	})

	s.log.WithFields(logrus.Fields{
		"observer_pos":  geom.Point{X: x, Y: y},
		"radius":        s.radius,
		"visible_tiles": visible.Size(),
	}).Debug("FOV calculation complete.")

	return visible, nil
}

// Clear marks every cell of the grid not visible.
func Clear(g Grid) {
	width, height := g.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Cell(x, y).SetVisible(false)
		}
	}
}

// octant holds the state shared by the eight sweeps of one computation.
type octant struct {
	grid          Grid
	width, height int
	radius        int
	visible       *mapset.Set[geom.Point]
}

// rows sweeps the rows above (dy < 0) or below (dy > 0) the viewer, scanning
// each row from the viewer's column towards dx.
func (o *octant) rows(px, py, dx, dy int) {
	var walls []angles
	for dist := 1; dist <= o.radius; dist++ {
		y := py + dist*dy
		if y < 0 || y >= o.height {
			continue
		}
		for i := 0; i <= dist; i++ {
			x := px + i*dx
			if x < 0 || x >= o.width {
				continue
			}
			walls = o.visit(x, y, i, dist, walls)
		}
	}
}

// cols sweeps the columns left (dx < 0) or right (dx > 0) of the viewer,
// scanning each column from the viewer's row towards dy.
func (o *octant) cols(px, py, dx, dy int) {
	var walls []angles
	for dist := 1; dist <= o.radius; dist++ {
		x := px + dist*dx
		if x < 0 || x >= o.width {
			continue
		}
		for i := 0; i <= dist; i++ {
			y := py + i*dy
			if y < 0 || y >= o.height {
				continue
			}
			walls = o.visit(x, y, i, dist, walls)
		}
	}
}

// visit tests the cell at step i of a line at distance dist and returns the
// updated wall list.
func (o *octant) visit(x, y, i, dist int, walls []angles) []angles {
	a := cellAngles(i, dist)
	opaque := o.grid.Cell(x, y).IsOpaque()

	if !isVisible(a, walls, opaque) {
		return addWall(walls, a)
	}
	o.visible.Put(geom.Point{X: x, Y: y})
	if opaque {
		return addWall(walls, a)
	}
	return walls
}
