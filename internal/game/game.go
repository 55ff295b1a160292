package game

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/pitd/internal/fov"
	"github.com/samdwyer/pitd/internal/geom"
	"github.com/samdwyer/pitd/internal/logger"
	"github.com/samdwyer/pitd/internal/mapfile"
	"github.com/samdwyer/pitd/internal/telemetry"
	"github.com/samdwyer/pitd/internal/ui"
	"github.com/samdwyer/pitd/internal/world"
)

const defaultGlyph = '@'

// Game holds the entire game state.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	caster   *fov.Shadowcaster
	log      *logrus.Entry

	grid    *world.Grid
	dungeon *world.Dungeon // nil for map files
	viewer  geom.Point
	glyph   rune
	seed    string
	visible int

	state   State
	running bool
}

// New creates a game for the configuration. Init builds the map.
func New(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	caster, err := fov.New(cfg.FOVRadius)
	if err != nil {
		return nil, err
	}
	return &Game{
		cfg:     cfg,
		caster:  caster,
		log:     logger.Component("game"),
		glyph:   defaultGlyph,
		state:   StateExplore,
		running: true,
	}, nil
}

// Init builds or loads the map, places the viewer and computes the first
// field of view.
func (g *Game) Init(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	switch {
	case g.cfg.MapPath != "":
		m, err := mapfile.Load(g.cfg.MapPath)
		if err != nil {
			span.RecordError(err)
			return err
		}
		g.grid = m.Grid
		g.viewer = m.Player
		if m.PlayerGlyph != 0 {
			g.glyph = m.PlayerGlyph
		}
		g.seed = m.Info["name"]
		span.SetAttributes(attribute.String("game.map", g.cfg.MapPath))

	case g.cfg.Scatter:
		d, err := world.Scatter(ctx, g.cfg.ScatterOptions())
		if err != nil {
			span.RecordError(err)
			return err
		}
		g.useDungeon(d)

	default:
		d, err := world.NewDungeon(g.cfg.BSPOptions(), g.cfg.MaxRooms)
		if err != nil {
			span.RecordError(err)
			return err
		}
		if err := d.Generate(ctx); err != nil {
			span.RecordError(err)
			return err
		}
		g.useDungeon(d)
	}

	if err := g.see(); err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(
		attribute.Int("viewer.x", g.viewer.X),
		attribute.Int("viewer.y", g.viewer.Y),
		attribute.Int("fov.visible", g.visible),
	)
	g.log.WithFields(logrus.Fields{
		"x":       g.viewer.X,
		"y":       g.viewer.Y,
		"visible": g.visible,
	}).Info("Viewer placed.")
	return nil
}

func (g *Game) useDungeon(d *world.Dungeon) {
	g.dungeon = d
	g.grid = d.Grid
	g.viewer.X, g.viewer.Y = d.Start()
	g.seed = d.Seed.String()
}

// see recomputes visibility from the viewer's position.
func (g *Game) see() error {
	g.grid.ClearVisibility()
	visible, err := g.caster.Compute(g.viewer.X, g.viewer.Y, g.grid)
	if err != nil {
		return err
	}
	g.visible = visible.Size()
	return nil
}

// Run executes the main game loop on a terminal screen.
func (g *Game) Run(ctx context.Context) error {
	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}
	g.screen = screen
	g.renderer = ui.NewRenderer(screen)
	defer g.Close()

	// Main game loop
	for g.running {
		g.renderer.Render(g.View())

		// Handle input (blocking)
		g.handleInput(ctx)
	}
	return nil
}

// View returns the frame to draw for the current state.
func (g *Game) View() ui.View {
	return ui.View{
		Grid:   g.grid,
		Viewer: g.viewer,
		Glyph:  g.glyph,
		Radius: g.caster.Radius(),
		Reveal: g.state == StateReveal,
		Status: fmt.Sprintf("%s  (%d,%d) %s  %s  arrows/wasd move, r reveal, q quit",
			g.seed, g.viewer.X, g.viewer.Y, g.location(), g.state),
	}
}

// location names the room the viewer stands in, if the map has rooms.
func (g *Game) location() string {
	if g.dungeon == nil {
		return ""
	}
	if i := g.dungeon.RoomIndexAt(g.viewer.X, g.viewer.Y); i >= 0 {
		return fmt.Sprintf("room %d/%d", i+1, len(g.dungeon.Rooms))
	}
	return "corridor"
}

// Viewer returns the viewer's position.
func (g *Game) Viewer() geom.Point {
	return g.viewer
}

// State returns the current display state.
func (g *Game) State() State {
	return g.state
}

// Running reports whether the loop should keep polling input.
func (g *Game) Running() bool {
	return g.running
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	g.Apply(ctx, actionFor(ev.Key(), ev.Rune()))
}

// Action is a player command decoded from input.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionReveal
	ActionQuit
)

func actionFor(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyUp:
		return ActionUp
	case tcell.KeyDown:
		return ActionDown
	case tcell.KeyLeft:
		return ActionLeft
	case tcell.KeyRight:
		return ActionRight
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return ActionUp
		case 's', 'S':
			return ActionDown
		case 'a', 'A':
			return ActionLeft
		case 'd', 'D':
			return ActionRight
		case 'r', 'R':
			return ActionReveal
		case 'q', 'Q':
			return ActionQuit
		}
	}
	return ActionNone
}

// Apply performs an action.
func (g *Game) Apply(ctx context.Context, a Action) {
	switch a {
	case ActionUp:
		g.tryMove(ctx, 0, -1)
	case ActionDown:
		g.tryMove(ctx, 0, 1)
	case ActionLeft:
		g.tryMove(ctx, -1, 0)
	case ActionRight:
		g.tryMove(ctx, 1, 0)
	case ActionReveal:
		if g.state == StateReveal {
			g.state = StateExplore
		} else {
			g.state = StateReveal
		}
	case ActionQuit:
		g.running = false
	}
}

// tryMove attempts to move the viewer by the given delta. Visibility is only
// recomputed when the viewer actually moved.
func (g *Game) tryMove(ctx context.Context, dx, dy int) bool {
	newX := g.viewer.X + dx
	newY := g.viewer.Y + dy
	if !g.grid.IsPassable(newX, newY) {
		return false
	}

	_, span := telemetry.Tracer("game").Start(ctx, "game.move")
	defer span.End()

	g.viewer = geom.Point{X: newX, Y: newY}
	if err := g.see(); err != nil {
		span.RecordError(err)
		g.log.WithError(err).Warn("Field of view failed.")
		return true
	}
	span.SetAttributes(
		attribute.Int("viewer.x", newX),
		attribute.Int("viewer.y", newY),
		attribute.Int("fov.visible", g.visible),
	)
	return true
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
