// Package game wires map generation, field of view and the terminal viewer.
package game

// State represents the current game state.
type State int

const (
	// StateExplore draws only what the viewer can see or remembers.
	StateExplore State = iota
	// StateReveal draws the whole map.
	StateReveal
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateReveal:
		return "reveal"
	default:
		return "unknown"
	}
}
