// Package ui draws the tile grid and its visibility, on a tcell screen or as text.
package ui

import "github.com/gdamore/tcell/v2"

// statusRows is the space kept below the map: a blank row and the status line.
const statusRows = 2

// Screen wraps tcell.Screen and maps grid coordinates onto the terminal,
// centering the map when the terminal is larger than it.
type Screen struct {
	screen tcell.Screen

	originX, originY int
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return Wrap(s)
}

// Wrap initializes an existing tcell screen, such as a simulation screen.
func Wrap(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent waits for and returns the next terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Frame clears the buffer and centers a width x height map, plus the status
// rows, in the terminal. It reports whether the whole map fits.
func (s *Screen) Frame(width, height int) bool {
	s.screen.Clear()
	tw, th := s.screen.Size()
	s.originX = max(0, (tw-width)/2)
	s.originY = max(0, (th-height-statusRows)/2)
	return tw >= width && th >= height+statusRows
}

// SetCell draws a rune at grid coordinates.
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(s.originX+x, s.originY+y, r, nil, style)
}

// SetText writes a line of text at terminal coordinates, ignoring the map origin.
func (s *Screen) SetText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		s.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}
