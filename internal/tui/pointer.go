package tui

import (
	"time"

	"geodraw/internal/draw"
)

// doubleClickWindow is the longest gap between two releases on the same
// cell that still counts as a double-click.
const doubleClickWindow = 400 * time.Millisecond

// clickTracker turns left-button releases into clicks. Terminals report no
// double-clicks, so the second release on the same cell inside the window
// is reported as one instead of a second click.
type clickTracker struct {
	x, y  int
	at    time.Time
	armed bool
}

func (c *clickTracker) release(x, y int, now time.Time) draw.EventType {
	if c.armed && c.x == x && c.y == y && now.Sub(c.at) <= doubleClickWindow {
		c.armed = false
		return draw.EventDoubleClick
	}
	c.x, c.y, c.at, c.armed = x, y, now, true
	return draw.EventClick
}
