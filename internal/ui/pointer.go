package ui

import (
	"time"

	"github.com/zhubert/huddle/internal/domain"
)

// DoubleClickInterval is the longest gap between two clicks on the same row
// that still counts as a double-click.
const DoubleClickInterval = 400 * time.Millisecond

// DragTracker turns mouse press, motion and release into a drag of a sidebar
// row. A drag starts once the pointer has moved at least threshold cells
// (manhattan distance) from the press.
type DragTracker struct {
	threshold int
	pressed   bool
	dragging  bool
	startX    int
	startY    int
	source    domain.Key
}

// NewDragTracker creates a tracker with the given start threshold.
func NewDragTracker(threshold int) *DragTracker {
	return &DragTracker{threshold: max(threshold, 1)}
}

// SetThreshold changes the distance a press must travel to become a drag.
func (d *DragTracker) SetThreshold(threshold int) {
	d.threshold = max(threshold, 1)
}

// Press records a button press on source at x, y.
func (d *DragTracker) Press(x, y int, source domain.Key) {
	d.pressed = true
	d.dragging = false
	d.startX, d.startY = x, y
	d.source = source
}

// Motion reports true exactly once, when the pointer first moves far enough
// from the press to start a drag.
func (d *DragTracker) Motion(x, y int) bool {
	if !d.pressed || d.dragging || d.source.IsZero() {
		return false
	}
	if abs(x-d.startX)+abs(y-d.startY) < d.threshold {
		return false
	}
	d.dragging = true
	return true
}

// Dragging reports whether a drag is in progress
func (d *DragTracker) Dragging() bool { return d.dragging }

// Source returns the row the press started on
func (d *DragTracker) Source() domain.Key { return d.source }

// Release ends the gesture. wasDrag is false for a plain click.
func (d *DragTracker) Release() (source domain.Key, wasDrag bool) {
	source, wasDrag = d.source, d.dragging
	d.Cancel()
	return source, wasDrag
}

// Cancel forgets the current gesture.
func (d *DragTracker) Cancel() {
	d.pressed = false
	d.dragging = false
	d.source = domain.Key{}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ClickTracker detects double-clicks on the same row.
type ClickTracker struct {
	interval time.Duration
	last     time.Time
	lastKey  domain.Key
	now      func() time.Time
}

// NewClickTracker creates a tracker using DoubleClickInterval.
func NewClickTracker() *ClickTracker {
	return &ClickTracker{interval: DoubleClickInterval, now: time.Now}
}

// Click records a click on key and reports whether it completes a
// double-click. The click after a double-click starts a new pair.
func (c *ClickTracker) Click(key domain.Key) bool {
	now := c.now()
	double := !key.IsZero() && key == c.lastKey && now.Sub(c.last) <= c.interval
	if double {
		c.lastKey = domain.Key{}
		c.last = time.Time{}
		return true
	}
	c.lastKey = key
	c.last = now
	return false
}
