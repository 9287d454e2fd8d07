package client

// pointerNone marks a zone with no owning pointer.
const pointerNone = -1

// Zone is one half of the touch surface, tracking the single pointer that
// currently owns it across press, drag and release.
type Zone struct {
	pointerID      int
	startX, startY float64
	curX, curY     float64
}

func (z *Zone) active() bool { return z.pointerID != pointerNone }

func (z *Zone) claim(id int, x, y float64) {
	z.pointerID = id
	z.startX, z.startY = x, y
	z.curX, z.curY = x, y
}

func (z *Zone) release() {
	z.pointerID = pointerNone
}

// ZoneTracker splits the touch surface at the horizontal midpoint: the left
// half drives movement, the right half drives the camera look. A second
// simultaneous press in an owned half is ignored until the owner releases;
// unmatched drag and release events are no-ops.
type ZoneTracker struct {
	width float64
	move  Zone
	look  Zone
}

func NewZoneTracker(width float64) *ZoneTracker {
	return &ZoneTracker{
		width: width,
		move:  Zone{pointerID: pointerNone},
		look:  Zone{pointerID: pointerNone},
	}
}

// SetWidth updates the split point, normally from the layout callback.
func (t *ZoneTracker) SetWidth(w float64) {
	t.width = w
}

// TouchDown claims the zone under (x, y) for the pointer, unless that zone
// already has an owner.
func (t *ZoneTracker) TouchDown(id int, x, y float64) {
	if x < t.width/2 {
		if !t.move.active() {
			t.move.claim(id, x, y)
		}
		return
	}
	if !t.look.active() {
		t.look.claim(id, x, y)
	}
}

// TouchDragged moves the current position of whichever zone the pointer
// owns. Drags from non-owning pointers never reassign ownership.
func (t *ZoneTracker) TouchDragged(id int, x, y float64) {
	switch id {
	case t.move.pointerID:
		t.move.curX, t.move.curY = x, y
	case t.look.pointerID:
		t.look.curX, t.look.curY = x, y
	}
}

// TouchUp releases the zone owned by the pointer, if any. The other zone is
// unaffected.
func (t *ZoneTracker) TouchUp(id int) {
	switch id {
	case t.move.pointerID:
		t.move.release()
	case t.look.pointerID:
		t.look.release()
	}
}

// MoveVector returns the raw left-zone drag (current minus start). The
// dead-zone filter belongs to the camera.
func (t *ZoneTracker) MoveVector() (dx, dy float64, active bool) {
	if !t.move.active() {
		return 0, 0, false
	}
	return t.move.curX - t.move.startX, t.move.curY - t.move.startY, true
}

// LookDelta returns the right-zone drag accumulated since the previous call
// and resets the reference point, so per-frame consumption never compounds
// into a runaway turn.
func (t *ZoneTracker) LookDelta() (dx, dy float64) {
	if !t.look.active() {
		return 0, 0
	}
	dx = t.look.curX - t.look.startX
	dy = t.look.curY - t.look.startY
	t.look.startX, t.look.startY = t.look.curX, t.look.curY
	return dx, dy
}
