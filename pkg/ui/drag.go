package ui

import (
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/wheel"
)

// gestureOwner is the single claim token shared by every drag modality.
// The first gesture to claim the pointer owns the whole press-move-release
// sequence; the others stay inert until release clears the token. This is
// what keeps wheel drags, preview drags, and history drags from activating
// concurrently on one pointer sequence.
type gestureOwner int

const (
	ownerNone gestureOwner = iota
	ownerWheel
	ownerPreview
	ownerHistory
)

// wheelDrag tracks an in-flight knob drag in design degrees.
type wheelDrag struct {
	active   bool
	startDeg float64
	lastDeg  float64
	// consumed latches after the drag triggers navigation once, so a long
	// drag cannot advance twice without a release in between.
	consumed bool
}

func (d *wheelDrag) start(deg float64) {
	*d = wheelDrag{active: true, startDeg: deg, lastDeg: deg}
}

// move records the current clamped pointer angle and returns the signed
// delta accumulated since drag start.
func (d *wheelDrag) move(deg float64) float64 {
	d.lastDeg = deg
	return wheel.ShortestDelta(d.startDeg, deg)
}

// intent classifies the drag so far against the arc direction. Once
// navigation has been consumed everything further is inert.
func (d *wheelDrag) intent(dir model.ArcDirection) wheel.Intent {
	if !d.active || d.consumed {
		return wheel.IntentInert
	}
	return wheel.ClassifyGesture(wheel.ShortestDelta(d.startDeg, d.lastDeg), dir, wheel.DefaultGestureThreshold)
}

func (d *wheelDrag) reset() {
	*d = wheelDrag{}
}

// zoneCommitFraction is how far into the zone a card must travel before
// release commits navigation. A fraction of the rendered zone height, not
// a fixed cell count, so it scales with the viewport.
const zoneCommitFraction = 0.35

// zoneDrag is the small state machine behind dragging a preview card down
// or a history card up: idle, then active, then committed or cancelled on
// release. Anything short of the threshold rubber-bands back to origin.
type zoneDrag struct {
	active     bool
	zone       gestureOwner
	originY    int
	offsetY    int
	zoneHeight int
}

func (d *zoneDrag) start(zone gestureOwner, y, zoneHeight int) {
	*d = zoneDrag{active: true, zone: zone, originY: y, zoneHeight: zoneHeight}
}

func (d *zoneDrag) move(y int) {
	if d.active {
		d.offsetY = y - d.originY
	}
}

// progress is the committed fraction of the zone height traveled in the
// zone's commit direction: downward for preview, upward for history.
// Travel against the commit direction reads as zero.
func (d *zoneDrag) progress() float64 {
	if !d.active || d.zoneHeight <= 0 {
		return 0
	}
	travel := d.offsetY
	if d.zone == ownerHistory {
		travel = -travel
	}
	if travel <= 0 {
		return 0
	}
	return float64(travel) / float64(d.zoneHeight)
}

// release ends the drag and reports whether it crossed the commit
// threshold. State is fully cleared either way; nothing leaks into the
// next gesture.
func (d *zoneDrag) release() (zone gestureOwner, commit bool) {
	zone = d.zone
	commit = d.progress() >= zoneCommitFraction
	*d = zoneDrag{}
	return zone, commit
}
