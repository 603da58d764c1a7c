package ui

import (
	"strings"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/wheel"
)

// Wheel glyphs. The knob is drawn last so it wins cell collisions.
const (
	glyphTrack   = '·'
	glyphAnchor  = 'o'
	glyphCurrent = '@'
	glyphKnob    = '#'
	glyphCenter  = '+'
)

// rect is a screen region in terminal cells, used for mouse hit-testing.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// wheelCanvas renders the arc, anchors, and knob into a w x h cell grid.
// Terminal cells are roughly twice as tall as wide, so the unit circle is
// scaled independently per axis to look round.
type wheelCanvas struct {
	w, h   int
	cx, cy float64
	rx, ry float64
	cells  [][]rune
}

func newWheelCanvas(w, h int) *wheelCanvas {
	if w < 7 {
		w = 7
	}
	if h < 5 {
		h = 5
	}
	cells := make([][]rune, h)
	for i := range cells {
		cells[i] = make([]rune, w)
		for j := range cells[i] {
			cells[i][j] = ' '
		}
	}
	return &wheelCanvas{
		w: w, h: h,
		cx: float64(w-1) / 2, cy: float64(h-1) / 2,
		rx: float64(w-1)/2 - 1, ry: float64(h-1)/2 - 1,
		cells: cells,
	}
}

// project maps a design angle on the unit wheel to a cell.
func (c *wheelCanvas) project(designDeg float64) (int, int) {
	ux, uy := wheel.PointOnWheel(0, 0, 1, designDeg)
	x := int(c.cx + c.rx*ux + 0.5)
	y := int(c.cy + c.ry*uy + 0.5)
	return x, y
}

func (c *wheelCanvas) set(x, y int, r rune) {
	if x >= 0 && x < c.w && y >= 0 && y < c.h {
		c.cells[y][x] = r
	}
}

// unproject maps a cell back to a design angle, undoing the aspect scale.
func (c *wheelCanvas) unproject(x, y int) float64 {
	dx := (float64(x) - c.cx) / c.rx
	dy := (float64(y) - c.cy) / c.ry
	return wheel.AngleFromPoint(0, 0, dx, dy)
}

func (c *wheelCanvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

// renderWheelPane draws the current wheel state: the arc track, one anchor
// per forward-path card, and the knob at the visual angle's principal
// value (or at the live drag angle mid-gesture).
func (m *Model) renderWheelPane(w, h int) string {
	c := newWheelCanvas(w, h)
	arc := m.session.Arc()

	span := wheel.ArcSpan(arc)
	for t := 0.0; t <= 1.0; t += 1.5 / span {
		x, y := c.project(wheel.AngleOnArc(arc, t))
		c.set(x, y, glyphTrack)
	}

	for i, a := range m.session.Anchors {
		x, y := c.project(a.Degrees)
		if i == m.session.AnchorIndex {
			c.set(x, y, glyphCurrent)
		} else {
			c.set(x, y, glyphAnchor)
		}
	}

	knobDeg := wheel.NormalizeDegrees(m.session.Wheel.VisualAngle)
	if m.owner == ownerWheel && m.knobDrag.active {
		knobDeg = m.knobDrag.lastDeg
	}
	x, y := c.project(knobDeg)
	c.set(x, y, glyphKnob)
	c.set(int(c.cx), int(c.cy), glyphCenter)

	return c.String()
}
