// Package wheel maps a protocol walk onto a bounded angular arc: anchor
// placement, the per-card navigation mode, knob physics, and gesture
// classification. Everything here is pure; session state lives in
// pkg/engine.
package wheel

import (
	"math"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
)

// NormalizeDegrees reduces an angle into [0,360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// ShortestDelta returns the signed angular difference from a to b in
// (-180, 180].
func ShortestDelta(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	}
	if d <= -180 {
		d += 360
	}
	return d
}

// ArcSpan is the angular distance traveled from the arc's start to its end
// in the arc's direction, in (0,360]. An anticlockwise arc travels by
// increasing design degrees (the default 330->30 sweep spans 60 across the
// top of the dial, not 300 around the bottom); clockwise is the mirror.
// Start == end reads as a full circle.
func ArcSpan(arc model.WheelArc) float64 {
	var span float64
	if arc.Direction == model.DirectionClockwise {
		span = NormalizeDegrees(arc.StartDegrees - arc.EndDegrees)
	} else {
		span = NormalizeDegrees(arc.EndDegrees - arc.StartDegrees)
	}
	if span == 0 {
		span = 360
	}
	return span
}

// AngleOnArc interpolates along the arc: ratio 0 is the start angle, 1 the
// end angle, traveling in the arc's direction. The result is normalized
// into [0,360).
func AngleOnArc(arc model.WheelArc, ratio float64) float64 {
	span := ArcSpan(arc)
	if arc.Direction == model.DirectionClockwise {
		return NormalizeDegrees(arc.StartDegrees - span*ratio)
	}
	return NormalizeDegrees(arc.StartDegrees + span*ratio)
}

// OnArc reports whether the angle lies within the arc's swept range.
func OnArc(arc model.WheelArc, deg float64) bool {
	span := ArcSpan(arc)
	var traveled float64
	if arc.Direction == model.DirectionClockwise {
		traveled = NormalizeDegrees(arc.StartDegrees - deg)
	} else {
		traveled = NormalizeDegrees(deg - arc.StartDegrees)
	}
	return traveled <= span
}

// ClampToArc clamps an angle into the arc's swept range. Angles outside the
// arc snap to whichever endpoint is angularly closer, so a drag that
// overshoots the visual arc never produces a wild delta.
func ClampToArc(arc model.WheelArc, deg float64) float64 {
	deg = NormalizeDegrees(deg)
	if OnArc(arc, deg) {
		return deg
	}
	toStart := math.Abs(ShortestDelta(deg, arc.StartDegrees))
	toEnd := math.Abs(ShortestDelta(deg, arc.EndDegrees))
	if toStart <= toEnd {
		return NormalizeDegrees(arc.StartDegrees)
	}
	return NormalizeDegrees(arc.EndDegrees)
}

// MathDegrees converts design degrees (0 at 12 o'clock, clockwise
// positive) to standard math degrees for trigonometric placement.
func MathDegrees(designDeg float64) float64 {
	return designDeg - 90
}

// PointOnWheel projects a design angle onto a circle of the given radius
// centered at (cx, cy), in screen coordinates (y grows downward).
func PointOnWheel(cx, cy, radius, designDeg float64) (x, y float64) {
	rad := MathDegrees(designDeg) * math.Pi / 180
	return cx + radius*math.Cos(rad), cy + radius*math.Sin(rad)
}

// AngleFromPoint is the inverse projection: the design angle of a screen
// point relative to the wheel center.
func AngleFromPoint(cx, cy, x, y float64) float64 {
	rad := math.Atan2(y-cy, x-cx)
	return NormalizeDegrees(rad*180/math.Pi + 90)
}
