package wheel

import (
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
)

// Intent is the navigation meaning of a drag.
type Intent int

const (
	IntentInert Intent = iota
	IntentForward
	IntentReverse
)

func (i Intent) String() string {
	switch i {
	case IntentForward:
		return "forward"
	case IntentReverse:
		return "reverse"
	}
	return "inert"
}

// DefaultGestureThreshold is the angular delta a drag must cross before it
// counts as navigation rather than knob wobble.
const DefaultGestureThreshold = 10.0

// ClassifyGesture interprets the angular delta accumulated since drag
// start relative to the arc direction. On an anticlockwise arc forward
// intent is delta > threshold; on a clockwise arc it is delta < -threshold.
// Reverse is the mirror. Anything inside the threshold is inert: the knob
// follows the finger but no navigation is consumed.
func ClassifyGesture(deltaDegrees float64, dir model.ArcDirection, threshold float64) Intent {
	if threshold <= 0 {
		threshold = DefaultGestureThreshold
	}
	if dir == model.DirectionAnticlockwise {
		switch {
		case deltaDegrees > threshold:
			return IntentForward
		case deltaDegrees < -threshold:
			return IntentReverse
		}
		return IntentInert
	}
	switch {
	case deltaDegrees < -threshold:
		return IntentForward
	case deltaDegrees > threshold:
		return IntentReverse
	}
	return IntentInert
}
