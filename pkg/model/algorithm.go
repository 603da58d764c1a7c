package model

import "fmt"

// Default wheel arc: a 60-degree sweep across the top of the dial, walked
// anticlockwise from 330 to 30, with phase siblings spread 4 degrees apart.
const (
	DefaultArcStartDegrees    = 330
	DefaultArcEndDegrees      = 30
	DefaultPhaseSpreadDegrees = 4
)

// WheelArc is the angular range anchors are distributed over.
// Degrees are design degrees: 0 at 12 o'clock, increasing clockwise.
type WheelArc struct {
	StartDegrees       float64      `json:"start_degrees"`
	EndDegrees         float64      `json:"end_degrees"`
	Direction          ArcDirection `json:"direction"`
	PhaseSpreadDegrees float64      `json:"phase_spread_degrees"`
}

// DefaultArc returns the arc used when algorithm metadata omits one.
func DefaultArc() WheelArc {
	return WheelArc{
		StartDegrees:       DefaultArcStartDegrees,
		EndDegrees:         DefaultArcEndDegrees,
		Direction:          DirectionAnticlockwise,
		PhaseSpreadDegrees: DefaultPhaseSpreadDegrees,
	}
}

// TimerConfig controls the elapsed-time clock. When AutoStartOnCard is set
// the timer starts on reaching that card instead of on the first advance.
type TimerConfig struct {
	AutoStartOnCard string `json:"auto_start_on_card,omitempty"`
}

// AlgorithmMeta is the header of an algorithm file.
type AlgorithmMeta struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Arc   WheelArc    `json:"wheel_arc"`
	Timer TimerConfig `json:"timer,omitempty"`
}

// Algorithm is one loaded protocol: metadata plus the ordered deck.
type Algorithm struct {
	Meta AlgorithmMeta `json:"algorithm_meta"`
	Deck []Card        `json:"deck"`
}

// StartID returns the id of the first card, or "" for an empty deck.
func (a *Algorithm) StartID() string {
	if len(a.Deck) == 0 {
		return ""
	}
	return a.Deck[0].ID
}

// CardByID returns the card with the given id, or nil.
func (a *Algorithm) CardByID(id string) *Card {
	for i := range a.Deck {
		if a.Deck[i].ID == id {
			return &a.Deck[i]
		}
	}
	return nil
}

// Normalize fills documented defaults so downstream code never sees a
// half-specified algorithm: missing arc fields fall back to DefaultArc
// values, angles are reduced into [0,360), and cards without transitions
// are linked to the next card in deck order unless they end the protocol.
func (a *Algorithm) Normalize() {
	arc := &a.Meta.Arc
	if !arc.Direction.IsValid() {
		// An untouched zero arc means the file omitted wheel_arc entirely.
		if arc.StartDegrees == 0 && arc.EndDegrees == 0 && arc.PhaseSpreadDegrees == 0 {
			*arc = DefaultArc()
		} else {
			arc.Direction = DirectionAnticlockwise
		}
	}
	arc.StartDegrees = normalizeDegrees(arc.StartDegrees)
	arc.EndDegrees = normalizeDegrees(arc.EndDegrees)
	if arc.PhaseSpreadDegrees < 0 {
		arc.PhaseSpreadDegrees = DefaultPhaseSpreadDegrees
	}

	for i := range a.Deck {
		card := &a.Deck[i]
		if card.Transitions.Kind() != TransitionNone {
			continue
		}
		if card.IsComplete() || card.Type == TypeTerminal {
			continue
		}
		// A dangling non-terminal card is an authoring slip; default to
		// deck order so navigation still works.
		if i+1 < len(a.Deck) {
			card.Transitions = &Transitions{NextID: a.Deck[i+1].ID}
		}
	}
}

// Validate checks structural integrity: a non-empty deck with unique ids
// and per-card valid fields. Dangling transition targets are deliberately
// not an error here (traversal degrades to a no-op on them); they are
// reported by the deck lint instead.
func (a *Algorithm) Validate() error {
	if len(a.Deck) == 0 {
		return fmt.Errorf("algorithm %s: empty deck", a.Meta.ID)
	}
	seen := make(map[string]bool, len(a.Deck))
	for i := range a.Deck {
		card := &a.Deck[i]
		if err := card.Validate(); err != nil {
			return err
		}
		if seen[card.ID] {
			return fmt.Errorf("algorithm %s: duplicate card id %q", a.Meta.ID, card.ID)
		}
		seen[card.ID] = true
	}
	return nil
}

func normalizeDegrees(deg float64) float64 {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}
