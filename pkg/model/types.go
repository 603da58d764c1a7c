package model

import "fmt"

// CardType identifies how a card behaves on the wheel and in the deck view.
type CardType string

const (
	TypeCover          CardType = "cover"
	TypeStandard       CardType = "standard"
	TypeCarouselAction CardType = "carousel_action"
	TypeDecision       CardType = "decision"
	TypeLoopStart      CardType = "loop_start"
	TypeAction         CardType = "action"
	TypeTerminal       CardType = "terminal"
)

// IsValid checks if the card type is one of the known variants.
func (t CardType) IsValid() bool {
	switch t {
	case TypeCover, TypeStandard, TypeCarouselAction, TypeDecision,
		TypeLoopStart, TypeAction, TypeTerminal:
		return true
	}
	return false
}

// StatusComplete marks a card that ends the protocol; advancing past it is a no-op.
const StatusComplete = "complete"

// ArcDirection is the direction anchors are laid out along the wheel arc.
type ArcDirection string

const (
	DirectionClockwise     ArcDirection = "clockwise"
	DirectionAnticlockwise ArcDirection = "anticlockwise"
)

// IsValid checks if the direction is a known value.
func (d ArcDirection) IsValid() bool {
	return d == DirectionClockwise || d == DirectionAnticlockwise
}

// SplitOption is one labeled branch of a decision card.
type SplitOption struct {
	Label    string `json:"label"`
	TargetID string `json:"target_id"`
}

// TransitionKind classifies a card's outgoing edges.
type TransitionKind int

const (
	TransitionNone TransitionKind = iota
	TransitionLinear
	TransitionSplit
	TransitionSelfLoop
)

// Transitions describes where a card leads. At most one shape is active:
// a split (Options non-empty) wins over a self-loop, which wins over a
// plain linear next id.
type Transitions struct {
	NextID   string        `json:"next_id,omitempty"`
	Options  []SplitOption `json:"options,omitempty"`
	SelfLoop bool          `json:"self_loop,omitempty"`
}

// Kind reports which transition shape this card uses. A nil receiver is
// TransitionNone so callers can classify cards without nil checks.
func (t *Transitions) Kind() TransitionKind {
	switch {
	case t == nil:
		return TransitionNone
	case len(t.Options) > 0:
		return TransitionSplit
	case t.SelfLoop:
		return TransitionSelfLoop
	case t.NextID != "":
		return TransitionLinear
	}
	return TransitionNone
}

// Slide is one panel of a carousel card.
type Slide struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

// Content is the displayable text of a card. Body is markdown.
type Content struct {
	Title  string  `json:"title"`
	Body   string  `json:"body,omitempty"`
	Slides []Slide `json:"slides,omitempty"`
}

// ChecklistItem is a single checkbox on a card. VisibleWhen is an optional
// condition expression over checklist state (see pkg/cond for the grammar).
type ChecklistItem struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	VisibleWhen string `json:"visible_when,omitempty"`
}

// WheelConfig controls where a card sits on the arc. PositionDegrees is an
// explicit placement override; when nil the anchor engine derives the
// position from the card's index on the forward path. Phase groups cards
// that share a semantic stage so they can be spread around a common anchor.
type WheelConfig struct {
	PositionDegrees *float64 `json:"position_degrees,omitempty"`
	Phase           string   `json:"phase,omitempty"`
	Animation       string   `json:"animation,omitempty"`
}

// Card is one node of the protocol graph.
type Card struct {
	ID          string          `json:"id"`
	Type        CardType        `json:"type"`
	Status      string          `json:"status,omitempty"`
	Content     Content         `json:"content"`
	Checklist   []ChecklistItem `json:"checklist,omitempty"`
	Wheel       WheelConfig     `json:"wheel_config,omitempty"`
	Transitions *Transitions    `json:"transitions,omitempty"`
}

// IsComplete reports whether this card terminates the protocol.
func (c *Card) IsComplete() bool {
	return c.Status == StatusComplete
}

// Validate checks the card's required fields and enum values.
func (c *Card) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("card has empty id")
	}
	if !c.Type.IsValid() {
		return fmt.Errorf("card %s: invalid type %q", c.ID, c.Type)
	}
	if c.Transitions != nil {
		for i, opt := range c.Transitions.Options {
			if opt.TargetID == "" {
				return fmt.Errorf("card %s: split option %d has empty target_id", c.ID, i)
			}
		}
	}
	return nil
}

// IsSplitDecision reports whether the card branches: it has a split
// transition with at least one option. Pure; safe on nil cards.
func (c *Card) IsSplitDecision() bool {
	return c != nil && c.Transitions.Kind() == TransitionSplit
}
