// Package engine holds the navigation state machine: one Session owns the
// loaded algorithm, the walk history, decision bookkeeping, the elapsed
// timer, and the wheel's cached anchors. All mutation goes through Session
// methods and is synchronous; the injected OnChange callback fires after
// every committed mutation so the render layer stays a pure function of
// session state.
package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/wheel"
)

// WheelState is the wheel's mutable per-session state: the derived mode,
// the committed knob angle, the unwrapped visual angle used for animation,
// and transient drag bookkeeping.
type WheelState struct {
	Mode             wheel.Mode
	AngleDegrees     float64
	VisualAngle      float64
	Dragging         bool
	DragStartDegrees float64
	// NavConsumed latches once a drag has triggered navigation so one
	// continuous gesture never advances twice.
	NavConsumed bool
}

// TrailEntry is one confirmed decision in the append-only audit trail.
type TrailEntry struct {
	EntryID     string `json:"entry_id"`
	CardID      string `json:"card_id"`
	OptionIndex int    `json:"option_index"`
	OptionLabel string `json:"option_label"`
	TargetID    string `json:"target_id"`
	Interaction string `json:"interaction"`
	Source      string `json:"source"`
	Timestamp   string `json:"timestamp"`
}

// Session is the process-wide navigation state, rebuilt wholesale by
// ApplyAlgorithm on every load. Construct once, thread everywhere; nothing
// outside this package mutates it partially.
type Session struct {
	alg  *model.Algorithm
	deck map[string]*model.Card

	CurrentID       string
	History         []string
	DecisionIndex   int
	DecisionRecords map[string]int
	DecisionTrail   []TrailEntry
	DecisionTapped  bool
	CarouselIndex   int
	TimerSeconds    int
	TimerRunning    bool
	ChecklistState  map[string]bool
	Anchors         []wheel.Anchor
	AnchorIndex     int
	Wheel           WheelState

	// OnChange is invoked after every committed mutation. Optional.
	OnChange func()

	// Haptic fires on committed navigation. Optional, fire-and-forget.
	Haptic func()

	now   func() time.Time
	newID func() string
}

// NewSession creates an empty session around a placeholder id. Call
// ApplyAlgorithm before navigating.
func NewSession() *Session {
	return &Session{
		CurrentID:       "",
		deck:            map[string]*model.Card{},
		DecisionRecords: map[string]int{},
		ChecklistState:  map[string]bool{},
		now:             time.Now,
		newID:           uuid.NewString,
	}
}

// ApplyAlgorithm swaps in a new algorithm and resets all navigation state,
// including on the very first load. The elapsed timer is reset here and
// only here; navigation never resets it.
func (s *Session) ApplyAlgorithm(alg *model.Algorithm) {
	alg.Normalize()
	s.alg = alg
	s.rebuildDeckMap()

	s.CurrentID = alg.StartID()
	s.History = nil
	s.DecisionIndex = 0
	s.DecisionRecords = map[string]int{}
	s.DecisionTrail = nil
	s.DecisionTapped = false
	s.CarouselIndex = 0
	s.TimerSeconds = 0
	s.TimerRunning = false
	s.ChecklistState = map[string]bool{}
	s.Wheel = WheelState{}

	s.Sync()
	s.notify()
}

// rebuildDeckMap clears and repopulates the id lookup from the current
// algorithm's deck. Read-only after this.
func (s *Session) rebuildDeckMap() {
	s.deck = make(map[string]*model.Card, len(s.alg.Deck))
	for i := range s.alg.Deck {
		s.deck[s.alg.Deck[i].ID] = &s.alg.Deck[i]
	}
}

// Algorithm returns the loaded algorithm, or nil before the first load.
func (s *Session) Algorithm() *model.Algorithm { return s.alg }

// Card looks up a card by id; nil when absent.
func (s *Session) Card(id string) *model.Card { return s.deck[id] }

// Current returns the active card; nil when the graph is empty or the
// current id is dangling.
func (s *Session) Current() *model.Card { return s.deck[s.CurrentID] }

// Deck exposes the id lookup for read-only use by the wheel and views.
func (s *Session) Deck() map[string]*model.Card { return s.deck }

// Arc returns the active wheel arc, defaulting when nothing is loaded.
func (s *Session) Arc() model.WheelArc {
	if s.alg == nil {
		return model.DefaultArc()
	}
	return s.alg.Meta.Arc
}

// Sync re-derives everything the wheel shows from navigation state: the
// mode of the active card, the anchor list for the current forward path,
// and the knob's committed angle. Called after every state change, and
// cheap enough to call unconditionally.
func (s *Session) Sync() {
	s.Wheel.Mode = wheel.Classify(s.Current())
	s.syncAnchors()
	if len(s.Anchors) > 0 {
		s.SetKnobAngle(s.Anchors[s.AnchorIndex].Degrees)
	}
}

// syncAnchors recomputes the anchor list and locates the current card in
// it. When the current card is off-path (automation jumps, direct gotos)
// the previous anchor index is kept, clamped into range, so the wheel
// stays visually consistent instead of crashing.
func (s *Session) syncAnchors() {
	startID := ""
	if s.alg != nil {
		startID = s.alg.StartID()
	}
	path := wheel.ForwardPath(s.deck, startID, s.DecisionRecords)
	s.Anchors = wheel.PlaceAnchors(s.deck, path, s.Arc())

	found := -1
	for i, a := range s.Anchors {
		if a.CardID == s.CurrentID {
			found = i
			break
		}
	}
	if found >= 0 {
		s.AnchorIndex = found
		return
	}
	if s.AnchorIndex >= len(s.Anchors) {
		s.AnchorIndex = len(s.Anchors) - 1
	}
	if s.AnchorIndex < 0 {
		s.AnchorIndex = 0
	}
}

// SetKnobAngle commits a knob target angle and advances the unwrapped
// visual angle toward it by the shortest signed delta.
func (s *Session) SetKnobAngle(target float64) {
	s.Wheel.AngleDegrees = wheel.NormalizeDegrees(target)
	s.Wheel.VisualAngle = wheel.Unwrap(s.Wheel.VisualAngle, target)
}

// TickTimer increments the elapsed clock by one second while running.
// Driven by the UI's once-per-second tick.
func (s *Session) TickTimer() {
	if s.TimerRunning {
		s.TimerSeconds++
		s.notify()
	}
}

// MoveCarousel steps the active card's slide index, wrapping at either
// end. Cards without slides ignore the request.
func (s *Session) MoveCarousel(delta int) {
	card := s.Current()
	if card == nil || len(card.Content.Slides) == 0 {
		return
	}
	n := len(card.Content.Slides)
	s.CarouselIndex = ((s.CarouselIndex+delta)%n + n) % n
	s.notify()
}

// ToggleChecklistItem flips a checklist checkbox.
func (s *Session) ToggleChecklistItem(itemID string) {
	s.ChecklistState[itemID] = !s.ChecklistState[itemID]
	s.notify()
}

func (s *Session) notify() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

func (s *Session) haptic() {
	if s.Haptic != nil {
		s.Haptic()
	}
}
