package engine

import (
	"time"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
)

// Gesture sources recorded on trail entries and used for guard decisions.
const (
	SourceUI         = "ui"
	SourceWheel      = "wheel"
	SourceZone       = "zone"
	SourceAutomation = "automation"
)

// AdvanceOptions qualifies an advance request. SplitConfirmed must be set
// to commit a branching decision; the automation source is treated as
// always pre-confirmed.
type AdvanceOptions struct {
	Source         string
	SplitConfirmed bool
}

// Advance commits one forward transition from the current card and reports
// whether a transition actually happened. Malformed or missing graph data
// degrades to a no-op: mid-protocol the UI must never crash, so a stuck
// graph just stops moving.
func (s *Session) Advance(opts AdvanceOptions) bool {
	card := s.Current()
	if card == nil || card.IsComplete() {
		return false
	}

	next := ""
	switch card.Transitions.Kind() {
	case model.TransitionNone:
		return false

	case model.TransitionLinear:
		next = card.Transitions.NextID

	case model.TransitionSplit:
		// The guard that prevents accidental branch commitment: a bare
		// forward gesture never resolves a decision.
		if !opts.SplitConfirmed && opts.Source != SourceAutomation {
			return false
		}
		idx := NormalizeDecisionIndex(card, float64(s.DecisionIndex))
		opt := card.Transitions.Options[idx]
		s.DecisionRecords[card.ID] = idx
		s.DecisionTrail = append(s.DecisionTrail, TrailEntry{
			EntryID:     s.newID(),
			CardID:      card.ID,
			OptionIndex: idx,
			OptionLabel: opt.Label,
			TargetID:    opt.TargetID,
			Interaction: "split_confirm",
			Source:      opts.Source,
			Timestamp:   s.now().UTC().Format(time.RFC3339),
		})
		next = opt.TargetID

	case model.TransitionSelfLoop:
		next = card.Transitions.NextID
		if next == "" {
			next = card.ID
		}
	}

	nextCard := s.deck[next]
	if next == "" || nextCard == nil {
		return false
	}

	if next != card.ID {
		s.History = append(s.History, card.ID)
	}
	s.CurrentID = next

	// Transient per-card state resets on every landing; a decision card
	// restores its remembered pick instead of snapping to option 0.
	if nextCard.IsSplitDecision() {
		s.DecisionIndex = s.RememberedDecisionIndex(nextCard)
	} else {
		s.DecisionIndex = 0
	}
	s.DecisionTapped = false
	s.CarouselIndex = 0

	s.maybeStartTimer(next)
	s.Sync()
	s.haptic()
	s.notify()
	return true
}

// Rewind pops the most recent history entry back into the current card.
// A decision card restores its remembered option, shown as still-selected
// only when that decision was actually confirmed at some point.
func (s *Session) Rewind() bool {
	if len(s.History) == 0 {
		return false
	}
	s.CurrentID = s.History[len(s.History)-1]
	s.History = s.History[:len(s.History)-1]

	if card := s.Current(); card.IsSplitDecision() {
		s.DecisionIndex = s.RememberedDecisionIndex(card)
		_, confirmed := s.DecisionRecords[card.ID]
		s.DecisionTapped = confirmed
	} else {
		s.DecisionIndex = 0
		s.DecisionTapped = false
	}
	s.CarouselIndex = 0

	s.Sync()
	s.haptic()
	s.notify()
	return true
}

// CanTapAdvance guards tap-to-advance affordances. Decisions always
// require an explicit option selection, never a bare tap.
func CanTapAdvance(card *model.Card) bool {
	return card != nil && !card.IsComplete() && !card.IsSplitDecision()
}

// GotoCard jumps directly to a card, bypassing graph edges. History is
// cleared and per-card state re-derived, exactly as if the protocol had
// started there. Used by automation drivers; returns false for unknown
// ids without mutating anything.
func (s *Session) GotoCard(id string) bool {
	card := s.deck[id]
	if card == nil {
		return false
	}
	s.CurrentID = id
	s.History = nil

	if card.IsSplitDecision() {
		s.DecisionIndex = s.RememberedDecisionIndex(card)
		_, confirmed := s.DecisionRecords[card.ID]
		s.DecisionTapped = confirmed
	} else {
		s.DecisionIndex = 0
		s.DecisionTapped = false
	}
	s.CarouselIndex = 0

	s.Sync()
	s.notify()
	return true
}

// maybeStartTimer starts the elapsed clock on the first successful
// advance, or on reaching the configured auto-start card when the
// algorithm names one. It never resets a running clock.
func (s *Session) maybeStartTimer(reachedID string) {
	if s.TimerRunning || s.alg == nil {
		return
	}
	auto := s.alg.Meta.Timer.AutoStartOnCard
	if auto == "" || auto == reachedID {
		s.TimerRunning = true
	}
}
