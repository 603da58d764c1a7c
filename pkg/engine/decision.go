package engine

import (
	"math"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
)

// NormalizeDecisionIndex clamps a requested option index into the card's
// valid range [0, optionCount-1]. Non-split cards and malformed input,
// including non-finite numbers, normalize to 0. Non-integral requests are
// floored first.
func NormalizeDecisionIndex(card *model.Card, requested float64) int {
	if card == nil || !card.IsSplitDecision() {
		return 0
	}
	if math.IsNaN(requested) || math.IsInf(requested, 0) {
		return 0
	}
	idx := int(math.Floor(requested))
	max := len(card.Transitions.Options) - 1
	if idx < 0 {
		return 0
	}
	if idx > max {
		return max
	}
	return idx
}

// RememberedDecisionIndex returns the option index a decision card should
// show: the committed choice from a previous confirmation when one exists,
// otherwise the live decision index. Rewinding back onto a decision
// restores what the user picked, not option 0.
func (s *Session) RememberedDecisionIndex(card *model.Card) int {
	if card == nil {
		return 0
	}
	if rec, ok := s.DecisionRecords[card.ID]; ok {
		return NormalizeDecisionIndex(card, float64(rec))
	}
	return NormalizeDecisionIndex(card, float64(s.DecisionIndex))
}

// SelectDecisionOption highlights an option on the active decision card
// and marks the decision as explicitly tapped, which is what arms the
// subsequent confirmation. Returns false on non-decision cards.
func (s *Session) SelectDecisionOption(index int) bool {
	card := s.Current()
	if !card.IsSplitDecision() {
		return false
	}
	s.DecisionIndex = NormalizeDecisionIndex(card, float64(index))
	s.DecisionTapped = true
	s.notify()
	return true
}
