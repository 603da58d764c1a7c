package wheel

import (
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
)

// Mode is the wheel's navigation mode. It is always a pure function of the
// active card, re-derived on every render; the wheel keeps no mode history.
type Mode int

const (
	ModeCover Mode = iota
	ModeLinear
	ModeDecision
	ModeLoop
	ModeTerminal
)

func (m Mode) String() string {
	switch m {
	case ModeCover:
		return "cover"
	case ModeLinear:
		return "linear"
	case ModeDecision:
		return "decision"
	case ModeLoop:
		return "loop"
	case ModeTerminal:
		return "terminal"
	}
	return "unknown"
}

// Phases that put the wheel into loop mode regardless of card type.
const (
	PhaseLoop    = "loop"
	PhaseCPRLoop = "cpr_loop"
)

// Classify maps the active card to a wheel mode. The switch is exhaustive
// over model.CardType; a new card type must be given a mode here.
func Classify(card *model.Card) Mode {
	if card == nil {
		return ModeLinear
	}
	switch card.Type {
	case model.TypeCover:
		return ModeCover
	case model.TypeDecision:
		return ModeDecision
	case model.TypeTerminal:
		return ModeTerminal
	case model.TypeStandard, model.TypeCarouselAction, model.TypeLoopStart, model.TypeAction:
		if card.Wheel.Phase == PhaseLoop || card.Wheel.Phase == PhaseCPRLoop {
			return ModeLoop
		}
		return ModeLinear
	}
	return ModeLinear
}
