// Package automation exposes the navigator to scripted drivers: demos,
// integration tests, and agents that need to walk a protocol headlessly.
// Every mutating call returns a Result carrying the full post-call
// snapshot, so drivers assert on exact state instead of poking internals.
package automation

import (
	"fmt"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/engine"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/wheel"
)

// CardSummary is the shallow card view used in listings and snapshots.
type CardSummary struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Complete bool     `json:"complete"`
	Options  []string `json:"options,omitempty"`
}

// Snapshot is a full dump of navigation state at one instant.
type Snapshot struct {
	AlgorithmID     string              `json:"algorithm_id"`
	CurrentID       string              `json:"current_id"`
	History         []string            `json:"history"`
	DecisionIndex   int                 `json:"decision_index"`
	DecisionTapped  bool                `json:"decision_tapped"`
	DecisionRecords map[string]int      `json:"decision_records"`
	DecisionTrail   []engine.TrailEntry `json:"decision_trail"`
	CarouselIndex   int                 `json:"carousel_index"`
	TimerSeconds    int                 `json:"timer_seconds"`
	TimerRunning    bool                `json:"timer_running"`
	ChecklistState  map[string]bool     `json:"checklist_state"`
	Anchors         []wheel.Anchor      `json:"anchors"`
	AnchorIndex     int                 `json:"anchor_index"`
	WheelMode       string              `json:"wheel_mode"`
	WheelAngle      float64             `json:"wheel_angle"`
	VisualAngle     float64             `json:"visual_angle"`
	Card            CardSummary         `json:"card"`
}

// Result is the uniform return of every mutating call. Failures are
// values, never panics, so drivers can branch without recover.
type Result struct {
	OK       bool     `json:"ok"`
	Error    string   `json:"error,omitempty"`
	Snapshot Snapshot `json:"snapshot"`
}

// Controller drives a Session on behalf of an external caller.
type Controller struct {
	session  *engine.Session
	fallback func() *model.Algorithm
}

// NewController wraps a session. fallback supplies the algorithm used by
// Reset when nothing is loaded yet; nil means Reset requires a prior load.
func NewController(s *engine.Session, fallback func() *model.Algorithm) *Controller {
	return &Controller{session: s, fallback: fallback}
}

// ListCards returns a summary of every card in deck order.
func (c *Controller) ListCards() []CardSummary {
	alg := c.session.Algorithm()
	if alg == nil {
		return nil
	}
	out := make([]CardSummary, 0, len(alg.Deck))
	for i := range alg.Deck {
		out = append(out, summarize(&alg.Deck[i]))
	}
	return out
}

// GetModel returns the loaded algorithm graph.
func (c *Controller) GetModel() *model.Algorithm {
	return c.session.Algorithm()
}

// GetSnapshot dumps the current navigation state. All maps and slices are
// copies; drivers cannot alias session internals through a snapshot.
func (c *Controller) GetSnapshot() Snapshot {
	s := c.session
	snap := Snapshot{
		CurrentID:       s.CurrentID,
		History:         append([]string(nil), s.History...),
		DecisionIndex:   s.DecisionIndex,
		DecisionTapped:  s.DecisionTapped,
		DecisionRecords: copyIntMap(s.DecisionRecords),
		DecisionTrail:   append([]engine.TrailEntry(nil), s.DecisionTrail...),
		CarouselIndex:   s.CarouselIndex,
		TimerSeconds:    s.TimerSeconds,
		TimerRunning:    s.TimerRunning,
		ChecklistState:  copyBoolMap(s.ChecklistState),
		Anchors:         append([]wheel.Anchor(nil), s.Anchors...),
		AnchorIndex:     s.AnchorIndex,
		WheelMode:       s.Wheel.Mode.String(),
		WheelAngle:      s.Wheel.AngleDegrees,
		VisualAngle:     s.Wheel.VisualAngle,
	}
	if alg := s.Algorithm(); alg != nil {
		snap.AlgorithmID = alg.Meta.ID
	}
	if card := s.Current(); card != nil {
		snap.Card = summarize(card)
	}
	return snap
}

// Reset re-applies the current algorithm from scratch, or the fallback
// when none is loaded.
func (c *Controller) Reset() Result {
	alg := c.session.Algorithm()
	if alg == nil {
		if c.fallback == nil {
			return c.fail("no algorithm loaded")
		}
		alg = c.fallback()
	}
	c.session.ApplyAlgorithm(alg)
	return c.ok()
}

// GotoCard jumps straight to a card id, bypassing graph edges.
func (c *Controller) GotoCard(id string) Result {
	if !c.session.GotoCard(id) {
		return c.fail(fmt.Sprintf("unknown card id %q", id))
	}
	return c.ok()
}

// SelectDecisionOption highlights a branch option on the active decision.
func (c *Controller) SelectDecisionOption(index int) Result {
	if !c.session.SelectDecisionOption(index) {
		return c.fail(fmt.Sprintf("card %q is not a decision", c.session.CurrentID))
	}
	return c.ok()
}

// Advance commits one forward transition. Automation is treated as
// pre-confirmed, so decisions resolve to the selected option.
func (c *Controller) Advance() Result {
	if !c.session.Advance(engine.AdvanceOptions{Source: engine.SourceAutomation}) {
		return c.fail(fmt.Sprintf("cannot advance from card %q", c.session.CurrentID))
	}
	return c.ok()
}

// Back rewinds one step of history.
func (c *Controller) Back() Result {
	if !c.session.Rewind() {
		return c.fail("history is empty")
	}
	return c.ok()
}

func (c *Controller) ok() Result {
	return Result{OK: true, Snapshot: c.GetSnapshot()}
}

func (c *Controller) fail(msg string) Result {
	return Result{OK: false, Error: msg, Snapshot: c.GetSnapshot()}
}

func summarize(card *model.Card) CardSummary {
	sum := CardSummary{
		ID:       card.ID,
		Type:     string(card.Type),
		Title:    card.Content.Title,
		Complete: card.IsComplete(),
	}
	if card.IsSplitDecision() {
		for _, opt := range card.Transitions.Options {
			sum.Options = append(sum.Options, opt.Label)
		}
	}
	return sum
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
