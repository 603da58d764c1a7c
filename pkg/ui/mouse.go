package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/engine"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/wheel"
)

// handleMouse routes pointer events through the gesture owner token. Only
// a press on an unowned pointer can start a drag; motion and release are
// delivered solely to the owning gesture, and release always clears the
// token so nothing leaks into the next sequence.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.LineUp(3)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.viewport.LineDown(3)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.owner != ownerNone {
			return m, nil
		}
		switch {
		case m.wheelRect.contains(msg.X, msg.Y):
			m.owner = ownerWheel
			deg := wheel.ClampToArc(m.session.Arc(), m.pointerAngle(msg.X, msg.Y))
			m.knobDrag.start(deg)

		case m.showZones && m.previewRect.contains(msg.X, msg.Y) && m.previewCard() != nil:
			m.owner = ownerPreview
			m.cardDrag.start(ownerPreview, msg.Y, m.previewRect.h)

		case m.showZones && m.historyRect.contains(msg.X, msg.Y) && len(m.session.History) > 0:
			m.owner = ownerHistory
			m.cardDrag.start(ownerHistory, msg.Y, m.historyRect.h)
		}

	case tea.MouseActionMotion:
		switch m.owner {
		case ownerWheel:
			deg := wheel.ClampToArc(m.session.Arc(), m.pointerAngle(msg.X, msg.Y))
			m.knobDrag.move(deg)
			switch m.knobDrag.intent(m.session.Arc().Direction) {
			case wheel.IntentForward:
				// A decision only commits when it was explicitly selected
				// beforehand; a bare forward drag stays inert on it.
				confirmed := m.session.Wheel.Mode == wheel.ModeDecision && m.session.DecisionTapped
				if m.session.Advance(engine.AdvanceOptions{Source: engine.SourceWheel, SplitConfirmed: confirmed}) {
					m.knobDrag.consumed = true
					m.afterNavigate()
				}
			case wheel.IntentReverse:
				if m.session.Rewind() {
					m.knobDrag.consumed = true
					m.afterNavigate()
				}
			}

		case ownerPreview, ownerHistory:
			m.cardDrag.move(msg.Y)
		}

	case tea.MouseActionRelease:
		switch m.owner {
		case ownerWheel:
			m.knobDrag.reset()
			// Snap the knob back onto the committed anchor; an inert drag
			// leaves no residual visual state.
			m.session.Sync()

		case ownerPreview, ownerHistory:
			zone, commit := m.cardDrag.release()
			if commit {
				if zone == ownerPreview {
					m.session.Advance(engine.AdvanceOptions{Source: engine.SourceZone})
				} else {
					m.session.Rewind()
				}
				m.afterNavigate()
			}
		}
		m.owner = ownerNone
	}
	return m, nil
}

// pointerAngle maps a terminal cell inside the wheel pane to a design
// angle, using the same geometry the wheel canvas renders with.
func (m *Model) pointerAngle(x, y int) float64 {
	c := newWheelCanvas(m.wheelInnerWidth(), m.bodyHeight()-2)
	innerX := m.wheelRect.x + 2
	innerY := m.wheelRect.y + 1
	return c.unproject(x-innerX, y-innerY)
}
