package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/cond"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/engine"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/wheel"
)

// updateCardContent rebuilds the card viewport from session state. Called
// after every committed mutation and on resize.
func (m *Model) updateCardContent() {
	card := m.session.Current()
	if card == nil {
		m.viewport.SetContent("No card loaded.")
		return
	}

	var b strings.Builder

	body := card.Content.Body
	title := card.Content.Title

	// A carousel card shows one slide at a time; the carousel index is
	// per-card transient state and resets on every navigation.
	if len(card.Content.Slides) > 0 {
		idx := m.session.CarouselIndex
		if idx < 0 || idx >= len(card.Content.Slides) {
			idx = 0
		}
		slide := card.Content.Slides[idx]
		if slide.Title != "" {
			title = slide.Title
		}
		body = slide.Body
		fmt.Fprintf(&b, "%s  (%d/%d)\n\n", title, idx+1, len(card.Content.Slides))
	} else if title != "" {
		fmt.Fprintf(&b, "%s\n\n", title)
	}

	if body != "" {
		rendered := body
		if m.renderer != nil {
			if out, err := m.renderer.Render(body); err == nil {
				rendered = out
			}
		}
		b.WriteString(strings.TrimRight(rendered, "\n"))
		b.WriteString("\n")
	}

	if card.IsSplitDecision() {
		b.WriteString("\n")
		b.WriteString(m.renderDecisionOptions(card))
	}

	if visible := m.visibleChecklist(card); len(visible) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderChecklist(visible))
	}

	m.viewport.SetContent(wordwrap.String(b.String(), m.viewport.Width))
}

// renderDecisionOptions lists the branch options with the highlighted one
// marked. The confirm hint only appears once an option has been explicitly
// selected; an unselected decision cannot be committed by any gesture.
func (m *Model) renderDecisionOptions(card *model.Card) string {
	var b strings.Builder
	optStyle := m.theme.Base
	selStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Decision).Bold(true)

	for i, opt := range card.Transitions.Options {
		cursor := "  "
		style := optStyle
		if i == m.session.DecisionIndex {
			style = selStyle
			if m.session.DecisionTapped {
				cursor = "> "
			} else {
				cursor = "~ "
			}
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(fmt.Sprintf("[%d] %s", i+1, opt.Label)))
		b.WriteString("\n")
	}
	if m.session.DecisionTapped {
		b.WriteString(m.theme.Ticker.Render("enter to confirm"))
	} else {
		b.WriteString(m.theme.Ticker.Render("select an option first"))
	}
	b.WriteString("\n")
	return b.String()
}

// visibleChecklist filters the card's checklist through each item's
// visibility condition against current checklist state.
func (m *Model) visibleChecklist(card *model.Card) []model.ChecklistItem {
	var out []model.ChecklistItem
	for _, item := range card.Checklist {
		if cond.Visible(item.VisibleWhen, m.session.ChecklistState) {
			out = append(out, item)
		}
	}
	return out
}

func (m *Model) renderChecklist(items []model.ChecklistItem) string {
	var b strings.Builder
	for i, item := range items {
		box := "[ ]"
		if m.session.ChecklistState[item.ID] {
			box = "[x]"
		}
		cursor := "  "
		if i == m.checkCursor {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, box, item.Label)
	}
	return b.String()
}

// renderCardPane wraps the viewport in a mode-colored frame with the mode
// badge and elapsed timer in the title row.
func (m *Model) renderCardPane(w, h int) string {
	mode := m.session.Wheel.Mode.String()
	badge := m.theme.Renderer.NewStyle().
		Foreground(m.theme.ModeColor(mode)).
		Bold(true).
		Render(strings.ToUpper(mode))

	timer := m.theme.TimerOff.Render("--:--")
	if m.session.TimerRunning {
		timer = m.theme.TimerOn.Render(formatTimer(m.session.TimerSeconds))
	}

	gap := w - lipgloss.Width(badge) - lipgloss.Width(timer) - 4
	if gap < 1 {
		gap = 1
	}
	titleRow := badge + strings.Repeat(" ", gap) + timer

	return titleRow + "\n" + m.viewport.View()
}

func formatTimer(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// tickerText is the coaching line shown under the panes.
func (m *Model) tickerText() string {
	switch m.session.Wheel.Mode {
	case wheel.ModeCover:
		return "Drag the wheel forward to begin."
	case wheel.ModeDecision:
		if !m.session.DecisionTapped {
			return "Pick a branch with up/down or 1-9, then confirm with enter."
		}
		return "Confirm with enter, or drag the wheel forward."
	case wheel.ModeLoop:
		return "Stay in the loop. Drag forward when the step is done."
	case wheel.ModeTerminal:
		return "Protocol complete. Rewind to review earlier steps."
	case wheel.ModeLinear:
		if engine.CanTapAdvance(m.session.Current()) {
			return "Drag the wheel or press space to continue."
		}
	}
	return ""
}
