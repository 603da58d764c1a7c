package ui

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
)

// previewCard is the card a committed forward move would land on, or nil
// when forward movement needs more than a drag: decisions are excluded
// from zone-dragging so the preview path can never bypass the
// split-confirmation guard.
func (m *Model) previewCard() *model.Card {
	card := m.session.Current()
	if card == nil || card.IsComplete() {
		return nil
	}
	switch card.Transitions.Kind() {
	case model.TransitionLinear:
		return m.session.Card(card.Transitions.NextID)
	case model.TransitionSelfLoop:
		next := card.Transitions.NextID
		if next == "" {
			next = card.ID
		}
		return m.session.Card(next)
	}
	return nil
}

// historyCard is the card a rewind would restore, or nil with no history.
func (m *Model) historyCard() *model.Card {
	if len(m.session.History) == 0 {
		return nil
	}
	return m.session.Card(m.session.History[len(m.session.History)-1])
}

// renderHistoryZone shows the tail of the visit history, most recent at
// the bottom where it can be grabbed and dragged upward.
func (m *Model) renderHistoryZone(w, h int) string {
	lines := make([]string, 0, h)
	hist := m.session.History
	capacity := h - 1
	if capacity < 1 {
		capacity = 1
	}
	start := len(hist) - capacity
	if start < 0 {
		start = 0
	}
	for _, id := range hist[start:] {
		lines = append(lines, clipTitle(m.cardTitle(id), w))
	}
	if len(lines) == 0 {
		lines = append(lines, m.theme.Ticker.Render("no history"))
	} else if m.owner == ownerHistory && m.cardDrag.active {
		// Rubber-band feedback: shift the stack with the drag, clamped to
		// the zone top.
		shift := -m.cardDrag.offsetY
		if shift > 0 {
			if shift > len(lines)-1 {
				shift = len(lines) - 1
			}
			lines = append(lines[shift:], make([]string, shift)...)
		}
	}
	return strings.Join(lines, "\n")
}

// renderPreviewZone shows the upcoming card. While dragging, the card
// slides down with the pointer until the commit threshold.
func (m *Model) renderPreviewZone(w, h int) string {
	next := m.previewCard()
	if next == nil {
		return m.theme.Ticker.Render("--")
	}

	pad := 0
	if m.owner == ownerPreview && m.cardDrag.active {
		pad = m.cardDrag.offsetY
		if pad < 0 {
			pad = 0
		}
		if pad > h-1 {
			pad = h - 1
		}
	}
	var b strings.Builder
	b.WriteString(strings.Repeat("\n", pad))
	b.WriteString(clipTitle(next.Content.Title, w))
	b.WriteString("\n")
	b.WriteString(m.theme.Ticker.Render("drag down to advance"))
	return b.String()
}

func (m *Model) cardTitle(id string) string {
	if card := m.session.Card(id); card != nil && card.Content.Title != "" {
		return card.Content.Title
	}
	return id
}

// clipTitle shortens a title to the zone width by display cells, so wide
// glyphs and multibyte runes in card titles never split or overflow.
func clipTitle(s string, w int) string {
	if w > 1 && ansi.PrintableRuneWidth(s) > w {
		return truncate.StringWithTail(s, uint(w), "…")
	}
	return s
}
