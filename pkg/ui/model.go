package ui

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/automation"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/engine"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/wheel"
)

// Minimum terminal width before the zone column is dropped.
const zoneColumnThreshold = 90

// tickMsg drives the once-per-second elapsed timer.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// keyMap is the navigator's key bindings.
type keyMap struct {
	Forward   key.Binding
	Back      key.Binding
	Confirm   key.Binding
	OptionUp  key.Binding
	OptionDn  key.Binding
	Slide     key.Binding
	SlideBack key.Binding
	Toggle    key.Binding
	Yank      key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Forward:   key.NewBinding(key.WithKeys("right", "l", " "), key.WithHelp("space/→", "advance")),
		Back:      key.NewBinding(key.WithKeys("left", "h", "backspace"), key.WithHelp("backspace/←", "rewind")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm decision")),
		OptionUp:  key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "option/cursor up")),
		OptionDn:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "option/cursor down")),
		Slide:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next slide")),
		SlideBack: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev slide")),
		Toggle:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle checklist item")),
		Yank:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy snapshot")),
		Reset:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "restart protocol")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.Back, k.Confirm, k.Yank, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Back, k.Confirm},
		{k.OptionUp, k.OptionDn, k.Slide, k.SlideBack},
		{k.Toggle, k.Yank, k.Reset, k.Help, k.Quit},
	}
}

// Model is the main Bubble Tea model for the protocol navigator.
type Model struct {
	session *engine.Session
	ctrl    *automation.Controller

	// UI components
	viewport viewport.Model
	renderer *glamour.TermRenderer
	help     help.Model
	keys     keyMap
	theme    Theme

	ready         bool
	width, height int
	showHelp      bool
	showZones     bool

	// Pane geometry for mouse hit-testing, recomputed on resize.
	wheelRect   rect
	historyRect rect
	previewRect rect

	// Gesture state. A single owner token is shared by the wheel drag and
	// both zone drags; at most one is live per pointer sequence.
	owner    gestureOwner
	knobDrag wheelDrag
	cardDrag zoneDrag

	checkCursor int

	statusMsg     string
	statusIsError bool
}

// NewModel wraps a session that already has an algorithm applied.
func NewModel(session *engine.Session, ctrl *automation.Controller) Model {
	theme := DefaultTheme(lipgloss.NewRenderer(os.Stdout))
	h := help.New()
	return Model{
		session: session,
		ctrl:    ctrl,
		help:    h,
		keys:    defaultKeyMap(),
		theme:   theme,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.session.TickTimer()
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()

		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(m.cardInnerWidth()),
		); err == nil {
			m.renderer = r
		}
		m.viewport = viewport.New(m.cardInnerWidth(), m.bodyHeight()-3)
		m.updateCardContent()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""
	m.statusIsError = false

	// Digits select decision options directly.
	if s := msg.String(); len(s) == 1 && s >= "1" && s <= "9" {
		if n, err := strconv.Atoi(s); err == nil && m.session.Wheel.Mode == wheel.ModeDecision {
			m.session.SelectDecisionOption(n - 1)
			m.updateCardContent()
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case key.Matches(msg, m.keys.Forward):
		if engine.CanTapAdvance(m.session.Current()) {
			m.session.Advance(engine.AdvanceOptions{Source: engine.SourceUI})
			m.afterNavigate()
		}

	case key.Matches(msg, m.keys.Back):
		m.session.Rewind()
		m.afterNavigate()

	case key.Matches(msg, m.keys.Confirm):
		if m.session.Wheel.Mode == wheel.ModeDecision && m.session.DecisionTapped {
			m.session.Advance(engine.AdvanceOptions{Source: engine.SourceUI, SplitConfirmed: true})
			m.afterNavigate()
		}

	case key.Matches(msg, m.keys.OptionUp):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.OptionDn):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Slide):
		m.moveSlide(1)

	case key.Matches(msg, m.keys.SlideBack):
		m.moveSlide(-1)

	case key.Matches(msg, m.keys.Toggle):
		m.toggleChecklist()

	case key.Matches(msg, m.keys.Yank):
		m.yankSnapshot()

	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
		m.checkCursor = 0
		m.updateCardContent()
		m.setStatus("protocol restarted", false)
	}
	return m, nil
}

// moveCursor moves the decision highlight on decision cards and the
// checklist cursor everywhere else. Selecting a decision option this way
// is an explicit pick: it arms the confirmation.
func (m *Model) moveCursor(delta int) {
	if m.session.Wheel.Mode == wheel.ModeDecision {
		m.session.SelectDecisionOption(m.session.DecisionIndex + delta)
		m.updateCardContent()
		return
	}
	card := m.session.Current()
	if card == nil {
		return
	}
	n := len(m.visibleChecklist(card))
	if n == 0 {
		return
	}
	m.checkCursor = (m.checkCursor + delta + n) % n
	m.updateCardContent()
}

func (m *Model) moveSlide(delta int) {
	m.session.MoveCarousel(delta)
	m.updateCardContent()
}

func (m *Model) toggleChecklist() {
	card := m.session.Current()
	if card == nil {
		return
	}
	visible := m.visibleChecklist(card)
	if m.checkCursor >= len(visible) {
		return
	}
	m.session.ToggleChecklistItem(visible[m.checkCursor].ID)
	// Toggling can hide items; keep the cursor in range.
	if n := len(m.visibleChecklist(card)); m.checkCursor >= n && n > 0 {
		m.checkCursor = n - 1
	}
	m.updateCardContent()
}

func (m *Model) yankSnapshot() {
	snap := m.ctrl.GetSnapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err == nil {
		err = clipboard.WriteAll(string(data))
	}
	if err != nil {
		m.setStatus("copy failed: "+err.Error(), true)
		return
	}
	m.setStatus("snapshot copied to clipboard", false)
}

// afterNavigate resets per-card UI state after an advance or rewind.
func (m *Model) afterNavigate() {
	m.checkCursor = 0
	m.updateCardContent()
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsError = isErr
}

func (m Model) View() string {
	if !m.ready {
		return "Loading protocol..."
	}

	title := "Protocol Navigator"
	if alg := m.session.Algorithm(); alg != nil && alg.Meta.Title != "" {
		title = alg.Meta.Title
	}
	header := m.theme.Header.Render(title)

	panel := m.theme.Panel
	wheelPane := panel.Render(m.renderWheelPane(m.wheelInnerWidth(), m.bodyHeight()-2))
	cardPane := panel.Render(m.renderCardPane(m.cardInnerWidth(), m.bodyHeight()-2))

	var body string
	if m.showZones {
		zoneW := m.zoneInnerWidth()
		historyPane := panel.Render(m.renderHistoryZone(zoneW, m.historyRect.h-2))
		previewPane := panel.Render(m.renderPreviewZone(zoneW, m.previewRect.h-2))
		zones := lipgloss.JoinVertical(lipgloss.Left, historyPane, previewPane)
		body = lipgloss.JoinHorizontal(lipgloss.Top, wheelPane, cardPane, zones)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, wheelPane, cardPane)
	}

	ticker := m.theme.Ticker.Render(m.tickerText())
	if m.statusMsg != "" {
		style := m.theme.Ticker
		if m.statusIsError {
			style = m.theme.Renderer.NewStyle().Foreground(m.theme.Danger)
		}
		ticker = style.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		ticker,
		m.help.View(m.keys),
	)
}

// layout computes pane rectangles for mouse hit-testing. Rendering derives
// its sizes from the same numbers so the two stay in agreement.
func (m *Model) layout() {
	m.showZones = m.width >= zoneColumnThreshold

	bodyY := 1
	bodyH := m.bodyHeight()

	wheelW := m.width * 2 / 5
	if wheelW < 24 {
		wheelW = 24
	}
	if wheelW > 52 {
		wheelW = 52
	}
	zoneW := 0
	if m.showZones {
		zoneW = 26
	}
	cardW := m.width - wheelW - zoneW
	if cardW < 20 {
		cardW = 20
	}

	m.wheelRect = rect{x: 0, y: bodyY, w: wheelW, h: bodyH}
	zh := bodyH / 2
	m.historyRect = rect{x: wheelW + cardW, y: bodyY, w: zoneW, h: zh}
	m.previewRect = rect{x: wheelW + cardW, y: bodyY + zh, w: zoneW, h: bodyH - zh}
}

func (m *Model) bodyHeight() int {
	h := m.height - 3
	if h < 9 {
		h = 9
	}
	return h
}

// Inner pane widths account for the panel border and padding overhead.
func (m *Model) wheelInnerWidth() int { return m.wheelRect.w - 4 }
func (m *Model) cardInnerWidth() int {
	zoneW := 0
	if m.showZones {
		zoneW = 26
	}
	w := m.width - m.wheelRect.w - zoneW - 4
	if w < 16 {
		w = 16
	}
	return w
}
func (m *Model) zoneInnerWidth() int { return 26 - 4 }

// Run starts the TUI over a prepared session.
func Run(session *engine.Session, ctrl *automation.Controller) error {
	p := tea.NewProgram(NewModel(session, ctrl), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
