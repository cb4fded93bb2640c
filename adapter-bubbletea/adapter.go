package adapter_bubbletea

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ionut-t/wrapview/core"
	"github.com/ionut-t/wrapview/highlighter"
)

type Theme struct {
	StatusLineStyle        lipgloss.Style
	StatusChipStyle        lipgloss.Style
	MessageStyle           lipgloss.Style
	ErrorStyle             lipgloss.Style
	LineNumberStyle        lipgloss.Style
	CurrentLineNumberStyle lipgloss.Style
	SelectionStyle         lipgloss.Style
	CursorStyle            lipgloss.Style
	GhostTextStyle         lipgloss.Style
}

var DefaultTheme = Theme{
	StatusLineStyle:        lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	StatusChipStyle:        lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	MessageStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	LineNumberStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right),
	CurrentLineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Align(lipgloss.Right),
	SelectionStyle:         lipgloss.NewStyle().Background(lipgloss.Color("237")),
	CursorStyle:            lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	GhostTextStyle:         lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true),
}

// Model is a read-only file viewer: the view model computes wrapping and
// coordinates, this adapter only paints view lines and routes key events.
type Model struct {
	doc core.Document
	vm  *core.ViewModel
	hl  *highlighter.Highlighter

	viewport viewport.Model
	width    int
	height   int

	showLineNumbers    bool
	showTildeIndicator bool
	showStatusLine     bool
	theme              Theme

	topViewLine     int
	selectionAnchor *core.Position

	message   string
	err       error
	isFocused bool
}

type CopiedMsg struct {
	Text string
}

type errMsg error

type clearMsg struct{}

type refreshMsg struct{}

func (m *Model) dispatchClearMsg() tea.Cmd {
	return tea.Tick(time.Second*3, func(t time.Time) tea.Msg {
		return clearMsg{}
	})
}

func New(width, height int) Model {
	doc := core.NewDocument(nil, 4)

	m := Model{
		doc:                doc,
		viewport:           viewport.New(width, max(1, height-2)),
		showLineNumbers:    true,
		showTildeIndicator: true,
		showStatusLine:     true,
		theme:              DefaultTheme,
		topViewLine:        1,
	}
	m.rebuildViewModel()
	m.SetSize(width, height)

	return m
}

// rebuildViewModel wires the document and highlighter into a fresh view
// model, preserving the current wrapping column.
func (m *Model) rebuildViewModel() {
	var tokens core.TokenSource
	if m.hl != nil {
		tokens = m.hl
	}
	m.vm = core.NewViewModel(m.doc, core.ViewModelOptions{
		WrappingColumn: m.availableWidth(),
		Tokens:         tokens,
	})
}

// SetContent replaces the whole document.
func (m *Model) SetContent(content []byte) {
	m.doc.SetContent(content)
	if m.hl != nil {
		m.hl.InvalidateCache()
	}
	m.vm.OnFlush()
	m.topViewLine = 1
	m.selectionAnchor = nil
}

// SetLanguage enables syntax highlighting with a chroma language and theme.
func (m *Model) SetLanguage(language, theme string) {
	m.hl = highlighter.New(m.doc, language, theme)
	m.rebuildViewModel()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(1, height-2)

	m.vm.SetViewportGeometry(core.NewViewport(0, 0, float64(width), float64(m.viewport.Height)))
	m.vm.SetWrappingColumn(m.availableWidth())
	m.clampTopViewLine()
}

// availableWidth is the text width left of the viewport after the gutter.
func (m *Model) availableWidth() int {
	width := m.viewport.Width - m.lineNumberWidth()
	if width <= 0 {
		width = 1
	}
	return width
}

func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

func (m *Model) HideLineNumbers(hide bool) {
	m.showLineNumbers = !hide
	m.vm.SetWrappingColumn(m.availableWidth())
}

func (m *Model) ShowTildeIndicator(show bool) {
	m.showTildeIndicator = show
}

func (m *Model) HideStatusLine(hide bool) {
	m.showStatusLine = !hide
}

func (m *Model) Content() string {
	return m.doc.Content()
}

func (m *Model) Focus() {
	m.isFocused = true
}

func (m *Model) Blur() {
	m.isFocused = false
}

func (m *Model) IsFocused() bool {
	return m.isFocused
}

func (m Model) Init() tea.Cmd {
	return m.listenForUpdates()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if !m.isFocused {
			break
		}
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case CopiedMsg:
		m.message = fmt.Sprintf("%d characters copied", len([]rune(msg.Text)))
		m.err = nil
		cmds = append(cmds, m.dispatchClearMsg())

	case errMsg:
		m.message = ""
		m.err = msg
		cmds = append(cmds, m.dispatchClearMsg())

	case clearMsg:
		m.message = ""
		m.err = nil

	case refreshMsg:
		m.clampTopViewLine()
		cmds = append(cmds, m.listenForUpdates())
	}

	m.scrollToCursor()
	m.renderVisible()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	cursor := m.vm.ViewCursorPosition()

	switch msg.String() {
	case "up", "k":
		m.vm.MoveCursorToViewPosition(core.NewPosition(cursor.LineNumber-1, cursor.Column))
	case "down", "j":
		m.vm.MoveCursorToViewPosition(core.NewPosition(cursor.LineNumber+1, cursor.Column))
	case "left", "h":
		m.vm.MoveCursorToViewPosition(core.NewPosition(cursor.LineNumber, max(1, cursor.Column-1)))
	case "right", "l":
		m.vm.MoveCursorToViewPosition(core.NewPosition(cursor.LineNumber, cursor.Column+1))
	case "home", "0":
		m.vm.MoveCursorToViewPosition(core.NewPosition(cursor.LineNumber, 1))
	case "end", "$":
		m.vm.MoveCursorToViewPosition(core.NewPosition(cursor.LineNumber, m.width+1))
	case "pgup":
		m.vm.MoveCursorToViewPosition(core.NewPosition(cursor.LineNumber-m.viewport.Height, cursor.Column))
	case "pgdown":
		m.vm.MoveCursorToViewPosition(core.NewPosition(cursor.LineNumber+m.viewport.Height, cursor.Column))
	case "g":
		m.vm.MoveCursorToViewPosition(core.NewPosition(1, 1))
	case "G":
		m.vm.MoveCursorToViewPosition(core.NewPosition(m.vm.ViewLineCount(), 1))
	case "v":
		anchor := m.vm.ViewCursorPosition()
		m.selectionAnchor = &anchor
	case "esc":
		m.selectionAnchor = nil
	case "y":
		return m.copySelection()
	}

	return nil
}

// copySelection resolves the view-space selection to model text and writes
// it to the system clipboard.
func (m *Model) copySelection() tea.Cmd {
	if m.selectionAnchor == nil {
		return nil
	}

	viewRange := core.RangeFromPositions(*m.selectionAnchor, m.vm.ViewCursorPosition())
	modelRange := m.vm.Converter().ConvertViewRangeToModelRange(viewRange)
	text := modelRangeText(m.doc, modelRange)
	m.selectionAnchor = nil

	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return errMsg(err)
		}
		return CopiedMsg{Text: text}
	}
}

// modelRangeText extracts the document text covered by a model range.
func modelRangeText(text core.TextSource, r core.Range) string {
	if r.IsEmpty() {
		return ""
	}

	var b strings.Builder
	for line := r.StartLineNumber; line <= r.EndLineNumber; line++ {
		runes := []rune(text.LineContent(line))
		start := 0
		if line == r.StartLineNumber {
			start = min(max(r.StartColumn-1, 0), len(runes))
		}
		end := len(runes)
		if line == r.EndLineNumber {
			end = min(max(r.EndColumn-1, start), len(runes))
		}
		b.WriteString(string(runes[start:end]))
		if line < r.EndLineNumber {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) View() string {
	content := m.viewport.View()

	statusLine := m.getStatusLine()
	paddingWidth := m.width - lipgloss.Width(statusLine)
	if paddingWidth > 0 {
		statusLine += m.theme.StatusLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}

	messageLine := ""
	if m.message != "" {
		messageLine = m.theme.MessageStyle.Render(m.message)
	}
	if m.err != nil {
		messageLine = m.theme.ErrorStyle.Render(m.err.Error())
	}

	if !m.showStatusLine {
		return content
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		statusLine,
		messageLine,
	)
}

func (m *Model) getStatusLine() string {
	if !m.showStatusLine {
		return ""
	}

	statusLine := m.theme.StatusChipStyle.Render(" VIEW ")
	if m.selectionAnchor != nil {
		statusLine = m.theme.StatusChipStyle.Render(" SELECT ")
	}

	cursor := m.vm.CursorPosition()
	cursorInfo := fmt.Sprintf("%d:%d ", cursor.LineNumber, cursor.Column)

	width := m.width - (lipgloss.Width(cursorInfo) + lipgloss.Width(statusLine))
	gap := strings.Repeat(" ", max(0, width))

	return statusLine + m.theme.StatusLineStyle.Render(gap+cursorInfo)
}

// listenForUpdates turns view-model change events into render refreshes.
func (m *Model) listenForUpdates() tea.Cmd {
	updates := m.vm.Updates()
	return func() tea.Msg {
		<-updates
		return refreshMsg{}
	}
}
