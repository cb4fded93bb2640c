package adapter_bubbletea

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ionut-t/wrapview/core"
)

// lineNumberWidth computes the gutter width for the current document,
// including one trailing padding column.
func (m *Model) lineNumberWidth() int {
	if !m.showLineNumbers {
		return 0
	}
	maxWidth := len(strconv.Itoa(max(1, m.doc.LineCount())))
	return min(max(4, maxWidth)+1, 10)
}

func (m *Model) clampTopViewLine() {
	maxTop := max(1, m.vm.ViewLineCount()-m.viewport.Height+1)
	if m.topViewLine > maxTop {
		m.topViewLine = maxTop
	}
	if m.topViewLine < 1 {
		m.topViewLine = 1
	}
}

// scrollToCursor moves the top view line so the cursor's view line stays
// inside the viewport.
func (m *Model) scrollToCursor() {
	cursorLine := m.vm.ViewCursorPosition().LineNumber

	if cursorLine < m.topViewLine {
		m.topViewLine = cursorLine
	} else if cursorLine >= m.topViewLine+m.viewport.Height {
		m.topViewLine = cursorLine - m.viewport.Height + 1
	}
	m.clampTopViewLine()
}

// renderVisible paints the visible view lines into the bubbles viewport.
func (m *Model) renderVisible() {
	lineNumWidth := m.lineNumberWidth()
	top := m.topViewLine
	end := min(top+m.viewport.Height-1, m.vm.ViewLineCount())

	m.vm.SetViewport(top, end, false)

	cursor := m.vm.ViewCursorPosition()

	var selection *core.Range
	if m.selectionAnchor != nil {
		r := core.RangeFromPositions(*m.selectionAnchor, cursor)
		selection = &r
	}

	var b strings.Builder
	rendered := 0
	prevModelLine := 0
	if top > 1 {
		prevModelLine = m.vm.Converter().ConvertViewPositionToModelPosition(core.NewPosition(top-1, 1)).LineNumber
	}

	for viewLine := top; viewLine <= end; viewLine++ {
		rd := m.vm.GetViewLineRenderingData(viewLine)
		modelLine := m.vm.Converter().ConvertViewPositionToModelPosition(core.NewPosition(viewLine, 1)).LineNumber

		if m.showLineNumbers {
			b.WriteString(m.renderGutter(modelLine, modelLine != prevModelLine, lineNumWidth))
		}
		prevModelLine = modelLine

		m.renderLineContent(&b, rd, viewLine, cursor, selection)

		b.WriteString("\n")
		rendered++
	}

	for rendered < m.viewport.Height {
		if m.showLineNumbers && m.showTildeIndicator {
			b.WriteString(m.theme.LineNumberStyle.Width(lineNumWidth-1).Render("~") + " ")
		}
		b.WriteString("\n")
		rendered++
	}

	m.viewport.SetContent(strings.TrimSuffix(b.String(), "\n"))
}

// renderGutter renders the line-number column for one view line. Only the
// first segment of a wrapped line shows its number.
func (m *Model) renderGutter(modelLine int, firstSegment bool, lineNumWidth int) string {
	lineNumStr := ""
	style := m.theme.LineNumberStyle
	if firstSegment {
		lineNumStr = strconv.Itoa(modelLine)
		if modelLine == m.vm.CursorPosition().LineNumber {
			style = m.theme.CurrentLineNumberStyle
		}
	}
	return style.Width(lineNumWidth-1).Render(lineNumStr) + " "
}

// renderLineContent styles one view line rune by rune: token class first,
// inline decorations on top, then selection background and the cursor block.
func (m *Model) renderLineContent(b *strings.Builder, rd core.ViewLineRenderingData, viewLine int, cursor core.Position, selection *core.Range) {
	runes := []rune(rd.Content)

	tokenIdx := 0
	for idx, r := range runes {
		for tokenIdx < len(rd.Tokens) && rd.Tokens[tokenIdx].EndOffset <= idx {
			tokenIdx++
		}

		style := lipgloss.NewStyle()
		if tokenIdx < len(rd.Tokens) && rd.Tokens[tokenIdx].Class != "" && m.hl != nil {
			style = m.hl.StyleForClass(rd.Tokens[tokenIdx].Class)
		}
		for _, deco := range rd.InlineDecorations {
			if idx >= deco.StartOffset && idx < deco.EndOffset {
				style = m.theme.GhostTextStyle
			}
		}

		pos := core.NewPosition(viewLine, idx+1)
		if selection != nil && selection.ContainsPosition(pos) {
			style = style.Background(m.theme.SelectionStyle.GetBackground())
		}

		if m.isFocused && pos.Equals(cursor) {
			style = m.theme.CursorStyle
		}

		b.WriteString(style.Render(string(r)))
	}

	// Cursor sitting past the last character renders as a block.
	if m.isFocused && cursor.LineNumber == viewLine && cursor.Column == len(runes)+1 {
		b.WriteString(m.theme.CursorStyle.Render(" "))
	}
}
