package adapter_bubbletea

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ionut-t/wrapview/core"
)

func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func manyLines(n int) []byte {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "line %d", i)
	}
	return []byte(b.String())
}

func TestModelRangeText(t *testing.T) {
	doc := core.NewDocument([]byte("hello\nworld"), 4)

	got := modelRangeText(doc, core.NewRange(1, 3, 2, 3))
	if got != "llo\nwo" {
		t.Fatalf("range text: got %q, want %q", got, "llo\nwo")
	}

	if got := modelRangeText(doc, core.NewRange(1, 2, 1, 2)); got != "" {
		t.Fatalf("empty range: got %q, want empty", got)
	}
}

func TestLineNumberWidth(t *testing.T) {
	m := New(40, 10)
	m.SetContent(manyLines(5))

	if got := m.lineNumberWidth(); got != 5 {
		t.Fatalf("gutter width: got %d, want %d", got, 5)
	}

	m.HideLineNumbers(true)
	if got := m.lineNumberWidth(); got != 0 {
		t.Fatalf("hidden gutter width: got %d, want %d", got, 0)
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	m := New(20, 6)
	m.SetContent(manyLines(30))

	m.Focus()
	m.handleKey(keyMsg("G"))
	m.scrollToCursor()

	wantTop := 30 - m.viewport.Height + 1
	if m.topViewLine != wantTop {
		t.Fatalf("top view line: got %d, want %d", m.topViewLine, wantTop)
	}

	m.handleKey(keyMsg("g"))
	m.scrollToCursor()
	if m.topViewLine != 1 {
		t.Fatalf("top view line after g: got %d, want %d", m.topViewLine, 1)
	}
}

func TestCursorMovesAcrossWrappedLines(t *testing.T) {
	m := New(13, 6) // gutter 5 leaves 8 columns of text
	m.SetContent([]byte("hello world wide"))

	if got := m.vm.ViewLineCount(); got != 3 {
		t.Fatalf("view line count: got %d, want %d", got, 3)
	}

	m.Focus()
	m.handleKey(keyMsg("j"))
	if got := m.vm.ViewCursorPosition(); !got.Equals(core.NewPosition(2, 1)) {
		t.Fatalf("view cursor: got %+v, want line 2 column 1", got)
	}
	// Same model line, second wrapped segment.
	if got := m.vm.CursorPosition(); !got.Equals(core.NewPosition(1, 7)) {
		t.Fatalf("model cursor: got %+v, want (1,7)", got)
	}
}

func TestSelectionTracksViewRange(t *testing.T) {
	m := New(40, 10)
	m.SetContent([]byte("hello\nworld"))

	m.Focus()
	m.handleKey(keyMsg("v"))
	if m.selectionAnchor == nil {
		t.Fatal("v must set the selection anchor")
	}
	m.handleKey(keyMsg("j"))

	viewRange := core.RangeFromPositions(*m.selectionAnchor, m.vm.ViewCursorPosition())
	modelRange := m.vm.Converter().ConvertViewRangeToModelRange(viewRange)
	if got := modelRangeText(m.doc, modelRange); got != "hello\n" {
		t.Fatalf("selection text: got %q, want %q", got, "hello\n")
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.selectionAnchor != nil {
		t.Fatal("esc must clear the selection anchor")
	}
}

func TestWindowResizeRewraps(t *testing.T) {
	m := New(40, 10)
	m.SetContent([]byte("hello world wide"))

	if got := m.vm.ViewLineCount(); got != 1 {
		t.Fatalf("view line count wide: got %d, want %d", got, 1)
	}

	m.SetSize(13, 6)
	if got := m.vm.ViewLineCount(); got != 3 {
		t.Fatalf("view line count narrow: got %d, want %d", got, 3)
	}
}
