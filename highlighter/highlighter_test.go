package highlighter

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/ionut-t/wrapview/core"
)

type stubText struct {
	lines []string
}

func (s *stubText) LineCount() int { return len(s.lines) }

func (s *stubText) LineContent(lineNumber int) string {
	if lineNumber < 1 || lineNumber > len(s.lines) {
		return ""
	}
	return s.lines[lineNumber-1]
}

func (s *stubText) LineLength(lineNumber int) int {
	return len([]rune(s.LineContent(lineNumber)))
}

func (s *stubText) TabSize() int                    { return 4 }
func (s *stubText) MightContainNonBasicASCII() bool { return false }
func (s *stubText) MightContainRTL() bool           { return false }

func assertCoversLine(t *testing.T, runs []core.TokenRun, lineLength int) {
	t.Helper()
	if len(runs) == 0 {
		t.Fatal("expected token runs")
	}
	prev := 0
	for i, run := range runs {
		if run.EndOffset <= prev {
			t.Fatalf("run %d: end offset %d not increasing past %d", i, run.EndOffset, prev)
		}
		prev = run.EndOffset
	}
	if prev != lineLength {
		t.Fatalf("runs end at %d, want line length %d", prev, lineLength)
	}
}

func TestHighlighter_LineTokensCoverEachLine(t *testing.T) {
	text := &stubText{lines: []string{
		"package main",
		"",
		"func add(a, b int) int { return a + b }",
	}}
	h := New(text, "go", "monokai")

	for _, line := range []int{1, 3} {
		runs := h.LineTokens(line)
		assertCoversLine(t, runs, text.LineLength(line))
	}
	// The blank line has no tokens; the view model substitutes a default run.
	if runs := h.LineTokens(2); runs != nil {
		t.Fatalf("blank line runs: got %+v, want nil", runs)
	}
}

func TestHighlighter_ClassifiesKeyword(t *testing.T) {
	text := &stubText{lines: []string{"package main"}}
	h := New(text, "go", "monokai")

	runs := h.LineTokens(1)
	if len(runs) < 2 {
		t.Fatalf("expected multiple runs, got %+v", runs)
	}
	if runs[0].Class == runs[len(runs)-1].Class {
		t.Fatalf("keyword and name must differ in class: %+v", runs)
	}
}

func TestHighlighter_FallbackLexer(t *testing.T) {
	text := &stubText{lines: []string{"just some words"}}
	h := New(text, "no-such-language", "monokai")

	assertCoversLine(t, h.LineTokens(1), text.LineLength(1))
}

func TestHighlighter_Invalidation(t *testing.T) {
	text := &stubText{lines: []string{"package main", "var x = 1"}}
	h := New(text, "go", "monokai")

	if runs := h.LineTokens(2); len(runs) == 0 {
		t.Fatal("expected runs before invalidation")
	}

	h.InvalidateLine(2)
	if runs := h.LineTokens(2); runs != nil {
		t.Fatalf("invalidated line must render unclassified, got %+v", runs)
	}

	text.lines[1] = "var y = 2"
	h.InvalidateCache()
	assertCoversLine(t, h.LineTokens(2), text.LineLength(2))
}

func TestHighlighter_TokenizeRangeWarmsCache(t *testing.T) {
	text := &stubText{lines: []string{"package main"}}
	h := New(text, "go", "monokai")

	h.TokenizeRange(1, 1)
	assertCoversLine(t, h.LineTokens(1), text.LineLength(1))
}

func TestHighlighter_StyleForClass(t *testing.T) {
	text := &stubText{lines: []string{"package main"}}
	h := New(text, "go", "monokai")

	runs := h.LineTokens(1)
	style := h.StyleForClass(runs[0].Class)
	if style.GetForeground() == (lipgloss.NoColor{}) {
		t.Fatal("keyword class must carry a foreground color")
	}

	// Unknown classes resolve to the zero style, not a panic.
	_ = h.StyleForClass("no-such-class")
}
