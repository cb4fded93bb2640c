package highlighter

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/ionut-t/wrapview/core"
)

// Highlighter lexes the document with chroma and serves per-line token runs
// to the view model. Tokenization always covers the whole document because
// constructs like Markdown code fences and block comments span lines; the
// runs are cached per line and rebuilt lazily after an invalidation.
//
// The cache is internally locked: the render path reads it while edits
// invalidate it.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
	text  core.TextSource

	mu         sync.RWMutex
	runs       map[int][]core.TokenRun
	classTypes map[string]chroma.TokenType
	styleCache map[string]lipgloss.Style
}

var _ core.TokenSource = (*Highlighter)(nil)

// New creates a highlighter over a text source. Unknown languages fall back
// to plain text, unknown themes to chroma's fallback style.
func New(text core.TextSource, language, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	return &Highlighter{
		lexer:      lexer,
		style:      styles.Get(theme),
		text:       text,
		classTypes: make(map[string]chroma.TokenType),
		styleCache: make(map[string]lipgloss.Style),
	}
}

// LineTokens returns the token runs of a model line, tokenizing the whole
// document first if the cache is cold. Returns nil for lines chroma left
// empty; the view model substitutes an unclassified run.
func (h *Highlighter) LineTokens(lineNumber int) []core.TokenRun {
	h.mu.RLock()
	cold := h.runs == nil
	h.mu.RUnlock()

	if cold {
		h.Tokenize()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.runs[lineNumber]
}

// TokenizeRange warms the cache for a visible line range. The cache is
// whole-document, so the range only decides whether any work happens at all.
func (h *Highlighter) TokenizeRange(startLineNumber, endLineNumber int) {
	h.mu.RLock()
	cold := h.runs == nil
	h.mu.RUnlock()

	if cold {
		h.Tokenize()
	}
}

// InvalidateCache drops every cached run; the next read re-tokenizes.
func (h *Highlighter) InvalidateCache() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs = nil
	h.styleCache = make(map[string]lipgloss.Style)
}

// InvalidateLine drops one line's runs. The line renders unclassified until
// the next InvalidateCache; cross-line constructs need the full rebuild.
func (h *Highlighter) InvalidateLine(lineNumber int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.runs, lineNumber)
}

// Tokenize lexes the whole document and rebuilds the per-line run cache.
func (h *Highlighter) Tokenize() {
	h.mu.Lock()
	defer h.mu.Unlock()

	lineCount := h.text.LineCount()
	parts := make([]string, lineCount)
	for i := range parts {
		parts[i] = h.text.LineContent(i + 1)
	}
	content := strings.Join(parts, "\n")

	runs := make(map[int][]core.TokenRun, lineCount)
	h.runs = runs
	if content == "" {
		return
	}

	iterator, err := h.lexer.Tokenise(nil, content)
	if err != nil {
		// Leave the warm-but-empty cache in place so the document renders
		// unclassified instead of re-tokenizing on every read.
		return
	}

	line := 1
	end := 0
	appendRun := func(tokenType chroma.TokenType, value string) {
		if value == "" {
			return
		}
		class := tokenType.String()
		h.classTypes[class] = tokenType
		end += len([]rune(value))

		if prev := runs[line]; len(prev) > 0 && prev[len(prev)-1].Class == class {
			prev[len(prev)-1].EndOffset = end
			return
		}
		runs[line] = append(runs[line], core.TokenRun{EndOffset: end, Class: class})
	}

	for _, token := range iterator.Tokens() {
		value := token.Value
		for strings.Contains(value, "\n") {
			before, after, _ := strings.Cut(value, "\n")
			appendRun(token.Type, before)
			line++
			end = 0
			value = after
		}
		appendRun(token.Type, value)
	}
}

// StyleForClass resolves a token run's class to a lipgloss style using the
// configured chroma theme. Unknown classes render unstyled.
func (h *Highlighter) StyleForClass(class string) lipgloss.Style {
	h.mu.Lock()
	defer h.mu.Unlock()

	if style, ok := h.styleCache[class]; ok {
		return style
	}

	tokenType, ok := h.classTypes[class]
	if !ok {
		return lipgloss.NewStyle()
	}
	entry := h.style.Get(tokenType)

	style := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	h.styleCache[class] = style
	return style
}
