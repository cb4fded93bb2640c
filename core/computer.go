package core

import (
	"sort"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// WrappingIndent controls the indentation applied to continuation segments
// of a wrapped line.
type WrappingIndent int

const (
	WrappingIndentNone       WrappingIndent = iota // continuations start at column 0
	WrappingIndentSame                             // match the line's leading whitespace
	WrappingIndentIndent                           // leading whitespace plus one tab stop
	WrappingIndentDeepIndent                       // leading whitespace plus two tab stops
)

// InjectedText is a virtual text span spliced into the rendering of one
// logical line at a rune offset. The content never reaches the document.
type InjectedText struct {
	Offset          int
	Content         string
	InlineClassName string
}

// ApplyInjectedText returns the line text with all injected spans spliced
// in. Spans must be normalized (clamped, ordered by offset).
func ApplyInjectedText(lineText string, spans []InjectedText) string {
	if len(spans) == 0 {
		return lineText
	}

	runes := []rune(lineText)
	out := make([]rune, 0, len(runes)+len(spans)*4)
	prev := 0
	for _, span := range spans {
		out = append(out, runes[prev:span.Offset]...)
		out = append(out, []rune(span.Content)...)
		prev = span.Offset
	}
	out = append(out, runes[prev:]...)
	return string(out)
}

// LineBreaksComputer batches line-break computation requests for a set of
// logical lines and resolves them in submission order on Finalize.
//
// A computer is valid for a single AddRequest×N / Finalize batch; the caller
// must not mutate the underlying document between the first AddRequest and
// Finalize, and must create a fresh instance per batch.
type LineBreaksComputer struct {
	tabSize        int
	wrappingColumn int
	wrappingIndent WrappingIndent
	requests       []lineBreaksRequest
}

type lineBreaksRequest struct {
	lineText string
	injected []InjectedText
	previous *LineBreakData
}

func NewLineBreaksComputer(tabSize, wrappingColumn int, wrappingIndent WrappingIndent) *LineBreaksComputer {
	if tabSize <= 0 {
		tabSize = 4
	}
	return &LineBreaksComputer{
		tabSize:        tabSize,
		wrappingColumn: wrappingColumn,
		wrappingIndent: wrappingIndent,
	}
}

// AddRequest queues one logical line. previous may carry the line's prior
// break data when only the wrapping column changed; the computer is free to
// reuse its break positions but correctness never depends on that.
func (c *LineBreaksComputer) AddRequest(lineText string, injected []InjectedText, previous *LineBreakData) {
	c.requests = append(c.requests, lineBreaksRequest{
		lineText: lineText,
		injected: injected,
		previous: previous,
	})
}

// Finalize resolves every queued request in submission order. An entry is
// nil when the line fits the wrapping column and carries no injected text.
func (c *LineBreaksComputer) Finalize() []*LineBreakData {
	results := make([]*LineBreakData, len(c.requests))
	for i, req := range c.requests {
		spans := normalizeInjectedText(req.injected, len([]rune(req.lineText)))
		combined := ApplyInjectedText(req.lineText, spans)

		if req.previous != nil {
			if data := c.reuseFromPrevious(req.previous, combined, spans); data != nil {
				results[i] = data
				continue
			}
		}

		results[i] = c.createLineBreaks(combined, spans)
	}
	return results
}

// createLineBreaks computes break offsets and visible columns for one line
// whose injected text is already spliced in.
func (c *LineBreaksComputer) createLineBreaks(combined string, spans []InjectedText) *LineBreakData {
	indentLength := c.wrappedIndentLength(combined)

	limit := c.wrappingColumn
	contLimit := c.wrappingColumn - indentLength
	if contLimit < 1 {
		contLimit = 1
	}

	var breakOffsets, breakColumns []int

	offset := 0
	visibleColumn := 0
	segStartOffset := 0
	segStartColumn := 0
	lastBreakOffset := -1
	lastBreakColumn := 0
	wrapped := false

	g := uniseg.NewGraphemes(combined)
	for g.Next() {
		cluster := g.Str()
		w := c.clusterWidth(cluster, visibleColumn)

		if c.wrappingColumn > 0 && visibleColumn-segStartColumn+w > limit && offset > segStartOffset {
			brkOffset, brkColumn := offset, visibleColumn
			if lastBreakOffset > segStartOffset {
				brkOffset, brkColumn = lastBreakOffset, lastBreakColumn
			}
			breakOffsets = append(breakOffsets, brkOffset)
			breakColumns = append(breakColumns, brkColumn)
			segStartOffset, segStartColumn = brkOffset, brkColumn
			limit = contLimit
			wrapped = true
		}

		visibleColumn += w
		offset += len(g.Runes())

		if isBreakableCluster(cluster) {
			lastBreakOffset, lastBreakColumn = offset, visibleColumn
		}
	}

	if !wrapped && spans == nil {
		return nil
	}

	breakOffsets = append(breakOffsets, offset)
	breakColumns = append(breakColumns, visibleColumn)

	data := &LineBreakData{
		BreakOffsets:              breakOffsets,
		BreakOffsetsVisibleColumn: breakColumns,
		WrappedIndentLength:       indentLength,
	}
	if spans != nil {
		data.InjectionOffsets = make([]int, len(spans))
		data.InjectionContents = make([]string, len(spans))
		for i, span := range spans {
			data.InjectionOffsets[i] = span.Offset
			data.InjectionContents[i] = span.Content
		}
	}
	return data
}

// reuseFromPrevious keeps the previous break positions when every previous
// segment still fits the new wrapping column, recomputing visible columns
// and indentation only. Returns nil when a full recompute is required.
func (c *LineBreaksComputer) reuseFromPrevious(previous *LineBreakData, combined string, spans []InjectedText) *LineBreakData {
	if c.wrappingColumn <= 0 {
		return nil
	}
	if len(spans) != len(previous.InjectionOffsets) {
		return nil
	}
	for i, span := range spans {
		if span.Offset != previous.InjectionOffsets[i] || span.Content != previous.InjectionContents[i] {
			return nil
		}
	}
	if previous.BreakOffsets[len(previous.BreakOffsets)-1] != len([]rune(combined)) {
		return nil
	}

	indentLength := c.wrappedIndentLength(combined)
	breakColumns := c.visibleColumnsAt(combined, previous.BreakOffsets)

	limit := c.wrappingColumn
	prevColumn := 0
	for i, col := range breakColumns {
		if col-prevColumn > limit {
			return nil
		}
		prevColumn = col
		if i == 0 {
			limit = c.wrappingColumn - indentLength
			if limit < 1 {
				limit = 1
			}
		}
	}

	data := &LineBreakData{
		BreakOffsets:              append([]int(nil), previous.BreakOffsets...),
		BreakOffsetsVisibleColumn: breakColumns,
		WrappedIndentLength:       indentLength,
		InjectionOffsets:          previous.InjectionOffsets,
		InjectionContents:         previous.InjectionContents,
	}
	return data
}

// visibleColumnsAt walks the line once and samples the visible column at
// each of the given rune offsets (which must be increasing).
func (c *LineBreaksComputer) visibleColumnsAt(combined string, offsets []int) []int {
	columns := make([]int, len(offsets))
	next := 0
	offset := 0
	visibleColumn := 0

	g := uniseg.NewGraphemes(combined)
	for g.Next() && next < len(offsets) {
		for next < len(offsets) && offsets[next] == offset {
			columns[next] = visibleColumn
			next++
		}
		visibleColumn += c.clusterWidth(g.Str(), visibleColumn)
		offset += len(g.Runes())
	}
	for next < len(offsets) {
		columns[next] = visibleColumn
		next++
	}
	return columns
}

func (c *LineBreaksComputer) clusterWidth(cluster string, visibleColumn int) int {
	if cluster == "\t" {
		return c.tabSize - visibleColumn%c.tabSize
	}
	return runewidth.StringWidth(cluster)
}

// wrappedIndentLength derives the continuation indent from the line's
// leading whitespace. Indentation that would consume half the wrapping
// column or more is discarded so content always has room.
func (c *LineBreaksComputer) wrappedIndentLength(combined string) int {
	if c.wrappingIndent == WrappingIndentNone || c.wrappingColumn <= 0 {
		return 0
	}

	indent := 0
	for _, r := range combined {
		if r == '\t' {
			indent += c.tabSize - indent%c.tabSize
		} else if r == ' ' {
			indent++
		} else {
			break
		}
	}

	switch c.wrappingIndent {
	case WrappingIndentIndent:
		indent += c.tabSize
	case WrappingIndentDeepIndent:
		indent += 2 * c.tabSize
	}

	if indent >= c.wrappingColumn/2 {
		return 0
	}
	return indent
}

func isBreakableCluster(cluster string) bool {
	for _, r := range cluster {
		return unicode.IsSpace(r)
	}
	return false
}

// normalizeInjectedText clamps span offsets to the line, drops empty
// contents, orders spans by offset and merges spans anchored at the same
// offset. Returns nil when nothing remains.
func normalizeInjectedText(spans []InjectedText, lineLength int) []InjectedText {
	if len(spans) == 0 {
		return nil
	}

	normalized := make([]InjectedText, 0, len(spans))
	for _, span := range spans {
		if span.Content == "" {
			continue
		}
		offset := span.Offset
		if offset < 0 {
			offset = 0
		}
		if offset > lineLength {
			offset = lineLength
		}
		normalized = append(normalized, InjectedText{
			Offset:          offset,
			Content:         span.Content,
			InlineClassName: span.InlineClassName,
		})
	}
	if len(normalized) == 0 {
		return nil
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].Offset < normalized[j].Offset
	})

	merged := normalized[:1]
	for _, span := range normalized[1:] {
		last := &merged[len(merged)-1]
		if span.Offset == last.Offset {
			last.Content += span.Content
			continue
		}
		merged = append(merged, span)
	}
	return merged
}
