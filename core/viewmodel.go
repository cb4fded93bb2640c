package core

import "strings"

// TextSource is the document collaborator: line content must stay stable
// for the duration of a line-break batch.
type TextSource interface {
	LineCount() int
	LineContent(lineNumber int) string
	LineLength(lineNumber int) int
	TabSize() int
	MightContainNonBasicASCII() bool
	MightContainRTL() bool
}

// TokenSource is the tokenization collaborator. LineTokens must tolerate
// any currently-valid line number; TokenizeRange is a background
// prioritization hint, never required for correctness.
type TokenSource interface {
	LineTokens(lineNumber int) []TokenRun
	TokenizeRange(startLineNumber, endLineNumber int)
}

// DecorationSource is the decoration collaborator, queried in model space.
type DecorationSource interface {
	DecorationsInRange(modelRange Range) []ModelDecoration
}

// InjectionSource supplies the injected text spans of a model line, ordered
// by offset.
type InjectionSource interface {
	LineInjectedText(lineNumber int) []InjectedText
}

// CursorState is the cursor subsystem pass-through: the view model reads
// and writes the primary position but owns none of the cursor's state
// machine.
type CursorState interface {
	Primary() Position
	MoveTo(modelPosition Position)
}

// ViewModelOptions configures the collaborators and wrapping parameters of
// a ViewModel. Nil sources are tolerated and act as empty.
type ViewModelOptions struct {
	WrappingColumn int
	WrappingIndent WrappingIndent

	Tokens      TokenSource
	Decorations DecorationSource
	Injections  InjectionSource
	Cursor      CursorState
	Hidden      HiddenLinePredicate
}

// ViewModel composes the line-break cache, coordinates converter, viewport
// state and per-line rendering-data assembly behind one facade consumed by
// the rendering layer.
type ViewModel struct {
	text        TextSource
	tokens      TokenSource
	decorations DecorationSource
	injections  InjectionSource
	cursor      CursorState

	cache     *LineBreaksCache
	converter CoordinatesConverter
	hidden    HiddenLinePredicate

	wrappingColumn int
	wrappingIndent WrappingIndent

	viewport          Viewport
	hintedStart       int
	hintedEnd         int
	internalCursorPos Position

	updates chan Event
}

func NewViewModel(text TextSource, opts ViewModelOptions) *ViewModel {
	v := &ViewModel{
		text:              text,
		tokens:            opts.Tokens,
		decorations:       opts.Decorations,
		injections:        opts.Injections,
		cursor:            opts.Cursor,
		hidden:            opts.Hidden,
		cache:             NewLineBreaksCache(text.LineCount()),
		wrappingColumn:    opts.WrappingColumn,
		wrappingIndent:    opts.WrappingIndent,
		internalCursorPos: Position{LineNumber: 1, Column: 1},
		updates:           make(chan Event, 32),
	}
	v.converter = NewCoordinatesConverterWithHiddenLines(v.cache, text, opts.Hidden)
	v.rebreakLines(1, text.LineCount(), false)
	return v
}

// Converter returns the coordinates converter backed by the current cache
// and document snapshot.
func (v *ViewModel) Converter() CoordinatesConverter {
	return v.converter
}

// Updates is the change-notification channel. Consumers treat every event
// as "recompute fully".
func (v *ViewModel) Updates() <-chan Event {
	return v.updates
}

func (v *ViewModel) ViewLineCount() int {
	return v.cache.TotalViewLineCount()
}

func (v *ViewModel) WrappingColumn() int {
	return v.wrappingColumn
}

// SetWrappingColumn re-breaks every line for a new wrapping column,
// reusing previous break positions where they still fit.
func (v *ViewModel) SetWrappingColumn(column int) {
	if column == v.wrappingColumn {
		return
	}
	v.wrappingColumn = column
	v.rebreakLines(1, v.text.LineCount(), true)
	v.dispatchEvent(WrappingChangedEvent{WrappingColumn: column})
}

// SetWrappingIndent changes the continuation indent mode and re-breaks
// every line from scratch.
func (v *ViewModel) SetWrappingIndent(indent WrappingIndent) {
	if indent == v.wrappingIndent {
		return
	}
	v.wrappingIndent = indent
	v.rebreakLines(1, v.text.LineCount(), false)
	v.dispatchEvent(WrappingChangedEvent{WrappingColumn: v.wrappingColumn})
}

// OnLinesChanged re-derives break data for lines whose content changed in
// place.
func (v *ViewModel) OnLinesChanged(fromLineNumber, toLineNumber int) {
	v.rebreakLines(fromLineNumber, toLineNumber, false)
	v.dispatchEvent(LinesChangedEvent{FromLineNumber: fromLineNumber, ToLineNumber: toLineNumber})
}

// OnLinesInserted shifts the cache and derives break data for the new
// lines.
func (v *ViewModel) OnLinesInserted(atLineNumber, count int) {
	v.cache.OnLinesInserted(atLineNumber, count)
	v.rebreakLines(atLineNumber, atLineNumber+count-1, false)
	v.dispatchEvent(LinesInsertedEvent{AtLineNumber: atLineNumber, Count: count})
}

// OnLinesDeleted drops the deleted lines from the cache.
func (v *ViewModel) OnLinesDeleted(fromLineNumber, toLineNumber int) {
	v.cache.OnLinesDeleted(fromLineNumber, toLineNumber)
	v.dispatchEvent(LinesDeletedEvent{FromLineNumber: fromLineNumber, ToLineNumber: toLineNumber})
}

// OnFlush rebuilds every cache entry after a wholesale document
// replacement.
func (v *ViewModel) OnFlush() {
	v.cache = NewLineBreaksCache(v.text.LineCount())
	v.converter = NewCoordinatesConverterWithHiddenLines(v.cache, v.text, v.hidden)
	v.rebreakLines(1, v.text.LineCount(), false)
	v.dispatchEvent(FlushEvent{})
}

// OnDecorationsChanged forwards a decoration invalidation to consumers.
func (v *ViewModel) OnDecorationsChanged() {
	v.dispatchEvent(DecorationsChangedEvent{})
}

// rebreakLines runs one LineBreaksComputer batch over the given model
// lines and replaces their cache entries wholesale.
func (v *ViewModel) rebreakLines(fromLineNumber, toLineNumber int, reusePrevious bool) {
	if toLineNumber < fromLineNumber {
		return
	}

	computer := NewLineBreaksComputer(v.text.TabSize(), v.wrappingColumn, v.wrappingIndent)
	for line := fromLineNumber; line <= toLineNumber; line++ {
		var previous *LineBreakData
		if reusePrevious {
			previous = v.cache.Get(line)
		}
		computer.AddRequest(v.text.LineContent(line), v.lineInjections(line), previous)
	}

	for i, data := range computer.Finalize() {
		v.cache.Set(fromLineNumber+i, data)
	}
}

func (v *ViewModel) lineInjections(lineNumber int) []InjectedText {
	if v.injections == nil {
		return nil
	}
	return v.injections.LineInjectedText(lineNumber)
}

// ViewportGeometry returns the last viewport supplied by the scrolling
// engine.
func (v *ViewModel) ViewportGeometry() Viewport {
	return v.viewport
}

// SetViewportGeometry records the viewport rectangle; the view model never
// computes pixel heights itself.
func (v *ViewModel) SetViewportGeometry(viewport Viewport) {
	v.viewport = viewport
}

// SetViewport hints the currently-visible view-line range so the
// tokenization collaborator can prioritize background work. It is never
// required for correctness.
func (v *ViewModel) SetViewport(startViewLineNumber, endViewLineNumber int, centered bool) {
	v.hintedStart = startViewLineNumber
	v.hintedEnd = endViewLineNumber
	v.TokenizeViewport()
}

// TokenizeViewport forwards the hinted range to the token source. Safe to
// call at any time, including before any viewport hint was set.
func (v *ViewModel) TokenizeViewport() {
	if v.tokens == nil || v.hintedStart == 0 {
		return
	}
	startModel, _ := v.cache.ModelLineOfViewLine(v.hintedStart)
	endModel, _ := v.cache.ModelLineOfViewLine(v.hintedEnd)
	v.tokens.TokenizeRange(startModel, endModel)
}

// CursorPosition returns the primary cursor position in model space.
func (v *ViewModel) CursorPosition() Position {
	if v.cursor != nil {
		return v.cursor.Primary()
	}
	return v.internalCursorPos
}

// ViewCursorPosition returns the primary cursor position in view space.
func (v *ViewModel) ViewCursorPosition() Position {
	return v.converter.ConvertModelPositionToViewPosition(v.CursorPosition())
}

// MoveCursorToViewPosition routes a view-space cursor move through the
// converter's repair path before handing it to the cursor subsystem.
func (v *ViewModel) MoveCursorToViewPosition(viewPosition Position) {
	model := v.converter.ConvertViewPositionToModelPosition(viewPosition)
	if v.cursor != nil {
		v.cursor.MoveTo(model)
		return
	}
	v.internalCursorPos = model
}

// GetViewLineRenderingData assembles the full rendering snapshot of one
// view line, with the ASCII/RTL flags computed once.
func (v *ViewModel) GetViewLineRenderingData(viewLineNumber int) ViewLineRenderingData {
	data := v.buildViewLineData(viewLineNumber)
	return NewViewLineRenderingData(data, v.text.TabSize(), v.text.MightContainNonBasicASCII(), v.text.MightContainRTL())
}

// GetViewLinesRenderingData assembles rendering data for an inclusive
// view-line range, clamped to the document.
func (v *ViewModel) GetViewLinesRenderingData(startViewLineNumber, endViewLineNumber int) []ViewLineRenderingData {
	startViewLineNumber = clamp(startViewLineNumber, 1, v.ViewLineCount())
	endViewLineNumber = clamp(endViewLineNumber, startViewLineNumber, v.ViewLineCount())

	result := make([]ViewLineRenderingData, 0, endViewLineNumber-startViewLineNumber+1)
	for line := startViewLineNumber; line <= endViewLineNumber; line++ {
		result = append(result, v.GetViewLineRenderingData(line))
	}
	return result
}

// GetMinimapLinesRenderingData returns lightweight per-line snapshots for
// the given view-line range; entries outside the document are nil.
func (v *ViewModel) GetMinimapLinesRenderingData(startViewLineNumber, endViewLineNumber int) MinimapLinesRenderingData {
	result := MinimapLinesRenderingData{
		TabSize: v.text.TabSize(),
		Data:    make([]*ViewLineData, 0, endViewLineNumber-startViewLineNumber+1),
	}
	total := v.ViewLineCount()
	for line := startViewLineNumber; line <= endViewLineNumber; line++ {
		if line < 1 || line > total {
			result.Data = append(result.Data, nil)
			continue
		}
		data := v.buildViewLineData(line)
		result.Data = append(result.Data, &data)
	}
	return result
}

// GetDecorationsInViewport converts the model decorations intersecting a
// view-space range into view space.
func (v *ViewModel) GetDecorationsInViewport(visibleRange Range) []ViewModelDecoration {
	if v.decorations == nil {
		return nil
	}

	modelRange := v.converter.ConvertViewRangeToModelRange(visibleRange)
	modelDecorations := v.decorations.DecorationsInRange(modelRange)

	result := make([]ViewModelDecoration, 0, len(modelDecorations))
	for _, d := range modelDecorations {
		result = append(result, ViewModelDecoration{
			Range:   v.converter.ConvertModelRangeToViewRange(d.Range),
			Options: d.Options,
		})
	}
	return result
}

// buildViewLineData slices one wrapped segment out of its logical line,
// applying injected text, wrapped indentation and token clipping.
func (v *ViewModel) buildViewLineData(viewLineNumber int) ViewLineData {
	modelLine, outputLineIndex := v.cache.ModelLineOfViewLine(viewLineNumber)
	lineContent := v.text.LineContent(modelLine)
	data := v.cache.Get(modelLine)

	modelTokens := v.modelLineTokens(modelLine, len([]rune(lineContent)))

	if data == nil {
		return ViewLineData{
			Content:            lineContent,
			MinColumn:          1,
			MaxColumn:          len([]rune(lineContent)) + 1,
			StartVisibleColumn: 0,
			Tokens:             modelTokens,
		}
	}

	spans := normalizeInjectedText(v.lineInjections(modelLine), len([]rune(lineContent)))
	combined := []rune(ApplyInjectedText(lineContent, spans))

	segStart := data.OutputSegmentStart(outputLineIndex)
	segEnd := data.OutputSegmentEnd(outputLineIndex)

	indentLength := 0
	if outputLineIndex > 0 {
		indentLength = data.WrappedIndentLength
	}

	content := strings.Repeat(" ", indentLength) + string(combined[segStart:segEnd])

	combinedTokens, injectionDecorations := expandTokensWithInjections(modelTokens, spans)

	return ViewLineData{
		Content:                  content,
		ContinuesWithWrappedLine: outputLineIndex < data.OutputLineCount()-1,
		MinColumn:                indentLength + 1,
		MaxColumn:                len([]rune(content)) + 1,
		StartVisibleColumn:       data.StartVisibleColumn(outputLineIndex),
		Tokens:                   clipTokenRuns(combinedTokens, segStart, segEnd, indentLength),
		InlineDecorations:        clipInlineDecorations(injectionDecorations, segStart, segEnd, indentLength),
	}
}

func (v *ViewModel) modelLineTokens(modelLine, lineLength int) []TokenRun {
	if v.tokens != nil {
		if runs := v.tokens.LineTokens(modelLine); len(runs) > 0 {
			return runs
		}
	}
	if lineLength == 0 {
		return nil
	}
	return []TokenRun{{EndOffset: lineLength}}
}

// expandTokensWithInjections rewrites input-space token runs into the
// injection-expanded line, giving each injected span its own run and a
// matching inline decoration. A span anchored exactly at a run boundary
// attaches to the following run.
func expandTokensWithInjections(runs []TokenRun, spans []InjectedText) ([]TokenRun, []SingleLineInlineDecoration) {
	if len(spans) == 0 {
		return runs, nil
	}

	expanded := make([]TokenRun, 0, len(runs)+len(spans)*2)
	decorations := make([]SingleLineInlineDecoration, 0, len(spans))

	lastEnd := 0
	appendRun := func(endOffset int, class string) {
		if endOffset > lastEnd {
			expanded = append(expanded, TokenRun{EndOffset: endOffset, Class: class})
			lastEnd = endOffset
		}
	}
	appendSpan := func(span InjectedText, shift int) int {
		start := span.Offset + shift
		length := len([]rune(span.Content))
		appendRun(start+length, span.InlineClassName)
		decorations = append(decorations, SingleLineInlineDecoration{
			StartOffset:     start,
			EndOffset:       start + length,
			InlineClassName: span.InlineClassName,
		})
		return length
	}

	shift := 0
	next := 0
	for _, run := range runs {
		for next < len(spans) && spans[next].Offset < run.EndOffset {
			appendRun(spans[next].Offset+shift, run.Class)
			shift += appendSpan(spans[next], shift)
			next++
		}
		appendRun(run.EndOffset+shift, run.Class)
	}
	for next < len(spans) {
		shift += appendSpan(spans[next], shift)
		next++
	}

	return expanded, decorations
}

// clipTokenRuns restricts combined-space token runs to a segment and
// shifts them into content offsets, prefixing an unclassified run for the
// wrapped indentation.
func clipTokenRuns(runs []TokenRun, segStart, segEnd, indentLength int) []TokenRun {
	clipped := make([]TokenRun, 0, len(runs)+1)
	if indentLength > 0 {
		clipped = append(clipped, TokenRun{EndOffset: indentLength})
	}

	prev := 0
	for _, run := range runs {
		if run.EndOffset <= segStart {
			prev = run.EndOffset
			continue
		}
		if prev >= segEnd {
			break
		}
		end := min(run.EndOffset, segEnd)
		clipped = append(clipped, TokenRun{EndOffset: end - segStart + indentLength, Class: run.Class})
		prev = run.EndOffset
	}
	return clipped
}

// clipInlineDecorations restricts injection decorations to a segment,
// dropping the ones entirely outside it.
func clipInlineDecorations(decorations []SingleLineInlineDecoration, segStart, segEnd, indentLength int) []SingleLineInlineDecoration {
	if len(decorations) == 0 {
		return nil
	}
	clipped := make([]SingleLineInlineDecoration, 0, len(decorations))
	for _, d := range decorations {
		start := max(d.StartOffset, segStart)
		end := min(d.EndOffset, segEnd)
		if start >= end {
			continue
		}
		clipped = append(clipped, SingleLineInlineDecoration{
			StartOffset:                         start - segStart + indentLength,
			EndOffset:                           end - segStart + indentLength,
			InlineClassName:                     d.InlineClassName,
			InlineClassNameAffectsLetterSpacing: d.InlineClassNameAffectsLetterSpacing,
		})
	}
	if len(clipped) == 0 {
		return nil
	}
	return clipped
}
