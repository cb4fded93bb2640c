package core

// OutputPosition identifies a wrapped sub-line of a logical line and a
// character offset within it. Computed on demand, never persisted.
type OutputPosition struct {
	OutputLineIndex int
	OutputOffset    int
}

// ToPosition converts the output position into a view Position on the given
// view line number base (the view line of output line index 0).
func (o OutputPosition) ToPosition(baseViewLineNumber int) Position {
	return Position{
		LineNumber: baseViewLineNumber + o.OutputLineIndex,
		Column:     o.OutputOffset + 1,
	}
}

// LineBreakData describes how one logical line is split into wrapped output
// lines, including any injected (virtual) text spliced into the rendering.
//
// BreakOffsets are rune offsets into the line text with injections applied;
// BreakOffsets[i] is the exclusive end of output segment i and the final
// element equals the total length. BreakOffsetsVisibleColumn carries the
// visible column (tab-expanded, wide-rune aware) reached at each break.
// WrappedIndentLength is the number of columns of indentation prefixed to
// every continuation segment.
//
// Instances are owned by a LineBreaksCache and replaced wholesale on edit or
// re-wrap, never mutated in place.
type LineBreakData struct {
	BreakOffsets              []int
	BreakOffsetsVisibleColumn []int
	WrappedIndentLength       int

	// InjectionOffsets/InjectionContents describe virtual text spans
	// inserted at the given input offsets, strictly increasing. Both are
	// nil when the line carries no injected text.
	InjectionOffsets  []int
	InjectionContents []string
}

// OutputLineCount returns the number of wrapped output lines.
func (d *LineBreakData) OutputLineCount() int {
	return len(d.BreakOffsets)
}

// OutputPositionToInputOffset maps a wrapped sub-line position back to a
// rune offset in the real (injection-free) line text.
//
// A position that lands strictly inside injected text snaps to the input
// offset the injection is anchored to; positions beyond injected text have
// the injected lengths removed. Out-of-range positions are a programming
// error and yield an unspecified result.
func (d *LineBreakData) OutputPositionToInputOffset(outputLineIndex, outputOffset int) int {
	adjusted := outputOffset
	if outputLineIndex > 0 {
		adjusted = d.BreakOffsets[outputLineIndex-1] + outputOffset
	}

	if d.InjectionOffsets != nil {
		for i := 0; i < len(d.InjectionOffsets); i++ {
			if adjusted > d.InjectionOffsets[i] {
				if adjusted < d.InjectionOffsets[i]+len([]rune(d.InjectionContents[i])) {
					// Inside the injected span: snap to its anchor.
					adjusted = d.InjectionOffsets[i]
				} else {
					adjusted -= len([]rune(d.InjectionContents[i]))
				}
			} else {
				break
			}
		}
	}

	return adjusted
}

// InputOffsetToOutputPosition maps a rune offset in the real line text to
// the wrapped sub-line holding it.
func (d *LineBreakData) InputOffsetToOutputPosition(inputOffset int) OutputPosition {
	// Only spans strictly before the offset expand it; an offset at a
	// span's anchor stays before the injected text.
	delta := 0
	if d.InjectionOffsets != nil {
		for i := 0; i < len(d.InjectionOffsets); i++ {
			if inputOffset <= d.InjectionOffsets[i] {
				break
			}
			delta += len([]rune(d.InjectionContents[i]))
		}
	}

	return d.outputPositionOfCombinedOffset(inputOffset + delta)
}

// outputPositionOfCombinedOffset locates the segment holding an offset in
// the injection-expanded line text. Membership is the half-open interval
// [start, stop); the final break offset resolves to the end of the last
// segment.
func (d *LineBreakData) outputPositionOfCombinedOffset(offset int) OutputPosition {
	low := 0
	high := len(d.BreakOffsets) - 1
	mid := 0
	midStart := 0

	for low <= high {
		mid = low + (high-low)/2

		midStart = 0
		if mid > 0 {
			midStart = d.BreakOffsets[mid-1]
		}
		midStop := d.BreakOffsets[mid]

		if offset < midStart {
			high = mid - 1
		} else if offset >= midStop {
			low = mid + 1
		} else {
			break
		}
	}

	return OutputPosition{OutputLineIndex: mid, OutputOffset: offset - midStart}
}

// TranslateToInputOffset is the converter-facing form of
// OutputPositionToInputOffset: the output offset includes the wrapped
// indentation of continuation lines, which is stripped before mapping.
func (d *LineBreakData) TranslateToInputOffset(outputLineIndex, outputOffset int) int {
	if outputLineIndex > 0 {
		outputOffset = max(0, outputOffset-d.WrappedIndentLength)
	}
	return d.OutputPositionToInputOffset(outputLineIndex, outputOffset)
}

// TranslateToOutputPosition is the converter-facing form of
// InputOffsetToOutputPosition: continuation lines have the wrapped
// indentation added back into the output offset.
func (d *LineBreakData) TranslateToOutputPosition(inputOffset int) OutputPosition {
	r := d.InputOffsetToOutputPosition(inputOffset)
	if r.OutputLineIndex > 0 {
		r.OutputOffset += d.WrappedIndentLength
	}
	return r
}

// OutputSegmentStart returns the inclusive start offset of an output segment
// in the injection-expanded line text.
func (d *LineBreakData) OutputSegmentStart(outputLineIndex int) int {
	if outputLineIndex == 0 {
		return 0
	}
	return d.BreakOffsets[outputLineIndex-1]
}

// OutputSegmentEnd returns the exclusive end offset of an output segment in
// the injection-expanded line text.
func (d *LineBreakData) OutputSegmentEnd(outputLineIndex int) int {
	return d.BreakOffsets[outputLineIndex]
}

// StartVisibleColumn returns the visible column at which an output segment
// begins, before the wrapped indentation is applied.
func (d *LineBreakData) StartVisibleColumn(outputLineIndex int) int {
	if outputLineIndex == 0 {
		return 0
	}
	return d.BreakOffsetsVisibleColumn[outputLineIndex-1]
}
