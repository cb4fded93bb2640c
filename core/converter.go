package core

// CoordinatesConverter translates between model (logical document) and view
// (wrapped display) positions and ranges. It is stateless: every answer is
// derived from the current line-break cache and document snapshot, so the
// conversions are mutual inverses for canonical positions as long as the
// cache matches the document.
type CoordinatesConverter interface {
	ConvertViewPositionToModelPosition(viewPosition Position) Position
	ConvertViewRangeToModelRange(viewRange Range) Range
	ConvertModelPositionToViewPosition(modelPosition Position) Position
	ConvertModelRangeToViewRange(modelRange Range) Range

	// ValidateViewPosition repairs a possibly-stale view position: when it
	// no longer resolves to the expected model position, the expected
	// position is converted instead. Never an error.
	ValidateViewPosition(viewPosition Position, expectedModelPosition Position) Position
	ValidateViewRange(viewRange Range, expectedModelRange Range) Range

	// ModelPositionIsVisible is true iff the position maps into the
	// currently-rendered document; only hidden (folded) lines make it
	// false.
	ModelPositionIsVisible(modelPosition Position) bool

	// GetModelLineViewLineCount returns the number of view lines a model
	// line occupies, 1 when unwrapped.
	GetModelLineViewLineCount(modelLineNumber int) int
}

// HiddenLinePredicate reports whether a model line is hidden by a folding
// collaborator. A nil predicate means every line is visible.
type HiddenLinePredicate func(modelLineNumber int) bool

type coordinatesConverter struct {
	cache  *LineBreaksCache
	text   TextSource
	hidden HiddenLinePredicate
}

func NewCoordinatesConverter(cache *LineBreaksCache, text TextSource) CoordinatesConverter {
	return &coordinatesConverter{cache: cache, text: text}
}

// NewCoordinatesConverterWithHiddenLines wires a folding collaborator into
// the visibility answer.
func NewCoordinatesConverterWithHiddenLines(cache *LineBreaksCache, text TextSource, hidden HiddenLinePredicate) CoordinatesConverter {
	return &coordinatesConverter{cache: cache, text: text, hidden: hidden}
}

func (c *coordinatesConverter) ConvertViewPositionToModelPosition(viewPosition Position) Position {
	modelLine, outputLineIndex := c.cache.ModelLineOfViewLine(viewPosition.LineNumber)

	data := c.cache.Get(modelLine)
	if data == nil {
		return Position{
			LineNumber: modelLine,
			Column:     clamp(viewPosition.Column, 1, c.text.LineLength(modelLine)+1),
		}
	}

	segLength := data.OutputSegmentEnd(outputLineIndex) - data.OutputSegmentStart(outputLineIndex)
	maxOffset := segLength
	if outputLineIndex > 0 {
		maxOffset += data.WrappedIndentLength
	}
	outputOffset := clamp(viewPosition.Column-1, 0, maxOffset)

	inputOffset := data.TranslateToInputOffset(outputLineIndex, outputOffset)
	return Position{
		LineNumber: modelLine,
		Column:     clamp(inputOffset+1, 1, c.text.LineLength(modelLine)+1),
	}
}

func (c *coordinatesConverter) ConvertModelPositionToViewPosition(modelPosition Position) Position {
	modelLine := clamp(modelPosition.LineNumber, 1, c.text.LineCount())
	inputOffset := clamp(modelPosition.Column-1, 0, c.text.LineLength(modelLine))

	base := c.cache.FirstViewLineNumber(modelLine)

	data := c.cache.Get(modelLine)
	if data == nil {
		return Position{LineNumber: base, Column: inputOffset + 1}
	}
	return data.TranslateToOutputPosition(inputOffset).ToPosition(base)
}

func (c *coordinatesConverter) ConvertViewRangeToModelRange(viewRange Range) Range {
	start := c.ConvertViewPositionToModelPosition(viewRange.Start())
	end := c.ConvertViewPositionToModelPosition(viewRange.End())
	return RangeFromPositions(start, end)
}

func (c *coordinatesConverter) ConvertModelRangeToViewRange(modelRange Range) Range {
	start := c.ConvertModelPositionToViewPosition(modelRange.Start())
	end := c.ConvertModelPositionToViewPosition(modelRange.End())
	return RangeFromPositions(start, end)
}

func (c *coordinatesConverter) ValidateViewPosition(viewPosition Position, expectedModelPosition Position) Position {
	viewLine := clamp(viewPosition.LineNumber, 1, c.cache.TotalViewLineCount())
	candidate := Position{LineNumber: viewLine, Column: viewPosition.Column}

	if c.ConvertViewPositionToModelPosition(candidate).Equals(expectedModelPosition) {
		return candidate
	}
	return c.ConvertModelPositionToViewPosition(expectedModelPosition)
}

func (c *coordinatesConverter) ValidateViewRange(viewRange Range, expectedModelRange Range) Range {
	start := c.ValidateViewPosition(viewRange.Start(), expectedModelRange.Start())
	end := c.ValidateViewPosition(viewRange.End(), expectedModelRange.End())
	return RangeFromPositions(start, end)
}

func (c *coordinatesConverter) ModelPositionIsVisible(modelPosition Position) bool {
	if modelPosition.LineNumber < 1 || modelPosition.LineNumber > c.text.LineCount() {
		return false
	}
	if c.hidden != nil && c.hidden(modelPosition.LineNumber) {
		return false
	}
	return true
}

func (c *coordinatesConverter) GetModelLineViewLineCount(modelLineNumber int) int {
	return c.cache.OutputLineCount(modelLineNumber)
}

// identityCoordinatesConverter is the converter used when wrapping is
// disabled: model and view space coincide. It doubles as the test stand-in.
type identityCoordinatesConverter struct {
	text TextSource
}

func NewIdentityCoordinatesConverter(text TextSource) CoordinatesConverter {
	return &identityCoordinatesConverter{text: text}
}

func (c *identityCoordinatesConverter) validate(pos Position) Position {
	line := clamp(pos.LineNumber, 1, c.text.LineCount())
	return Position{
		LineNumber: line,
		Column:     clamp(pos.Column, 1, c.text.LineLength(line)+1),
	}
}

func (c *identityCoordinatesConverter) ConvertViewPositionToModelPosition(viewPosition Position) Position {
	return c.validate(viewPosition)
}

func (c *identityCoordinatesConverter) ConvertModelPositionToViewPosition(modelPosition Position) Position {
	return c.validate(modelPosition)
}

func (c *identityCoordinatesConverter) ConvertViewRangeToModelRange(viewRange Range) Range {
	return RangeFromPositions(c.validate(viewRange.Start()), c.validate(viewRange.End()))
}

func (c *identityCoordinatesConverter) ConvertModelRangeToViewRange(modelRange Range) Range {
	return RangeFromPositions(c.validate(modelRange.Start()), c.validate(modelRange.End()))
}

func (c *identityCoordinatesConverter) ValidateViewPosition(viewPosition Position, expectedModelPosition Position) Position {
	return c.validate(expectedModelPosition)
}

func (c *identityCoordinatesConverter) ValidateViewRange(viewRange Range, expectedModelRange Range) Range {
	return c.ConvertModelRangeToViewRange(expectedModelRange)
}

func (c *identityCoordinatesConverter) ModelPositionIsVisible(modelPosition Position) bool {
	return modelPosition.LineNumber >= 1 && modelPosition.LineNumber <= c.text.LineCount()
}

func (c *identityCoordinatesConverter) GetModelLineViewLineCount(modelLineNumber int) int {
	return 1
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
