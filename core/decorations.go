package core

// InlineDecorationType distinguishes how an inline decoration attaches to
// the text it covers.
type InlineDecorationType int

const (
	InlineDecorationRegular InlineDecorationType = iota
	InlineDecorationBefore
	InlineDecorationAfter
	InlineDecorationRegularAffectingLetterSpacing
)

// InlineDecoration styles a half-open character range of view text with a
// class name.
type InlineDecoration struct {
	Range           Range
	InlineClassName string
	Type            InlineDecorationType
}

// SingleLineInlineDecoration is the single-line form of an inline
// decoration: rune offsets within one line, convertible to the
// range-qualified form given a line number.
type SingleLineInlineDecoration struct {
	StartOffset                         int
	EndOffset                           int
	InlineClassName                     string
	InlineClassNameAffectsLetterSpacing bool
}

// ToInlineDecoration lifts the offsets onto a line; columns are the rune
// offsets plus one.
func (d SingleLineInlineDecoration) ToInlineDecoration(lineNumber int) InlineDecoration {
	decorationType := InlineDecorationRegular
	if d.InlineClassNameAffectsLetterSpacing {
		decorationType = InlineDecorationRegularAffectingLetterSpacing
	}
	return InlineDecoration{
		Range:           NewRange(lineNumber, d.StartOffset+1, lineNumber, d.EndOffset+1),
		InlineClassName: d.InlineClassName,
		Type:            decorationType,
	}
}

// DecorationOptions describes how a decorated range is displayed.
type DecorationOptions struct {
	ClassName       string
	InlineClassName string
	IsWholeLine     bool
}

// ModelDecoration is a decoration as supplied by the document layer, in
// model coordinates.
type ModelDecoration struct {
	Range   Range
	Options DecorationOptions
}

// ViewModelDecoration pairs a view-space range with the display options it
// was derived from. Built per query via the coordinates converter, never
// cached.
type ViewModelDecoration struct {
	Range   Range
	Options DecorationOptions
}
