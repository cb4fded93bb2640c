package core

// Position represents a specific location in either model (logical document)
// or view (wrapped display) space.
//
// Lines and columns are 1-based; a column is the rune offset in the line
// plus one, so column 1 is before the first character and column
// lineLength+1 is after the last.
type Position struct {
	LineNumber int
	Column     int
}

func NewPosition(lineNumber, column int) Position {
	return Position{LineNumber: lineNumber, Column: column}
}

// IsBefore reports whether p sorts strictly before other.
func (p Position) IsBefore(other Position) bool {
	if p.LineNumber != other.LineNumber {
		return p.LineNumber < other.LineNumber
	}
	return p.Column < other.Column
}

// IsBeforeOrEqual reports whether p sorts before or equal to other.
func (p Position) IsBeforeOrEqual(other Position) bool {
	if p.LineNumber != other.LineNumber {
		return p.LineNumber < other.LineNumber
	}
	return p.Column <= other.Column
}

func (p Position) Equals(other Position) bool {
	return p.LineNumber == other.LineNumber && p.Column == other.Column
}

// Range represents a half-open span between two positions. A range whose
// start equals its end is empty but still valid.
type Range struct {
	StartLineNumber int
	StartColumn     int
	EndLineNumber   int
	EndColumn       int
}

func NewRange(startLineNumber, startColumn, endLineNumber, endColumn int) Range {
	return Range{
		StartLineNumber: startLineNumber,
		StartColumn:     startColumn,
		EndLineNumber:   endLineNumber,
		EndColumn:       endColumn,
	}
}

// RangeFromPositions builds a range from start and end positions, swapping
// them if given in reverse order.
func RangeFromPositions(start, end Position) Range {
	if end.IsBefore(start) {
		start, end = end, start
	}
	return NewRange(start.LineNumber, start.Column, end.LineNumber, end.Column)
}

func (r Range) Start() Position {
	return Position{LineNumber: r.StartLineNumber, Column: r.StartColumn}
}

func (r Range) End() Position {
	return Position{LineNumber: r.EndLineNumber, Column: r.EndColumn}
}

func (r Range) IsEmpty() bool {
	return r.StartLineNumber == r.EndLineNumber && r.StartColumn == r.EndColumn
}

// ContainsPosition reports whether pos lies inside r, boundaries included.
func (r Range) ContainsPosition(pos Position) bool {
	if pos.LineNumber < r.StartLineNumber || pos.LineNumber > r.EndLineNumber {
		return false
	}
	if pos.LineNumber == r.StartLineNumber && pos.Column < r.StartColumn {
		return false
	}
	if pos.LineNumber == r.EndLineNumber && pos.Column > r.EndColumn {
		return false
	}
	return true
}

// IntersectsRange reports whether r and other overlap, touching counts.
func (r Range) IntersectsRange(other Range) bool {
	if r.EndLineNumber < other.StartLineNumber || other.EndLineNumber < r.StartLineNumber {
		return false
	}
	if r.EndLineNumber == other.StartLineNumber && r.EndColumn < other.StartColumn {
		return false
	}
	if other.EndLineNumber == r.StartLineNumber && other.EndColumn < r.StartColumn {
		return false
	}
	return true
}
