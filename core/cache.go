package core

// LineBreaksCache owns the LineBreakData of every logical line that wraps
// or carries injected text, keyed by 1-based model line number. Entries are
// replaced wholesale on edit or re-wrap; a missing entry means the line
// occupies exactly one view line.
//
// Every mutation bumps a generation counter. A prefix-sum index over
// per-line view-line counts is rebuilt lazily per generation and gives
// O(log n) translation between view line numbers and (model line, output
// line index) pairs.
type LineBreaksCache struct {
	generation uint64
	lineCount  int
	entries    map[int]*LineBreakData

	prefix           []int
	prefixGeneration uint64
}

func NewLineBreaksCache(lineCount int) *LineBreaksCache {
	if lineCount < 1 {
		lineCount = 1
	}
	return &LineBreaksCache{
		generation: 1,
		lineCount:  lineCount,
		entries:    make(map[int]*LineBreakData),
	}
}

// Generation returns the current cache generation. It changes whenever any
// entry or the line count changes.
func (c *LineBreaksCache) Generation() uint64 {
	return c.generation
}

func (c *LineBreaksCache) LineCount() int {
	return c.lineCount
}

// Set stores the break data for a model line; nil marks it unwrapped.
func (c *LineBreaksCache) Set(lineNumber int, data *LineBreakData) {
	if lineNumber < 1 || lineNumber > c.lineCount {
		return
	}
	if data == nil {
		delete(c.entries, lineNumber)
	} else {
		c.entries[lineNumber] = data
	}
	c.generation++
}

// Get returns the break data for a model line, nil when unwrapped.
func (c *LineBreaksCache) Get(lineNumber int) *LineBreakData {
	return c.entries[lineNumber]
}

// Invalidate removes the entries for model lines from..to inclusive.
func (c *LineBreaksCache) Invalidate(from, to int) {
	for line := from; line <= to; line++ {
		delete(c.entries, line)
	}
	c.generation++
}

// InvalidateAll drops every entry, e.g. after a wrapping column change.
func (c *LineBreaksCache) InvalidateAll() {
	c.entries = make(map[int]*LineBreakData)
	c.generation++
}

// OnLinesInserted shifts entries to account for count model lines inserted
// before line number at. The inserted lines start with no entries.
func (c *LineBreaksCache) OnLinesInserted(at, count int) {
	if count <= 0 {
		return
	}
	shifted := make(map[int]*LineBreakData, len(c.entries))
	for line, data := range c.entries {
		if line >= at {
			shifted[line+count] = data
		} else {
			shifted[line] = data
		}
	}
	c.entries = shifted
	c.lineCount += count
	c.generation++
}

// OnLinesDeleted removes entries for model lines from..to inclusive and
// shifts the ones below them up.
func (c *LineBreaksCache) OnLinesDeleted(from, to int) {
	if to < from {
		return
	}
	count := to - from + 1
	shifted := make(map[int]*LineBreakData, len(c.entries))
	for line, data := range c.entries {
		switch {
		case line < from:
			shifted[line] = data
		case line > to:
			shifted[line-count] = data
		}
	}
	c.entries = shifted
	c.lineCount -= count
	if c.lineCount < 1 {
		c.lineCount = 1
	}
	c.generation++
}

// OutputLineCount returns the number of view lines a model line occupies.
func (c *LineBreaksCache) OutputLineCount(lineNumber int) int {
	if data := c.entries[lineNumber]; data != nil {
		return data.OutputLineCount()
	}
	return 1
}

// TotalViewLineCount returns the number of view lines in the document.
func (c *LineBreaksCache) TotalViewLineCount() int {
	c.ensurePrefix()
	return c.prefix[c.lineCount]
}

// FirstViewLineNumber returns the view line number of the first output line
// of a model line.
func (c *LineBreaksCache) FirstViewLineNumber(modelLine int) int {
	c.ensurePrefix()
	if modelLine < 1 {
		modelLine = 1
	}
	if modelLine > c.lineCount {
		modelLine = c.lineCount
	}
	return c.prefix[modelLine-1] + 1
}

// ModelLineOfViewLine resolves a view line number to its model line and
// output line index. Out-of-range view lines clamp to the document edges.
func (c *LineBreaksCache) ModelLineOfViewLine(viewLine int) (modelLine, outputLineIndex int) {
	c.ensurePrefix()

	total := c.prefix[c.lineCount]
	if viewLine < 1 {
		viewLine = 1
	}
	if viewLine > total {
		viewLine = total
	}

	// Smallest model line whose cumulative view-line count reaches viewLine.
	low, high := 1, c.lineCount
	for low < high {
		mid := (low + high) / 2
		if c.prefix[mid] < viewLine {
			low = mid + 1
		} else {
			high = mid
		}
	}

	return low, viewLine - (c.prefix[low-1] + 1)
}

func (c *LineBreaksCache) ensurePrefix() {
	if c.prefixGeneration == c.generation && c.prefix != nil {
		return
	}

	prefix := make([]int, c.lineCount+1)
	for line := 1; line <= c.lineCount; line++ {
		prefix[line] = prefix[line-1] + c.OutputLineCount(line)
	}
	c.prefix = prefix
	c.prefixGeneration = c.generation
}
