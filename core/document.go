package core

import (
	"bytes"
	"strings"
)

// Document is the text-storage collaborator: stable line content for the
// duration of a line-break batch, plus the edit operations that invalidate
// it. Every successful edit bumps the version.
type Document interface {
	TextSource

	SetContent(content []byte)
	ReplaceLine(lineNumber int, text string) error
	InsertLines(at int, lines []string) error
	RemoveLines(from, to int) error

	Version() uint64
	Content() string
	IsEmpty() bool
}

// linesDocument stores lines as rune slices for cheap offset math.
type linesDocument struct {
	lines   [][]rune
	version uint64
	tabSize int

	mightContainNonBasicASCII bool
	mightContainRTL           bool
}

// NewDocument creates a document from raw content. tabSize <= 0 defaults
// to 4.
func NewDocument(content []byte, tabSize int) Document {
	if tabSize <= 0 {
		tabSize = 4
	}
	d := &linesDocument{
		lines:   [][]rune{{}},
		version: 1,
		tabSize: tabSize,
	}
	if len(content) > 0 {
		d.SetContent(content)
	}
	return d
}

func (d *linesDocument) SetContent(content []byte) {
	runes := bytes.Runes(content)
	lines := make([][]rune, 0, 16)
	current := []rune{}

	for _, r := range runes {
		if r == '\n' {
			lines = append(lines, current)
			current = []rune{}
		} else {
			current = append(current, r)
		}
	}
	lines = append(lines, current)

	d.lines = lines
	d.refreshContentFlags()
	d.version++
}

func (d *linesDocument) LineCount() int {
	return len(d.lines)
}

func (d *linesDocument) LineContent(lineNumber int) string {
	if lineNumber < 1 || lineNumber > len(d.lines) {
		return ""
	}
	return string(d.lines[lineNumber-1])
}

func (d *linesDocument) LineLength(lineNumber int) int {
	if lineNumber < 1 || lineNumber > len(d.lines) {
		return 0
	}
	return len(d.lines[lineNumber-1])
}

func (d *linesDocument) TabSize() int {
	return d.tabSize
}

func (d *linesDocument) MightContainNonBasicASCII() bool {
	return d.mightContainNonBasicASCII
}

func (d *linesDocument) MightContainRTL() bool {
	return d.mightContainRTL
}

func (d *linesDocument) IsEmpty() bool {
	return len(d.lines) == 1 && len(d.lines[0]) == 0
}

func (d *linesDocument) Version() uint64 {
	return d.version
}

func (d *linesDocument) Content() string {
	parts := make([]string, len(d.lines))
	for i, line := range d.lines {
		parts[i] = string(line)
	}
	return strings.Join(parts, "\n")
}

func (d *linesDocument) ReplaceLine(lineNumber int, text string) error {
	if lineNumber < 1 || lineNumber > len(d.lines) {
		return ErrInvalidLineNumber
	}
	d.lines[lineNumber-1] = []rune(text)
	d.noteContent(text)
	d.version++
	return nil
}

func (d *linesDocument) InsertLines(at int, lines []string) error {
	if at < 1 || at > len(d.lines)+1 {
		return ErrInvalidLineNumber
	}
	if len(lines) == 0 {
		return nil
	}

	inserted := make([][]rune, len(lines))
	for i, line := range lines {
		inserted[i] = []rune(line)
		d.noteContent(line)
	}

	d.lines = append(d.lines[:at-1], append(inserted, d.lines[at-1:]...)...)
	d.version++
	return nil
}

func (d *linesDocument) RemoveLines(from, to int) error {
	if from < 1 || to > len(d.lines) || to < from {
		return ErrInvalidLineNumber
	}
	if to-from+1 == len(d.lines) {
		// Removing every line leaves one empty line.
		d.lines = [][]rune{{}}
	} else {
		d.lines = append(d.lines[:from-1], d.lines[to:]...)
	}
	d.version++
	return nil
}

// noteContent widens the coarse content flags; they only ever reset on
// SetContent.
func (d *linesDocument) noteContent(text string) {
	if !d.mightContainNonBasicASCII && !IsBasicASCII(text, true) {
		d.mightContainNonBasicASCII = true
	}
	if !d.mightContainRTL && ContainsRTL(text, true) {
		d.mightContainRTL = true
	}
}

func (d *linesDocument) refreshContentFlags() {
	d.mightContainNonBasicASCII = false
	d.mightContainRTL = false
	for _, line := range d.lines {
		d.noteContent(string(line))
		if d.mightContainNonBasicASCII && d.mightContainRTL {
			return
		}
	}
}
