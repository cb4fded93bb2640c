package core

// TokenRun is one run of equally-classified characters on a view line.
// EndOffset is the exclusive rune offset where the run stops; runs are
// ordered and contiguous. Class is an opaque renderer-facing key (the
// tokenization collaborator decides its vocabulary).
type TokenRun struct {
	EndOffset int
	Class     string
}

// ViewLineData is a snapshot of one view line's renderable content, cheap
// enough for minimap-style consumers that skip the derived flags.
type ViewLineData struct {
	Content                  string
	ContinuesWithWrappedLine bool

	// MinColumn/MaxColumn bound the editable columns: continuation lines
	// start after the wrapped indentation.
	MinColumn int
	MaxColumn int

	// StartVisibleColumn is the visible column of the first character,
	// accounting for tab expansion on the preceding segments.
	StartVisibleColumn int

	Tokens            []TokenRun
	InlineDecorations []SingleLineInlineDecoration
}

// ViewLineRenderingData extends ViewLineData with flags derived once at
// construction so rendering never rescans the content.
type ViewLineRenderingData struct {
	MinColumn                int
	MaxColumn                int
	Content                  string
	ContinuesWithWrappedLine bool

	IsBasicASCII bool
	ContainsRTL  bool

	Tokens             []TokenRun
	InlineDecorations  []SingleLineInlineDecoration
	TabSize            int
	StartVisibleColumn int
}

// NewViewLineRenderingData derives the ASCII/RTL flags from the content,
// trusting the caller's coarse document flags to skip the scans entirely.
func NewViewLineRenderingData(data ViewLineData, tabSize int, mightContainNonBasicASCII, mightContainRTL bool) ViewLineRenderingData {
	isBasicASCII := true
	if mightContainNonBasicASCII {
		isBasicASCII = IsBasicASCII(data.Content, true)
	}

	containsRTL := false
	if !isBasicASCII && mightContainRTL {
		containsRTL = ContainsRTL(data.Content, true)
	}

	return ViewLineRenderingData{
		MinColumn:                data.MinColumn,
		MaxColumn:                data.MaxColumn,
		Content:                  data.Content,
		ContinuesWithWrappedLine: data.ContinuesWithWrappedLine,
		IsBasicASCII:             isBasicASCII,
		ContainsRTL:              containsRTL,
		Tokens:                   data.Tokens,
		InlineDecorations:        data.InlineDecorations,
		TabSize:                  tabSize,
		StartVisibleColumn:       data.StartVisibleColumn,
	}
}

// MinimapLinesRenderingData carries the lightweight per-line snapshots for
// a view-line range. A nil entry marks a line outside the document.
type MinimapLinesRenderingData struct {
	TabSize int
	Data    []*ViewLineData
}

// IsBasicASCII reports whether content is limited to printable ASCII plus
// tab, LF and CR. When the caller asserts mightContainNonBasicASCII is
// false the scan is skipped and the answer is true by contract.
func IsBasicASCII(content string, mightContainNonBasicASCII bool) bool {
	if !mightContainNonBasicASCII {
		return true
	}
	for _, r := range content {
		if r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		if r < 32 || r > 126 {
			return false
		}
	}
	return true
}

// ContainsRTL reports whether content contains right-to-left characters.
// When the caller asserts mightContainRTL is false the scan is skipped.
func ContainsRTL(content string, mightContainRTL bool) bool {
	if !mightContainRTL {
		return false
	}
	for _, r := range content {
		if isRTLRune(r) {
			return true
		}
	}
	return false
}

// isRTLRune covers the Hebrew, Arabic, Syriac, Thaana and N'Ko blocks plus
// the Arabic presentation forms.
func isRTLRune(r rune) bool {
	switch {
	case r >= 0x0590 && r <= 0x08FF:
		return true
	case r >= 0xFB1D && r <= 0xFDFF:
		return true
	case r >= 0xFE70 && r <= 0xFEFF:
		return true
	}
	return false
}
